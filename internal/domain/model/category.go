package model

// 商品カテゴリ（バックエンドの tipo）
type Category string

const (
	CategoryAll           Category = ""
	CategoryAppliances    Category = "electrodomesticos"
	CategoryHomeGoods     Category = "articulos-hogar"
	CategorySweets        Category = "dulces"
	CategoryConfectionery Category = "confituras"
	CategoryGifts         Category = "regalos"
	CategoryToys          Category = "juguetes"
)

const allProductsDisplayTitle = "Todos los Productos"

var categoryTitles = map[Category]string{
	CategoryAppliances:    "Electrodomésticos",
	CategoryHomeGoods:     "Artículos del Hogar",
	CategorySweets:        "Dulces",
	CategoryConfectionery: "Confituras",
	CategoryGifts:         "Regalos",
	CategoryToys:          "Juguetes",
}

// 画面に並べる順番
var Categories = []Category{
	CategoryAppliances,
	CategoryHomeGoods,
	CategorySweets,
	CategoryConfectionery,
	CategoryGifts,
	CategoryToys,
}

// 表示名。知らないカテゴリは「全商品」と同じ見出しにする。
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return allProductsDisplayTitle
}

func (c Category) Known() bool {
	_, ok := categoryTitles[c]
	return ok
}

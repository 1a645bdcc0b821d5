package sandbox

import (
	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 開発用の初期データ
func Seed(s *Store) error {
	products := []model.Product{
		{ID: 1, Name: "Licuadora 600W", UnitPrice: decimal.RequireFromString("189.90"), Stock: 8, Category: model.CategoryAppliances},
		{ID: 2, Name: "Juego de ollas", UnitPrice: decimal.RequireFromString("129.00"), Stock: 4, Category: model.CategoryHomeGoods},
		{ID: 3, Name: "Chocotejas x12", UnitPrice: decimal.RequireFromString("24.50"), Stock: 30, Category: model.CategorySweets, Image: "images/chocotejas.jpg"},
		{ID: 4, Name: "Mermelada de fresa", UnitPrice: decimal.RequireFromString("12.00"), Stock: 15, Category: model.CategoryConfectionery},
		{ID: 5, Name: "Caja de regalo", UnitPrice: decimal.RequireFromString("35.00"), Stock: 2, Category: model.CategoryGifts},
		{ID: 6, Name: "Rompecabezas 500", UnitPrice: decimal.RequireFromString("45.90"), Stock: 0, Category: model.CategoryToys},
	}
	for _, p := range products {
		s.PutProduct(p)
	}

	if _, err := s.AddUser("admin", "admin@example.com", "admin1234", true); err != nil {
		return err
	}
	if _, err := s.AddUser("cliente", "cliente@example.com", "cliente1234", false); err != nil {
		return err
	}
	return nil
}

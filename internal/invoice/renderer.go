package invoice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const contentType = "text/plain; charset=utf-8"

// dir が空のときメモリに残す請求書の上限（古いものから捨てる）
const maxInMemory = 64

// 請求書が見つからない
var ErrNotFound = errors.New("invoice not found")

// ファイル名として受け付ける形（パス区切りは不可）
var validName = regexp.MustCompile(`^invoice-[0-9a-f-]{36}\.txt$`)

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v interface{ StringFixed(int32) string }) string { return v.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}).Parse(`FACTURA {{.Number}}
Fecha:   {{date .IssuedAt}}
Cliente: {{.CustomerName}}

{{range .Lines}}{{printf "%-32s" .Name}} {{printf "%4d" .Quantity}} x {{printf "%10s" (money .UnitPrice)}} = {{printf "%10s" (money .Subtotal)}}
{{end}}
TOTAL: {{money .Total}}
`))

// Renderer はテキストの請求書を作る。
// dir が空ならファイルには書かず、直近の maxInMemory 件だけメモリ上に持つ。
type Renderer struct {
	dir   string
	now   func() time.Time
	newID func() string
	log   *logrus.Entry

	mu    sync.RWMutex
	docs  map[string]model.Document
	order []string
}

func NewRenderer(dir string, log *logrus.Entry) *Renderer {
	return &Renderer{
		dir:   strings.TrimSpace(dir),
		now:   time.Now,
		newID: uuid.NewString,
		log:   log.WithField("component", "invoice"),
		docs:  map[string]model.Document{},
	}
}

// 会計済みカートから請求書を作る
func (r *Renderer) Render(ctx context.Context, cart model.Cart, customerName string) (model.Document, error) {
	if err := ctx.Err(); err != nil {
		return model.Document{}, err
	}
	if cart.IsEmpty() {
		return model.Document{}, errors.New("render invoice: empty cart")
	}

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		customerName = "-"
	}

	inv := model.Invoice{
		Number:       r.newID(),
		CustomerName: customerName,
		IssuedAt:     r.now(),
		Lines:        cart.Clone().Items,
		Total:        cart.Total(),
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, inv); err != nil {
		return model.Document{}, errors.Wrap(err, "render invoice")
	}

	doc := model.Document{
		FileName:    fmt.Sprintf("invoice-%s.txt", inv.Number),
		ContentType: contentType,
		Body:        buf.Bytes(),
	}

	if r.dir != "" {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return model.Document{}, errors.Wrap(err, "create invoice dir")
		}
		if err := os.WriteFile(filepath.Join(r.dir, doc.FileName), doc.Body, 0o644); err != nil {
			return model.Document{}, errors.Wrap(err, "write invoice")
		}
	} else {
		r.keep(doc)
	}

	r.log.WithFields(logrus.Fields{"file": doc.FileName, "total": inv.Total.StringFixed(2)}).Info("invoice rendered")
	return doc, nil
}

func (r *Renderer) keep(doc model.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.FileName]; !ok {
		r.order = append(r.order, doc.FileName)
	}
	r.docs[doc.FileName] = doc

	for len(r.order) > maxInMemory {
		delete(r.docs, r.order[0])
		r.order = r.order[1:]
	}
}

// ダウンロード用に作成済みの請求書を返す
func (r *Renderer) Open(name string) (model.Document, error) {
	if !validName.MatchString(name) {
		return model.Document{}, ErrNotFound
	}

	r.mu.RLock()
	doc, ok := r.docs[name]
	r.mu.RUnlock()
	if ok {
		return doc, nil
	}

	if r.dir == "" {
		return model.Document{}, ErrNotFound
	}
	body, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return model.Document{}, ErrNotFound
		}
		return model.Document{}, errors.Wrap(err, "read invoice")
	}
	return model.Document{FileName: name, ContentType: contentType, Body: body}, nil
}

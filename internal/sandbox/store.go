package sandbox

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// ロール
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// サンドボックスのユーザー（パスワードはbcryptで保持）
type account struct {
	user         model.User
	passwordHash string
}

// 記録した販売
type Sale struct {
	ID             string
	UserID         int64
	IdempotencyKey string
	Lines          []model.SaleLine
	Total          decimal.Decimal
	CreatedAt      time.Time
}

// Store はサンドボックスのメモリ上のデータ。
// 在庫は受け取った絶対値をそのまま保存するだけで、販売時にも減らさない。
type Store struct {
	mu       sync.Mutex
	products map[int64]model.Product
	accounts map[int64]*account
	sales    []Sale
	byKey    map[string]int

	stockWrites int
	failSales   int // 次のN回の販売を500で失敗させる
	nextUserID  int64
}

func NewStore() *Store {
	return &Store{
		products:   map[int64]model.Product{},
		accounts:   map[int64]*account{},
		byKey:      map[string]int{},
		nextUserID: 1,
	}
}

// 商品を入れる（同じIDは上書き）
func (s *Store) PutProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// ID順の商品一覧
func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// 在庫の絶対値を設定
func (s *Store) SetStock(id int64, stock int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false
	}
	p.Stock = stock
	s.products[id] = p
	s.stockWrites++
	return true
}

func (s *Store) SetPrice(id int64, price decimal.Decimal) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return model.Product{}, false
	}
	p.UnitPrice = price
	s.products[id] = p
	return p, true
}

// 在庫書き込みの回数
func (s *Store) StockWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stockWrites
}

// ユーザー追加（bcryptでハッシュ化）
func (s *Store) AddUser(username string, email string, password string, staff bool) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{
		ID:       s.nextUserID,
		Username: username,
		Email:    email,
		IsActive: true,
		IsStaff:  staff,
	}
	s.nextUserID++
	s.accounts[u.ID] = &account{user: u, passwordHash: string(hash)}
	return u, nil
}

// ユーザー名とパスワードを確認
func (s *Store) Authenticate(username string, password string) (model.User, bool) {
	s.mu.Lock()
	var found *account
	for _, a := range s.accounts {
		if a.user.Username == username {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || !found.user.IsActive {
		return model.User{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(found.passwordHash), []byte(password)) != nil {
		return model.User{}, false
	}
	return found.user, true
}

func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) UpdateUser(id int64, in model.UserUpdate) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return model.User{}, false
	}
	if in.Email != nil {
		a.user.Email = *in.Email
	}
	if in.FirstName != nil {
		a.user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		a.user.LastName = *in.LastName
	}
	if in.IsActive != nil {
		a.user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		a.user.IsStaff = *in.IsStaff
	}
	return a.user, true
}

// 次のN回の販売を失敗させる（会計失敗の確認用）
func (s *Store) FailNextSales(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSales = n
}

// 販売を記録する。
// 同じ冪等キーなら前回の販売をそのまま返す。
func (s *Store) RecordSale(userID int64, key string, lines []model.SaleLine, total decimal.Decimal, now time.Time) (Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSales > 0 {
		s.failSales--
		return Sale{}, false
	}
	if key != "" {
		if i, ok := s.byKey[key]; ok {
			return s.sales[i], true
		}
	}

	sale := Sale{
		ID:             uuid.NewString(),
		UserID:         userID,
		IdempotencyKey: key,
		Lines:          append([]model.SaleLine(nil), lines...),
		Total:          total,
		CreatedAt:      now,
	}
	s.sales = append(s.sales, sale)
	if key != "" {
		s.byKey[key] = len(s.sales) - 1
	}
	return sale, true
}

func (s *Store) Sales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Sale(nil), s.sales...)
}

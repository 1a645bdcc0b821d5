package sandbox

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Server は開発・結合テスト用のバックエンド代わり。
// クライアントが使うエンドポイントだけを持つ。
type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      *logrus.Entry
}

func NewServer(store *Store, secret []byte, log *logrus.Entry) *Server {
	return &Server{
		store:    store,
		secret:   secret,
		tokenTTL: 12 * time.Hour,
		now:      time.Now,
		log:      log.WithField("component", "sandbox"),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// /api 配下のルートを登録したechoを返す
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(s.log))

	api := e.Group("/api")
	api.POST("/auth/login/", s.login)

	authed := api.Group("", middleware.AuthJWT(s.secret))
	authed.GET("/almacen/", s.listProducts)
	authed.PATCH("/almacen/:id/update-stock/", s.updateStock)
	authed.POST("/ventas/", s.createSale)

	admin := authed.Group("", middleware.RoleGuard(RoleAdmin))
	admin.PATCH("/almacen/:id/update-precio/", s.updatePrice)
	admin.GET("/users/", s.listUsers)
	admin.PUT("/users/:id/", s.updateUser)

	return e
}

// JWT発行
func (s *Server) IssueToken(u model.User) (string, error) {
	role := RoleUser
	if u.IsStaff {
		role = RoleAdmin
	}
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(u.ID, 10),
		"username": u.Username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	u, ok := s.store.Authenticate(strings.TrimSpace(req.Username), req.Password)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Products())
}

type updateStockRequest struct {
	Stock *int64 `json:"stock"`
}

func (s *Server) updateStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req updateStockRequest
	if err := c.Bind(&req); err != nil || req.Stock == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if *req.Stock < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "stock must be >= 0"})
	}
	if !s.store.SetStock(id, *req.Stock) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	p, _ := s.store.Product(id)
	return c.JSON(http.StatusOK, p)
}

type updatePriceRequest struct {
	UnitPrice *decimal.Decimal `json:"precio_unitario"`
}

func (s *Server) updatePrice(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req updatePriceRequest
	if err := c.Bind(&req); err != nil || req.UnitPrice == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.UnitPrice.IsNegative() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "precio_unitario must be >= 0"})
	}
	p, ok := s.store.SetPrice(id, *req.UnitPrice)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, p)
}

type createSaleRequest struct {
	Lines []model.SaleLine `json:"ventas"`
	Total decimal.Decimal  `json:"total"`
}

type saleResponse struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Server) createSale(c echo.Context) error {
	var req createSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(req.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ventas required"})
	}
	for _, l := range req.Lines {
		if l.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cantidad"})
		}
		if _, ok := s.store.Product(l.ProductID); !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid producto_id"})
		}
	}

	userID, _ := c.Get(middleware.CtxUserIDKey).(int64)
	key := c.Request().Header.Get("Idempotency-Key")

	sale, ok := s.store.RecordSale(userID, key, req.Lines, req.Total, s.now())
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "sale rejected"})
	}
	return c.JSON(http.StatusCreated, saleResponse{ID: sale.ID, Total: sale.Total, CreatedAt: sale.CreatedAt})
}

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Users())
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
	}
	var in model.UserUpdate
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	u, ok := s.store.UpdateUser(id, in)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, u)
}

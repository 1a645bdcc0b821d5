package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /session のHTTP（ログイン・ログアウト）
type SessionHandler struct {
	uc   *usecase.SessionUsecase
	cart *usecase.CartUsecase
}

// DI
func NewSessionHandler(uc *usecase.SessionUsecase, cart *usecase.CartUsecase) *SessionHandler {
	return &SessionHandler{uc: uc, cart: cart}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type SessionResponse struct {
	SignedIn bool   `json:"signed_in"`
	Username string `json:"username,omitempty"`
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/session")
	g.POST("/login", h.login)
	g.POST("", h.signIn)
	g.GET("", h.current)
	g.DELETE("", h.logout)
}

func (h *SessionHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cred, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	h.loadCart(c)

	return c.JSON(http.StatusOK, SessionResponse{SignedIn: true, Username: cred.Username})
}

// 外で取得したトークンをそのまま保存
func (h *SessionHandler) signIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cred, err := h.uc.SignIn(c.Request().Context(), req.Token, req.Username)
	if err != nil {
		return writeError(c, err)
	}
	h.loadCart(c)

	return c.JSON(http.StatusOK, SessionResponse{SignedIn: true, Username: cred.Username})
}

func (h *SessionHandler) current(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.uc.Token(ctx); err != nil {
		if usecase.IsAuthError(err) {
			return c.JSON(http.StatusOK, SessionResponse{SignedIn: false})
		}
		return writeError(c, err)
	}

	cred, err := h.uc.Current(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SessionResponse{SignedIn: true, Username: cred.Username})
}

func (h *SessionHandler) logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), h.cart); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ログイン直後に保存済みカートを読み直す（失敗しても空カートで続行）
func (h *SessionHandler) loadCart(c echo.Context) {
	_ = h.cart.Load(c.Request().Context())
}

package handler

import (
	"errors"
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 在庫不足のときは数量も返す
type InsufficientStockResponse struct {
	Error     string `json:"error"`
	ProductID int64  `json:"product_id"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// usecaseのエラーをHTTPに変換
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var (
		authErr  *usecase.AuthError
		netErr   *usecase.NetworkError
		stockErr *usecase.InsufficientStockError
		valErr   *usecase.ValidationError
		emptyErr *usecase.EmptyCartError
		busyErr  *usecase.BusyError
	)

	switch {
	case errors.As(err, &authErr):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: authErr.Error()})
	case errors.As(err, &stockErr):
		return c.JSON(http.StatusConflict, InsufficientStockResponse{
			Error:     stockErr.Error(),
			ProductID: stockErr.ProductID,
			Requested: stockErr.Requested,
			Available: stockErr.Available,
		})
	case errors.As(err, &valErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: valErr.Error()})
	case errors.As(err, &emptyErr):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: emptyErr.Error()})
	case errors.As(err, &busyErr):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: busyErr.Error()})
	case errors.As(err, &netErr):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: netErr.Error()})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

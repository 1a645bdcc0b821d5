package usecase

import (
	"errors"
	"fmt"
)

// 認証情報が無い・期限切れ・バックエンドに拒否された。
// 保存トークンが無い場合は通信する前にこれを返す。
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Reason
}

func NewAuthError(reason string) error {
	return &AuthError{Reason: reason}
}

// 通信失敗、または2xx以外の応答
type NetworkError struct {
	Op     string
	Status int // 通信自体が失敗したときは0
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
	}
	msg := fmt.Sprintf("network: %s: status %d", e.Op, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func NewNetworkError(op string, status int, body string, err error) error {
	return &NetworkError{Op: op, Status: status, Body: body, Err: err}
}

// 最後に取得した在庫より多く要求された
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func NewInsufficientStockError(productID int64, requested int64, available int64) error {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// 入力が不正（数量が0以下、明細番号が範囲外など）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field string, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// 空のカートで会計しようとした
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// 別の操作が実行中
type BusyError struct {
	Operation string
}

func (e *BusyError) Error() string {
	return "busy: " + e.Operation + " in progress"
}

func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

func IsInsufficientStock(err error) bool {
	var e *InsufficientStockError
	return errors.As(err, &e)
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsEmptyCart(err error) bool {
	var e *EmptyCartError
	return errors.As(err, &e)
}

func IsBusy(err error) bool {
	var e *BusyError
	return errors.As(err, &e)
}

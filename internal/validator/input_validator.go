package validator

import (
	"regexp"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
)

// 簡易メール形式
var emailLike = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ユーザー名に使える文字（バックエンドのユーザー名規則に合わせる）
var usernameLike = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

type inputValidator struct{}

// Usecaseは interface を依存注入
func NewInputValidator() usecase.InputValidator {
	return &inputValidator{}
}

// ログインの入力を検証
func (v *inputValidator) ValidateLogin(username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" {
		return usecase.NewValidationError("username", "required")
	}
	if password == "" {
		return usecase.NewValidationError("password", "required")
	}

	if !usernameLike.MatchString(username) {
		return usecase.NewValidationError("username", "invalid format")
	}
	return nil
}

// ユーザー更新の入力を検証（nilの項目は見ない）
func (v *inputValidator) ValidateUserUpdate(userID int64, in model.UserUpdate) error {
	if userID <= 0 {
		return usecase.NewValidationError("user_id", "must be positive")
	}
	if in.Email != nil && !emailLike.MatchString(strings.TrimSpace(*in.Email)) {
		return usecase.NewValidationError("email", "invalid format")
	}
	return nil
}

// 価格変更の入力を検証
func (v *inputValidator) ValidatePrice(productID int64, price decimal.Decimal) error {
	if productID <= 0 {
		return usecase.NewValidationError("product_id", "must be positive")
	}
	if price.IsNegative() {
		return usecase.NewValidationError("precio_unitario", "must be >= 0")
	}
	// 小数は2桁まで
	if !price.Equal(price.Round(2)) {
		return usecase.NewValidationError("precio_unitario", "at most 2 decimal places")
	}
	return nil
}

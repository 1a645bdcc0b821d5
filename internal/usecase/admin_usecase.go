package usecase

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// 管理画面（ユーザー一覧・更新、価格変更）
type AdminUsecase struct {
	gateway   repo.AdminGateway
	tokens    TokenSource
	catalog   CatalogRefresher
	validator InputValidator
	log       *logrus.Entry
}

func NewAdminUsecase(gateway repo.AdminGateway, tokens TokenSource, catalog CatalogRefresher, validator InputValidator, log *logrus.Entry) *AdminUsecase {
	return &AdminUsecase{
		gateway:   gateway,
		tokens:    tokens,
		catalog:   catalog,
		validator: validator,
		log:       log.WithField("component", "admin"),
	}
}

func (u *AdminUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	token, err := u.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return u.gateway.ListUsers(ctx, token)
}

func (u *AdminUsecase) UpdateUser(ctx context.Context, userID int64, in model.UserUpdate) (model.User, error) {
	if err := u.validator.ValidateUserUpdate(userID, in); err != nil {
		return model.User{}, err
	}

	token, err := u.tokens.Token(ctx)
	if err != nil {
		return model.User{}, err
	}

	user, err := u.gateway.UpdateUser(ctx, token, userID, in)
	if err != nil {
		return model.User{}, err
	}
	u.log.WithField("user_id", userID).Info("user updated")
	return user, nil
}

// 単価の変更。カートに入っている明細の単価は追加時点のまま。
func (u *AdminUsecase) UpdatePrice(ctx context.Context, productID int64, price decimal.Decimal) (model.Product, error) {
	if err := u.validator.ValidatePrice(productID, price); err != nil {
		return model.Product{}, err
	}

	token, err := u.tokens.Token(ctx)
	if err != nil {
		return model.Product{}, err
	}

	p, err := u.gateway.UpdatePrice(ctx, token, productID, price)
	if err != nil {
		return model.Product{}, err
	}
	u.log.WithFields(logrus.Fields{"product_id": productID, "price": price.StringFixed(2)}).Info("price updated")

	if _, err := u.catalog.FetchCatalog(ctx); err != nil {
		u.log.WithError(err).Warn("catalog refresh after price update failed")
	}
	return p, nil
}

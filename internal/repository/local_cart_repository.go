package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// カートのスナップショットを固定キーで保存する約束。
type LocalCartRepository interface {
	// 保存が無ければ空カート
	Load(ctx context.Context) (model.Cart, error)
	Save(ctx context.Context, cart model.Cart) error
}

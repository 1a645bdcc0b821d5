package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// カートを保存する固定キー
const CartStorageKey = "cart"

// カートを明細のフラットなJSON配列として保存する
type CartKVRepository struct {
	kv repo.KeyValueStore
}

func NewCartKVRepository(kv repo.KeyValueStore) *CartKVRepository {
	return &CartKVRepository{kv: kv}
}

func (r *CartKVRepository) Load(ctx context.Context) (model.Cart, error) {
	raw, found, err := r.kv.Get(ctx, CartStorageKey)
	if err != nil {
		return model.Cart{}, err
	}
	if !found || raw == "" {
		return model.Cart{}, nil
	}

	var items []model.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return model.Cart{}, fmt.Errorf("decode saved cart: %w", err)
	}
	return model.Cart{Items: items}, nil
}

func (r *CartKVRepository) Save(ctx context.Context, cart model.Cart) error {
	items := cart.Items
	if items == nil {
		items = []model.CartLineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, CartStorageKey, string(raw))
}

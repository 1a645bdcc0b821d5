package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// トークンとユーザー名は別キーで保存する
const (
	TokenStorageKey    = "auth_token"
	UsernameStorageKey = "username"
)

type CredentialKVRepository struct {
	kv repo.KeyValueStore
}

func NewCredentialKVRepository(kv repo.KeyValueStore) *CredentialKVRepository {
	return &CredentialKVRepository{kv: kv}
}

func (r *CredentialKVRepository) Load(ctx context.Context) (model.Credential, error) {
	token, _, err := r.kv.Get(ctx, TokenStorageKey)
	if err != nil {
		return model.Credential{}, err
	}
	username, _, err := r.kv.Get(ctx, UsernameStorageKey)
	if err != nil {
		return model.Credential{}, err
	}
	return model.Credential{Token: token, Username: username}, nil
}

func (r *CredentialKVRepository) Save(ctx context.Context, cred model.Credential) error {
	if err := r.kv.Set(ctx, TokenStorageKey, cred.Token); err != nil {
		return err
	}
	return r.kv.Set(ctx, UsernameStorageKey, cred.Username)
}

func (r *CredentialKVRepository) Delete(ctx context.Context) error {
	if err := r.kv.Delete(ctx, TokenStorageKey); err != nil {
		return err
	}
	return r.kv.Delete(ctx, UsernameStorageKey)
}

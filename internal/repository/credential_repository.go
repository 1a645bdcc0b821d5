package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// トークンとユーザー名の保存・取得・削除
type CredentialRepository interface {
	// 保存が無ければ Token が空の Credential
	Load(ctx context.Context) (model.Credential, error)
	Save(ctx context.Context, cred model.Credential) error
	Delete(ctx context.Context) error
}

package repository

import "context"

// 端末ローカルの保存領域（ブラウザのlocalStorage相当）の約束。
// 値は文字列のまま保存する。
type KeyValueStore interface {
	// 無ければ found=false
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	// 無いキーを消してもエラーにしない
	Delete(ctx context.Context, key string) error
	Close() error
}

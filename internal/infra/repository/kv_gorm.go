package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 保存領域の1行
type LocalEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (LocalEntry) TableName() string {
	return "storefront_local_entries"
}

// PostgreSQLのテーブルを保存領域として使う（店頭端末でDBを共有する場合）
type GormKeyValueStore struct {
	db     *gorm.DB
	prefix string
}

// DI
func NewGormKeyValueStore(db *gorm.DB, prefix string) *GormKeyValueStore {
	return &GormKeyValueStore{db: db, prefix: prefix}
}

// テーブル作成
func (s *GormKeyValueStore) Migrate() error {
	return s.db.AutoMigrate(&LocalEntry{})
}

func (s *GormKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e LocalEntry
	err := s.db.WithContext(ctx).Where("key = ?", s.prefix+key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Upsert（同じキーは上書き）
func (s *GormKeyValueStore) Set(ctx context.Context, key string, value string) error {
	e := LocalEntry{Key: s.prefix + key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

func (s *GormKeyValueStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", s.prefix+key).Delete(&LocalEntry{}).Error
}

func (s *GormKeyValueStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

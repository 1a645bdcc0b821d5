package repository

import (
	"context"
	"sync"
)

// メモリだけに持つ保存領域（テスト・一時利用）
type MemoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{data: map[string]string{}}
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKeyValueStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKeyValueStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryKeyValueStore) Close() error {
	return nil
}

package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// MemoryStore é a alternativa em processo ao RedisStore, usada quando REDIS_URL está vazio
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

// NewMemoryStore cria um MemoryStore com limpeza periódica de itens expirados
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

var (
	_ ports.RevocationList = (*MemoryStore)(nil)
	_ ports.RateCounter    = (*MemoryStore)(nil)
)

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	s.cache.Set(revokedPrefix+tokenID, struct{}{}, ttl)
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := s.cache.Get(revokedPrefix + tokenID)
	return found, nil
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	key = ratePrefix + key

	s.mu.Lock()
	defer s.mu.Unlock()

	// Add só grava se a chave não existir (ou tiver expirado), abrindo uma nova janela
	if err := s.cache.Add(key, int64(1), window); err == nil {
		return 1, nil
	}
	return s.cache.IncrementInt64(key, 1)
}

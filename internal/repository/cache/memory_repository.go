package cache

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/airport-locator/internal/domain/repository"
)

// MemoryCache - шардированное хранилище в памяти процесса.
// Каждый шард защищён своим RWMutex, просроченные записи удаляются лениво
// при чтении и пачкой при переполнении шарда.
type MemoryCache struct {
	shards   []*memoryShard
	capacity int
	now      func() time.Time
}

var (
	_ repository.CacheRepository   = (*MemoryCache)(nil)
	_ repository.PrefixInvalidator = (*MemoryCache)(nil)
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryShard struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
}

// MemoryOption настраивает MemoryCache
type MemoryOption func(*MemoryCache)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache создаёт хранилище из shards шардов.
// capacity - максимум записей на шард, 0 - без ограничения.
func NewMemoryCache(shards, capacity int, opts ...MemoryOption) *MemoryCache {
	if shards < 1 {
		shards = 1
	}
	c := &MemoryCache{
		shards:   make([]*memoryShard, shards),
		capacity: capacity,
		now:      time.Now,
	}
	for i := range c.shards {
		c.shards[i] = &memoryShard{items: make(map[string]memoryEntry)}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) shardFor(key string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()%uint32(len(c.shards))]
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	s := c.shardFor(key)
	now := c.now()

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		// запись могла быть перезаписана между блокировками
		if cur, ok := s.items[key]; ok && !now.Before(cur.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s := c.shardFor(key)
	now := c.now()

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists && c.capacity > 0 && len(s.items) >= c.capacity {
		s.sweep(now)
		if len(s.items) >= c.capacity {
			s.evictSoonest()
		}
	}
	s.items[key] = memoryEntry{value: stored, expiresAt: now.Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	v, err := c.Get(ctx, key)
	return v != nil, err
}

// DeleteByPrefix удаляет все записи, ключ которых начинается с prefix
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	deleted := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for k := range s.items {
			if strings.HasPrefix(k, prefix) {
				delete(s.items, k)
				deleted++
			}
		}
		s.mu.Unlock()
	}
	return deleted, nil
}

// Len - количество записей, включая ещё не вычищенные просроченные
func (c *MemoryCache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// sweep удаляет просроченные записи. Вызывать под s.mu.
func (s *memoryShard) sweep(now time.Time) {
	for k, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, k)
		}
	}
}

// evictSoonest вытесняет запись с ближайшим сроком истечения. Вызывать под s.mu.
func (s *memoryShard) evictSoonest() {
	var (
		victim string
		soon   time.Time
		found  bool
	)
	for k, e := range s.items {
		if !found || e.expiresAt.Before(soon) {
			victim, soon, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(s.items, victim)
	}
}

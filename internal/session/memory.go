package session

import (
	"sync"
	"time"
)

// MemoryStore 内存会话存储（单机部署与测试用）
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Get 读取条目，过期的惰性清除
func (s *MemoryStore) Get(key string) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if entry.Expired(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return entry, true
}

// Set 写入条目并刷新TTL
func (s *MemoryStore) Set(key string, payload string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &Entry{
		Payload:   payload,
		ExpiresAt: s.now().Add(ttl),
	}
}

// Has 条目是否存在且未过期
func (s *MemoryStore) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// SetClock 注入时钟（测试用）
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

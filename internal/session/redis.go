package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wfunc/rgs-engine/internal/logger"
	"go.uber.org/zap"
)

// RedisStore Redis会话存储（多进程部署共享会话数据）
// 过期交给Redis自身的键TTL处理，条目内仍携带expires_at供调用方判断
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建Redis会话存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "rgs:session:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get 读取条目
func (s *RedisStore) Get(key string) (*Entry, bool) {
	data, err := s.client.Get(context.Background(), s.prefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.WithModule("session").Warn("redis读取失败",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, false
	}
	if entry.Expired(time.Now()) {
		return nil, false
	}
	return &entry, true
}

// Set 写入条目并刷新TTL
func (s *RedisStore) Set(key string, payload string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	entry := Entry{
		Payload:   payload,
		ExpiresAt: time.Now().Add(ttl),
	}
	data, err := json.Marshal(&entry)
	if err != nil {
		return
	}

	if err := s.client.Set(context.Background(), s.prefix+key, data, ttl).Err(); err != nil {
		logger.WithModule("session").Warn("redis写入失败",
			zap.String("key", key), zap.Error(err))
	}
}

// Has 条目是否存在且未过期
func (s *RedisStore) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

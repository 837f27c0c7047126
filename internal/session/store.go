package session

import "time"

// DefaultTTL 会话数据默认TTL
const DefaultTTL = 86400 * time.Second

// Entry 会话条目：负载加过期时间
type Entry struct {
	Payload   string    `json:"payload"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 条目是否已过期
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store 会话数据存储接口
// 键为 "<用户ID>:<游戏ID><字段名>" 字符串；过期条目在读取时惰性清除，
// 写入刷新TTL，条目不做永久删除
type Store interface {
	Get(key string) (*Entry, bool)
	Set(key string, payload string, ttl time.Duration)
	Has(key string) bool
}

package game

import (
	"fmt"
	"sync"
)

// keyedLocks 按"玩家+游戏"粒度的互斥锁，保证同一会话的请求串行处理。
// 锁对象只增不减，数量与活跃会话同阶。
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock 锁定指定会话，返回解锁函数
func (l *keyedLocks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func lockKey(userID uint, gameID string) string {
	return fmt.Sprintf("%d:%s", userID, gameID)
}

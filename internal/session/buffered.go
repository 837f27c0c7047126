package session

import "time"

// Buffered 写缓冲存储。写入先落在本地，读取优先命中本地，
// Flush之前底层存储不可见任何写入。一次数据库事务内的流程状态
// 写入经由它缓冲，事务提交后再Flush，回滚时直接丢弃。
type Buffered struct {
	base   Store
	order  []string
	writes map[string]bufferedWrite
}

type bufferedWrite struct {
	payload string
	ttl     time.Duration
}

// NewBuffered 包装底层存储
func NewBuffered(base Store) *Buffered {
	return &Buffered{base: base, writes: make(map[string]bufferedWrite)}
}

// Get 优先返回未刷出的本地写入
func (b *Buffered) Get(key string) (*Entry, bool) {
	if w, ok := b.writes[key]; ok {
		return &Entry{Payload: w.payload, ExpiresAt: time.Now().Add(w.ttl)}, true
	}
	return b.base.Get(key)
}

// Set 记录写入，不触碰底层存储
func (b *Buffered) Set(key string, payload string, ttl time.Duration) {
	if _, ok := b.writes[key]; !ok {
		b.order = append(b.order, key)
	}
	b.writes[key] = bufferedWrite{payload: payload, ttl: ttl}
}

// Has 本地写入或底层存储任一命中
func (b *Buffered) Has(key string) bool {
	if _, ok := b.writes[key]; ok {
		return true
	}
	return b.base.Has(key)
}

// Flush 把缓冲的写入按原始顺序落到底层存储并清空缓冲
func (b *Buffered) Flush() {
	for _, key := range b.order {
		w := b.writes[key]
		b.base.Set(key, w.payload, w.ttl)
	}
	b.order = nil
	b.writes = make(map[string]bufferedWrite)
}

package processor

import (
	"fmt"
	"sync/atomic"

	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru/v2"
)

// RenderCache хранит отрисованные SVG в сжатом snappy виде. При
// переполнении вытесняется запись, к которой дольше всего не обращались.
type RenderCache struct {
	entries *lru.Cache[string, []byte]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats - счетчики обращений к кэшу
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Bytes   int    `json:"bytes"`
}

// NewRenderCache создает кэш на capacity записей
func NewRenderCache(capacity int) *RenderCache {
	if capacity < 1 {
		capacity = 1
	}
	entries, err := lru.New[string, []byte](capacity)
	if err != nil {
		// lru.New отказывает только при capacity <= 0
		panic(fmt.Sprintf("кэш отрисовки: %v", err))
	}
	return &RenderCache{entries: entries}
}

// Get возвращает распакованную запись. Испорченная запись удаляется.
func (c *RenderCache) Get(key string) ([]byte, bool) {
	compressed, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		c.entries.Remove(key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return data, true
}

// Put сохраняет запись
func (c *RenderCache) Put(key string, data []byte) {
	c.entries.Add(key, snappy.Encode(nil, data))
}

// GetOrRender возвращает запись из кэша или отрисовывает и сохраняет ее.
// Ошибки отрисовки не кэшируются.
func (c *RenderCache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := render()
	if err != nil {
		return nil, err
	}
	c.Put(key, data)
	return data, nil
}

// Stats возвращает текущие счетчики
func (c *RenderCache) Stats() Stats {
	s := Stats{
		Entries: c.entries.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
	for _, v := range c.entries.Values() {
		s.Bytes += len(v)
	}
	return s
}

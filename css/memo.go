package css

import (
	"container/list"
	"sync"
)

// memo is a bounded LRU cache for parse results keyed by source string.
// Parsed values are immutable so cached results are shared between callers.
type memo[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List // Front = most recently used
}

type memoEntry[T any] struct {
	key   string
	value T
}

func newMemo[T any](maxSize int) *memo[T] {
	return &memo[T]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// get returns cached result for key, computing and storing it with fn on miss.
func (m *memo[T]) get(key string, fn func(string) T) T {
	m.mu.Lock()
	if elem, ok := m.items[key]; ok {
		m.lru.MoveToFront(elem)
		v := elem.Value.(*memoEntry[T]).value
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	// parsing is pure, so racing callers may compute the same value twice
	v := fn(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.items[key]; ok {
		m.lru.MoveToFront(elem)
		return elem.Value.(*memoEntry[T]).value
	}
	for m.lru.Len() >= m.maxSize {
		oldest := m.lru.Back()
		if oldest == nil {
			break
		}
		m.lru.Remove(oldest)
		delete(m.items, oldest.Value.(*memoEntry[T]).key)
	}
	m.items[key] = m.lru.PushFront(&memoEntry[T]{key: key, value: v})
	return v
}

// len returns number of cached entries.
func (m *memo[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// defaultMemoSize should cover the distinct literal values of a large application.
const defaultMemoSize = 4096

package lock

import "sync"

type mutexMap struct {
	mutexes map[string]*sync.Mutex
	mu      sync.Mutex
}

func newMutexMap() *mutexMap {
	return &mutexMap{
		mutexes: make(map[string]*sync.Mutex),
	}
}

// get returns the mutex for key, creating it on first use.
func (m *mutexMap) get(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mutexes[key]; !ok {
		m.mutexes[key] = &sync.Mutex{}
	}
	return m.mutexes[key]
}

// InMemoryLocker guards keys within a single process.
type InMemoryLocker struct {
	mutexMap *mutexMap
}

func NewInMemoryLocker() Locker {
	return &InMemoryLocker{
		mutexMap: newMutexMap(),
	}
}

func (l *InMemoryLocker) WithLock(key string, f func() error) error {
	mutex := l.mutexMap.get(key)
	mutex.Lock()
	defer mutex.Unlock()
	return f()
}

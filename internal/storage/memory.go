package storage

import (
	"sync"

	myErr "studenthub/internal/types/errors"
)

// MemoryStorage key-value хранилище в памяти процесса.
// Используется в тестах и когда Redis не настроен
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites заставляет Set возвращать ErrQuota, как переполненный localStorage
	FailWrites bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string][]byte),
	}
}

func (m *MemoryStorage) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, myErr.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, nil
}

func (m *MemoryStorage) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return myErr.ErrQuota
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored

	return nil
}

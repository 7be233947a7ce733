package store

import "sync"

// MemoryBackend is the test backend. MaxBytes, when set, caps the total
// stored size so quota failures can be exercised without filling a disk.
type MemoryBackend struct {
	mu       sync.RWMutex
	values   map[string][]byte
	MaxBytes int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (b *MemoryBackend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.values[key]
	if !ok {
		return nil, ErrAbsent
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *MemoryBackend) Put(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.MaxBytes > 0 {
		total := len(data)
		for k, v := range b.values {
			if k != key {
				total += len(v)
			}
		}
		if total > b.MaxBytes {
			return ErrFull
		}
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	b.values[key] = stored
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.values[key]; !ok {
		return ErrAbsent
	}
	delete(b.values, key)
	return nil
}

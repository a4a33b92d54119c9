package jsondb

import (
	"context"
	"sync"
)

// MemoryBlob keeps the document in process memory. Used for tests and the
// memory storage backend.
type MemoryBlob struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBlob returns an empty MemoryBlob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Read(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBlob) Write(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}

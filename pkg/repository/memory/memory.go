package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
)

// Memory is a process-local KVStore for development and tests
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// putErr, when set, makes every Put fail. Used to simulate a full
	// storage quota.
	putErr error
}

var _ interfaces.KVStore = &Memory{}

func New() *Memory {
	return &Memory{
		blobs: make(map[string][]byte),
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(data), nil
}

func (m *Memory) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return m.putErr
	}
	m.blobs[key] = slices.Clone(data)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// FailPuts makes subsequent Put calls return err; nil restores normal
// behavior.
func (m *Memory) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

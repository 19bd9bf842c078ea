package settings

import "sync"

// MemoryStore is an in-process Store, used by tests and headless runs that
// must not touch the user's settings file.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get implements Store.
func (m *MemoryStore) Get(section, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value := m.values[section+"."+key]
	return value, value != "", nil
}

// Set implements Store.
func (m *MemoryStore) Set(section, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	if value == "" {
		delete(m.values, section+"."+key)
		return nil
	}
	m.values[section+"."+key] = value
	return nil
}

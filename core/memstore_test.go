package core

import "strings"

// memStore is a trivial in-memory StateStore used by the core package's own
// tests, so they exercise StateFacade/rules/handlers without touching disk.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(address string) ([]byte, bool, error) {
	v, ok := m.data[address]
	return v, ok, nil
}

func (m *memStore) SetMany(entries map[string][]byte) error {
	for k, v := range entries {
		m.data[k] = v
	}
	return nil
}

func (m *memStore) PrefixScan(prefix string) (map[string][]byte, error) {
	out := map[string][]byte{}
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

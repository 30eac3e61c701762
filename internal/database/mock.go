package database

import (
	"context"
	"sync"
)

// MockManager is an in-memory Manager/Database double for tests: each
// instance holds a fixed table of named databases, each of which returns a
// fixed sequence of rows for any query it receives.
type MockManager struct {
	mu        sync.Mutex
	Databases map[string][]Row
	Queries   []string
}

// NewMockManager builds a MockManager over the given named result tables.
func NewMockManager(databases map[string][]Row) *MockManager {
	return &MockManager{Databases: databases}
}

func (m *MockManager) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.Databases[id]
	return ok, nil
}

func (m *MockManager) Open(_ context.Context, id string) (Database, error) {
	rows, ok := m.Databases[id]
	if !ok {
		return nil, &UnknownDatabase{ID: id}
	}
	return &mockDatabase{manager: m, rows: rows}, nil
}

// mockDatabase returns its fixed row set for every query and records the
// query text it was asked to run.
type mockDatabase struct {
	manager *MockManager
	rows    []Row
	closed  bool
}

func (d *mockDatabase) Query(_ context.Context, text string) ([]Row, error) {
	d.manager.mu.Lock()
	d.manager.Queries = append(d.manager.Queries, text)
	d.manager.mu.Unlock()
	return d.rows, nil
}

func (d *mockDatabase) Close() error {
	d.closed = true
	return nil
}

package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps rows in process memory. It backs the "memory" storage driver and doubles
// as the repository stub in tests.
type MemoryRepository struct {
	mu   sync.Mutex
	rows []Row
	// StoreErr is returned by Store when set.
	StoreErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Store(ctx context.Context, rows []Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StoreErr != nil {
		return m.StoreErr
	}
	m.rows = append(m.rows, rows...)
	return nil
}

// Delete removes the most recent row matching row's ID, or its time, description and amount
// when the ID is empty.
func (m *MemoryRepository) Delete(ctx context.Context, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.rows) - 1; i >= 0; i-- {
		candidate := m.rows[i]
		matches := row.ID != "" && candidate.ID == row.ID
		if row.ID == "" {
			matches = candidate.UserId == row.UserId && candidate.sameEntry(row)
		}
		if matches {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

func (m *MemoryRepository) List(ctx context.Context, userId int, from, to time.Time) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Row
	for _, row := range m.rows {
		if row.UserId == userId && row.within(from, to) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

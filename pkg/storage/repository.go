package storage

import (
	"context"
	"time"
)

// Repository persists expense rows outside the process. List returns rows with from <= time < to,
// oldest first.
type Repository interface {
	Store(ctx context.Context, rows []Row) error
	Delete(ctx context.Context, row Row) error
	List(ctx context.Context, userId int, from, to time.Time) ([]Row, error)
}

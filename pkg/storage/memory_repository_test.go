package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id string, userId int, at time.Time, description string, amount int64) Row {
	return Row{
		ID:          id,
		UserId:      userId,
		FullTime:    at,
		Day:         at.Day(),
		Month:       int(at.Month()),
		Year:        at.Year(),
		Description: description,
		Category:    "Other",
		Amount:      amount,
	}
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2025, 10, 13, 9, 0, 0, 0, saigon)

	t.Run("list filters by user and range", func(t *testing.T) {
		repo := NewMemoryRepository()
		require.NoError(t, repo.Store(ctx, []Row{
			row("a", 1, monday, "cơm", 35_000),
			row("b", 2, monday, "xăng", 50_000),
			row("c", 1, monday.AddDate(0, 0, 7), "phở", 50_000),
		}))

		rows, err := repo.List(ctx, 1, monday, monday.AddDate(0, 0, 7))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "a", rows[0].ID)
	})

	t.Run("delete by id", func(t *testing.T) {
		repo := NewMemoryRepository()
		require.NoError(t, repo.Store(ctx, []Row{row("a", 1, monday, "cơm", 35_000), row("b", 1, monday, "cơm", 35_000)}))

		require.NoError(t, repo.Delete(ctx, Row{ID: "a", UserId: 1}))

		rows, _ := repo.List(ctx, 1, monday, monday.Add(time.Hour))
		require.Len(t, rows, 1)
		assert.Equal(t, "b", rows[0].ID)
	})

	t.Run("delete without id removes the last matching entry", func(t *testing.T) {
		repo := NewMemoryRepository()
		require.NoError(t, repo.Store(ctx, []Row{row("a", 1, monday, "cơm", 35_000), row("b", 1, monday, "cơm", 35_000)}))

		require.NoError(t, repo.Delete(ctx, row("", 1, monday, "cơm", 35_000)))

		rows, _ := repo.List(ctx, 1, monday, monday.Add(time.Hour))
		require.Len(t, rows, 1)
		assert.Equal(t, "a", rows[0].ID)
	})

	t.Run("delete unknown row", func(t *testing.T) {
		repo := NewMemoryRepository()

		err := repo.Delete(ctx, Row{ID: "missing"})

		assert.ErrorIs(t, err, ErrRowNotFound)
	})
}

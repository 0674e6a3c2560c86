package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chitieu/chitieu/internal/event_bus"
	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMirror(now time.Time) (*MemoryRepository, *event_bus.EventBus, *Mirror) {
	repo := NewMemoryRepository()
	bus := event_bus.NewEventBus()
	mirror := NewMirror(repo, saigon, time.Second, &utils.MockClock{FixedNow: now})
	mirror.Subscribe(bus)
	return repo, bus, mirror
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	wednesday := time.Date(2025, 10, 15, 12, 0, 0, 0, saigon)
	transactions := []expense.Transaction{
		{ID: "1", Description: "cơm", Amount: 35_000, Category: expense.Food, Timestamp: wednesday},
		{ID: "2", Description: "xăng", Amount: 50_000, Category: expense.Transport, Timestamp: wednesday},
	}

	t.Run("stores recorded expenses", func(t *testing.T) {
		repo, bus, _ := setupMirror(wednesday)

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpensesRecordedType, event_bus.ExpensesRecorded{
			UserId: 5, Transactions: transactions,
		}))

		require.NoError(t, err)
		rows, _ := repo.List(ctx, 5, wednesday, wednesday.Add(time.Second))
		require.Len(t, rows, 2)
		assert.Equal(t, "cơm", rows[0].Description)
		assert.Equal(t, "Transport", rows[1].Category)
	})

	t.Run("deletes undone expense", func(t *testing.T) {
		repo, bus, _ := setupMirror(wednesday)
		require.NoError(t, bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpensesRecordedType, event_bus.ExpensesRecorded{
			UserId: 5, Transactions: transactions,
		})))

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseUndoneType, event_bus.ExpenseUndone{
			UserId: 5, Transaction: transactions[1],
		}))

		require.NoError(t, err)
		assert.Equal(t, 1, repo.Len())
	})

	t.Run("undo of a row that was never stored is not an error", func(t *testing.T) {
		_, bus, _ := setupMirror(wednesday)

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseUndoneType, event_bus.ExpenseUndone{
			UserId: 5, Transaction: transactions[0],
		}))

		assert.NoError(t, err)
	})

	t.Run("store failure reaches the publisher", func(t *testing.T) {
		repo, bus, _ := setupMirror(wednesday)
		repo.StoreErr = errors.New("sheet unavailable")

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.ExpensesRecordedType, event_bus.ExpensesRecorded{
			UserId: 5, Transactions: transactions,
		}))

		assert.ErrorIs(t, err, repo.StoreErr)
	})

	t.Run("seed returns the last week", func(t *testing.T) {
		repo, _, mirror := setupMirror(wednesday)
		require.NoError(t, repo.Store(ctx, []Row{
			RowFromTransaction(5, transactions[0], saigon),
			RowFromTransaction(5, expense.Transaction{ID: "old", Description: "cũ", Amount: 1, Timestamp: wednesday.AddDate(0, 0, -10)}, saigon),
		}))

		seeded := mirror.Seed(5)

		require.Len(t, seeded, 1)
		assert.Equal(t, "cơm", seeded[0].Description)
		assert.Equal(t, expense.Food, seeded[0].Category)
	})
}

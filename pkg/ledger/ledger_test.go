package ledger

import (
	"testing"
	"time"

	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(description string, amount int64) expense.Transaction {
	return expense.Transaction{
		Description: description,
		Amount:      amount,
		Category:    expense.Other,
		Timestamp:   time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedger_UndoLast(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		l := New()

		_, err := l.UndoLast()

		assert.ErrorIs(t, err, ErrEmptyLedger)
	})

	t.Run("removes the most recent transaction", func(t *testing.T) {
		l := New()
		l.Append(tx("cơm", 35_000))
		l.Append(tx("xăng", 50_000))

		undone, err := l.UndoLast()

		require.NoError(t, err)
		assert.Equal(t, "xăng", undone.Description)
		assert.Equal(t, []expense.Transaction{tx("cơm", 35_000)}, l.Transactions())
		assert.Equal(t, 1, l.Len())
	})

	t.Run("append then undo restores previous contents", func(t *testing.T) {
		l := New()
		l.Append(tx("cơm", 35_000))
		before := l.Transactions()

		l.Append(tx("trà sữa", 30_000))
		_, err := l.UndoLast()

		require.NoError(t, err)
		assert.Equal(t, before, l.Transactions())
	})

	t.Run("only one level of undo", func(t *testing.T) {
		l := New()
		l.Append(tx("cơm", 35_000))
		l.Append(tx("xăng", 50_000))

		_, err := l.UndoLast()
		require.NoError(t, err)
		_, err = l.UndoLast()

		assert.ErrorIs(t, err, ErrEmptyLedger)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("new append allows another undo", func(t *testing.T) {
		l := New()
		l.Append(tx("cơm", 35_000))
		_, _ = l.UndoLast()
		l.Append(tx("phở", 50_000))

		undone, err := l.UndoLast()

		require.NoError(t, err)
		assert.Equal(t, "phở", undone.Description)
		assert.Equal(t, 0, l.Len())
	})
}

func TestLedger_Transactions_ReturnsCopy(t *testing.T) {
	l := New()
	l.Append(tx("cơm", 35_000))

	got := l.Transactions()
	got[0].Description = "changed"

	assert.Equal(t, "cơm", l.Transactions()[0].Description)
}

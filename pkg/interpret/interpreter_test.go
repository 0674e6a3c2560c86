package interpret

import (
	"sync"
	"testing"
	"time"

	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saigon = time.FixedZone("Asia/Ho_Chi_Minh", 7*60*60)

// Wednesday
var midweek = time.Date(2025, 10, 15, 12, 30, 0, 0, saigon)

func setupInterpreter(now time.Time) (*Interpreter, *Registry) {
	settings := budget.DefaultSettings()
	settings.Location = saigon
	interpreter := NewInterpreter(
		expense.NewItemParser(expense.DefaultFillerWords()),
		expense.NewCategorizer(expense.DefaultCategoryRules(), expense.Other),
		expense.NewWasteDetector(expense.DefaultWasteKeywords(), expense.DefaultWasteWarnings()),
		&utils.MockClock{FixedNow: now},
	)
	return interpreter, NewRegistry(settings, nil)
}

type expected struct {
	description string
	amount      int64
	category    expense.Category
	wasteful    bool
}

func simplify(transactions []expense.Transaction) []expected {
	out := make([]expected, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, expected{tx.Description, tx.Amount, tx.Category, tx.IsWasteful})
	}
	return out
}

func TestInterpreter_Interpret_EndToEnd(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)
	session := registry.Session(1)

	result := interpreter.Interpret(session, "cơm 35k, trà sữa 30k, xăng 50k", midweek)

	assert.Equal(t, []expected{
		{"cơm", 35_000, expense.Food, false},
		{"trà sữa", 30_000, expense.Other, true},
		{"xăng", 50_000, expense.Transport, false},
	}, simplify(result.Transactions))
	assert.Equal(t, int64(115_000), result.Budget.Spent)
	assert.Equal(t, int64(585_000), result.Budget.Remaining)
	assert.Equal(t, budget.LevelNormal, result.Budget.Level)
	assert.Equal(t, []string{"trà sữa"}, result.WasteAlerts)
	assert.Equal(t, 3, len(session.Transactions()))
}

func TestInterpreter_Interpret_AssignsIdsAndTimestamps(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)

	result := interpreter.Interpret(registry.Session(1), "phở 50k\ntrà đá 5k", midweek)

	require.Len(t, result.Transactions, 2)
	assert.NotEmpty(t, result.Transactions[0].ID)
	assert.NotEqual(t, result.Transactions[0].ID, result.Transactions[1].ID)
	for _, tx := range result.Transactions {
		assert.True(t, midweek.Equal(tx.Timestamp))
	}
}

func TestInterpreter_Interpret_NoTransactions(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)
	session := registry.Session(1)
	interpreter.Interpret(session, "cơm 100k", midweek)

	result := interpreter.Interpret(session, "tuần này tiêu bao nhiêu rồi?", midweek)

	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.WasteAlerts)
	assert.Equal(t, int64(100_000), result.Budget.Spent)
}

func TestInterpreter_Interpret_DropsUnparsableLines(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)

	result := interpreter.Interpret(registry.Session(1), "phở 50k\n50k\nhoàn tiền -20k", midweek)

	assert.Equal(t, []expected{{"phở", 50_000, expense.Food, false}}, simplify(result.Transactions))
}

func TestInterpreter_Interpret_WarningEarlyInTheWeek(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)

	result := interpreter.Interpret(registry.Session(1), "tiền nhà 560k", midweek)

	assert.Equal(t, budget.LevelWarning, result.Budget.Level)
}

func TestInterpreter_Interpret_SessionsAreIsolated(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)

	interpreter.Interpret(registry.Session(1), "cơm 35k", midweek)
	result := interpreter.Interpret(registry.Session(2), "xăng 50k", midweek)

	assert.Equal(t, int64(50_000), result.Budget.Spent)
	assert.Equal(t, int64(35_000), registry.Session(1).Budget(midweek).Spent)
}

func TestInterpreter_UndoLast(t *testing.T) {
	t.Run("restores ledger and budget", func(t *testing.T) {
		interpreter, registry := setupInterpreter(midweek)
		session := registry.Session(1)
		interpreter.Interpret(session, "cơm 35k", midweek)
		before := session.Transactions()
		beforeBudget := session.Budget(midweek)

		interpreter.Interpret(session, "trà sữa 30k", midweek)
		undone, status, err := interpreter.UndoLast(session)

		require.NoError(t, err)
		assert.Equal(t, "trà sữa", undone.Description)
		assert.Equal(t, before, session.Transactions())
		assert.Equal(t, beforeBudget.Spent, status.Spent)
		assert.Equal(t, int64(665_000), status.Remaining)
	})

	t.Run("empty session", func(t *testing.T) {
		interpreter, registry := setupInterpreter(midweek)

		_, status, err := interpreter.UndoLast(registry.Session(1))

		assert.ErrorIs(t, err, ledger.ErrEmptyLedger)
		assert.Equal(t, int64(0), status.Spent)
	})

	t.Run("second undo fails", func(t *testing.T) {
		interpreter, registry := setupInterpreter(midweek)
		session := registry.Session(1)
		interpreter.Interpret(session, "cơm 35k, xăng 50k", midweek)

		_, _, err := interpreter.UndoLast(session)
		require.NoError(t, err)
		_, status, err := interpreter.UndoLast(session)

		assert.ErrorIs(t, err, ledger.ErrEmptyLedger)
		assert.Equal(t, int64(35_000), status.Spent)
	})

	t.Run("undo in a later week does not roll the week back", func(t *testing.T) {
		nextMonday := time.Date(2025, 10, 20, 8, 0, 0, 0, saigon)
		interpreter, registry := setupInterpreter(nextMonday)
		session := registry.Session(1)
		interpreter.Interpret(session, "cơm 35k", midweek)

		undone, status, err := interpreter.UndoLast(session)

		require.NoError(t, err)
		assert.Equal(t, "cơm", undone.Description)
		assert.Equal(t, int64(0), status.Spent)
		assert.True(t, time.Date(2025, 10, 20, 0, 0, 0, 0, saigon).Equal(status.WeekStart))
	})
}

func TestInterpreter_Interpret_Concurrent(t *testing.T) {
	interpreter, registry := setupInterpreter(midweek)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			interpreter.Interpret(registry.Session(7), "trà đá 5k", midweek)
		}()
	}
	wg.Wait()

	session := registry.Session(7)
	assert.Equal(t, 20, len(session.Transactions()))
	assert.Equal(t, int64(100_000), session.Budget(midweek).Spent)
}

func TestRegistry_Session_Seed(t *testing.T) {
	settings := budget.DefaultSettings()
	settings.Location = saigon
	calls := 0
	registry := NewRegistry(settings, func(userId int) []expense.Transaction {
		calls++
		return []expense.Transaction{
			{Description: "cơm", Amount: 35_000, Timestamp: midweek},
			{Description: "tuần trước", Amount: 999_000, Timestamp: midweek.AddDate(0, 0, -7)},
		}
	})

	session := registry.Session(3)
	registry.Session(3)

	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(35_000), session.Budget(midweek).Spent)
	assert.Empty(t, session.Transactions())
}

func TestRegistry_Session_SlowSeedDoesNotBlockOtherUsers(t *testing.T) {
	settings := budget.DefaultSettings()
	settings.Location = saigon
	started := make(chan struct{})
	release := make(chan struct{})
	registry := NewRegistry(settings, func(userId int) []expense.Transaction {
		if userId == 1 {
			close(started)
			<-release
		}
		return nil
	})

	// given
	slow := make(chan *Session)
	go func() {
		slow <- registry.Session(1)
	}()
	<-started

	// when
	other := make(chan *Session)
	go func() {
		other <- registry.Session(2)
	}()

	// then
	select {
	case s := <-other:
		assert.Equal(t, 2, s.UserId())
	case <-time.After(2 * time.Second):
		t.Fatal("session of user 2 waited for the seed of user 1")
	}
	close(release)
	first := <-slow
	assert.Same(t, first, registry.Session(1))
}

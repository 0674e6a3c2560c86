package storage

import (
	"context"
	"errors"
	"time"

	"github.com/chitieu/chitieu/internal/event_bus"
	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// Mirror keeps a Repository in sync with the in-memory sessions by listening to expense events.
type Mirror struct {
	repo    Repository
	loc     *time.Location
	timeout time.Duration
	clock   utils.Clock
}

func NewMirror(repo Repository, loc *time.Location, timeout time.Duration, clock utils.Clock) *Mirror {
	return &Mirror{repo: repo, loc: loc, timeout: timeout, clock: clock}
}

// Subscribe registers the mirror on bus. Handler errors propagate to the publisher.
func (m *Mirror) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.ExpensesRecorded](
		bus,
		event_bus.ExpensesRecordedType,
		func(e event_bus.EventT[event_bus.ExpensesRecorded]) error {
			log.Debugf("received expenses recorded event for user %d", e.Data.UserId)
			return m.store(e.Context(), e.Data)
		},
	)
	event_bus.SubscribeTyped[event_bus.ExpenseUndone](
		bus,
		event_bus.ExpenseUndoneType,
		func(e event_bus.EventT[event_bus.ExpenseUndone]) error {
			log.Debugf("received expense undone event for user %d", e.Data.UserId)
			return m.delete(e.Context(), e.Data)
		},
	)
}

func (m *Mirror) store(ctx context.Context, data event_bus.ExpensesRecorded) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	rows := make([]Row, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		rows = append(rows, RowFromTransaction(data.UserId, tx, m.loc))
	}
	if err := m.repo.Store(ctx, rows); err != nil {
		log.Errorf("failed to persist %d expenses of user %d: %v", len(rows), data.UserId, err)
		return err
	}
	return nil
}

func (m *Mirror) delete(ctx context.Context, data event_bus.ExpenseUndone) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.repo.Delete(ctx, RowFromTransaction(data.UserId, data.Transaction, m.loc))
	if errors.Is(err, ErrRowNotFound) {
		log.Warnf("undone expense %s of user %d was never persisted", data.Transaction.ID, data.UserId)
		return nil
	}
	return err
}

// Seed loads the last week of persisted expenses of a user so that a fresh session starts with
// the right weekly spend. Failures are logged and yield no transactions.
func (m *Mirror) Seed(userId int) []expense.Transaction {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	now := m.clock.Now()
	rows, err := m.repo.List(ctx, userId, now.AddDate(0, 0, -7), now.Add(time.Minute))
	if err != nil {
		log.Warnf("unable to seed session of user %d: %v", userId, err)
		return nil
	}
	transactions := make([]expense.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, row.Transaction())
	}
	return transactions
}

package interpret

import (
	"time"

	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Result struct {
	Transactions []expense.Transaction
	Budget       budget.Status
	// WasteAlerts holds the descriptions of the transactions flagged as wasteful.
	WasteAlerts []string
}

type Interpreter struct {
	items       *expense.ItemParser
	categorizer *expense.Categorizer
	waste       *expense.WasteDetector
	clock       utils.Clock
}

func NewInterpreter(
	items *expense.ItemParser,
	categorizer *expense.Categorizer,
	waste *expense.WasteDetector,
	clock utils.Clock,
) *Interpreter {
	return &Interpreter{items: items, categorizer: categorizer, waste: waste, clock: clock}
}

// Interpret turns a free-form message into transactions, records them in the session and folds
// them into the weekly budget. Lines that cannot be parsed are skipped; a message without any
// transaction is not an error.
func (i *Interpreter) Interpret(s *Session, message string, now time.Time) Result {
	var transactions []expense.Transaction
	var alerts []string
	for _, line := range expense.Split(message) {
		item, err := i.items.Parse(line)
		if err != nil {
			log.Debugf("dropping line %q: %v", line, err)
			continue
		}
		tx := expense.Transaction{
			ID:          uuid.NewString(),
			Description: item.Description,
			Amount:      item.Amount,
			Category:    i.categorizer.Categorize(item.Description),
			IsWasteful:  i.waste.IsWasteful(item.Description),
			Timestamp:   now,
		}
		if tx.IsWasteful {
			alerts = append(alerts, tx.Description)
		}
		transactions = append(transactions, tx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.tracker.Status(now)
	for _, tx := range transactions {
		s.ledger.Append(tx)
		status = s.tracker.Record(tx.Amount, tx.Timestamp)
	}
	log.Debugf("user %d: %d transactions recorded, spent %d of %d", s.userId, len(transactions), status.Spent, status.Limit)

	return Result{Transactions: transactions, Budget: status, WasteAlerts: alerts}
}

// UndoLast removes the most recent transaction of the session and takes its amount back out of
// the weekly budget.
func (i *Interpreter) UndoLast(s *Session) (expense.Transaction, budget.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.ledger.UndoLast()
	if err != nil {
		return expense.Transaction{}, s.tracker.Status(i.clock.Now()), err
	}
	s.tracker.Revert(tx.Amount, tx.Timestamp)
	log.Debugf("user %d: undone %q (%d)", s.userId, tx.Description, tx.Amount)
	return tx, s.tracker.Status(i.clock.Now()), nil
}

// WasteWarning picks the scolding message shown for wasteful purchases.
func (i *Interpreter) WasteWarning(pick func(n int) int) string {
	return i.waste.Warning(pick)
}

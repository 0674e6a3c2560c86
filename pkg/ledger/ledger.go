package ledger

import (
	"errors"

	"github.com/chitieu/chitieu/pkg/expense"
)

var ErrEmptyLedger = errors.New("nothing to undo")

// Ledger is the ordered list of transactions recorded in one session. Only the most recent
// append can be undone; after an undo the ledger has to receive a new transaction before
// another undo is possible.
type Ledger struct {
	transactions []expense.Transaction
	undoable     bool
}

func New() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(tx expense.Transaction) {
	l.transactions = append(l.transactions, tx)
	l.undoable = true
}

func (l *Ledger) UndoLast() (expense.Transaction, error) {
	if !l.undoable || len(l.transactions) == 0 {
		return expense.Transaction{}, ErrEmptyLedger
	}
	last := l.transactions[len(l.transactions)-1]
	l.transactions = l.transactions[:len(l.transactions)-1]
	l.undoable = false
	return last, nil
}

// Transactions returns a copy of the recorded transactions, oldest first.
func (l *Ledger) Transactions() []expense.Transaction {
	out := make([]expense.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) Len() int {
	return len(l.transactions)
}

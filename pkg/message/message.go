package message

import (
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
)

type Kind string

const (
	// KindExpense means the message was recorded as one or more expenses.
	KindExpense Kind = "expense"
	// KindAnswer means the message carried no expense and the assistant answered it.
	KindAnswer Kind = "answer"
	// KindHint means nothing could be done with the message and the usage hint was sent back.
	KindHint   Kind = "hint"
	KindUndo   Kind = "undo"
	KindReport Kind = "report"
	KindSplit  Kind = "split"
	KindHelp   Kind = "help"
)

// Reply is the outcome of one incoming message.
type Reply struct {
	Kind         Kind
	Transactions []expense.Transaction
	Budget       budget.Status
	WasteAlerts  []string
	WasteWarning string
	// Persisted is false when the persistence mirror failed. The expenses stay in the session.
	Persisted bool
	Text      string
}

package event_bus

import "github.com/chitieu/chitieu/pkg/expense"

const (
	ExpensesRecordedType EventType = "expense.recorded"
	ExpenseUndoneType    EventType = "expense.undone"
)

// ExpensesRecorded is published once per message that produced at least one transaction.
type ExpensesRecorded struct {
	UserId       int
	Transactions []expense.Transaction
}

type ExpenseUndone struct {
	UserId      int
	Transaction expense.Transaction
}

package message

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chitieu/chitieu/internal/event_bus"
	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/assistant"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/interpret"
	"github.com/chitieu/chitieu/pkg/report"
	"github.com/chitieu/chitieu/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Handle(ctx context.Context, text string) (Reply, error)
	Undo(ctx context.Context) (Reply, error)
	WeeklyBudget(ctx context.Context) (budget.Status, error)
}

type ServiceImpl struct {
	sessions    *interpret.Registry
	interpreter *interpret.Interpreter
	eventBus    *event_bus.EventBus
	assistant   assistant.Assistant
	reports     report.Service
	clock       utils.Clock
	// pick chooses the waste warning shown with a reply
	pick func(n int) int
}

func NewServiceImpl(
	sessions *interpret.Registry,
	interpreter *interpret.Interpreter,
	eventBus *event_bus.EventBus,
	assistant assistant.Assistant,
	reports report.Service,
	clock utils.Clock,
	pick func(n int) int,
) *ServiceImpl {
	return &ServiceImpl{
		sessions:    sessions,
		interpreter: interpreter,
		eventBus:    eventBus,
		assistant:   assistant,
		reports:     reports,
		clock:       clock,
		pick:        pick,
	}
}

// Handle records the expenses found in text. Messages starting with a slash are commands. A message
// without any expense is handed to the assistant.
func (s *ServiceImpl) Handle(ctx context.Context, text string) (Reply, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to get current user: %w", err)
	}

	text = strings.TrimSpace(text)
	if command, args, ok := parseCommand(text); ok {
		return s.command(ctx, command, args)
	}

	session := s.sessions.Session(userId)
	now := s.clock.Now()
	result := s.interpreter.Interpret(session, text, now)
	if len(result.Transactions) == 0 {
		log.Debugf("no expense found in message of user %d", userId)
		return s.ask(ctx, text, result.Budget)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpensesRecordedType, event_bus.ExpensesRecorded{
		UserId:       userId,
		Transactions: result.Transactions,
	}))
	if err != nil {
		log.Warnf("expenses of user %d were not persisted: %v", userId, err)
	}

	reply := Reply{
		Kind:         KindExpense,
		Transactions: result.Transactions,
		Budget:       result.Budget,
		WasteAlerts:  result.WasteAlerts,
		Persisted:    err == nil,
	}
	if len(result.WasteAlerts) > 0 {
		reply.WasteWarning = s.interpreter.WasteWarning(s.pick)
	}
	reply.Text = expenseText(reply, now)
	log.Infof("user %d recorded %d expenses, week spent %d", userId, len(result.Transactions), result.Budget.Spent)
	return reply, nil
}

func (s *ServiceImpl) Undo(ctx context.Context) (Reply, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to get current user: %w", err)
	}

	tx, status, err := s.interpreter.UndoLast(s.sessions.Session(userId))
	if err != nil {
		return Reply{}, err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ExpenseUndoneType, event_bus.ExpenseUndone{
		UserId:      userId,
		Transaction: tx,
	}))
	if err != nil {
		log.Warnf("undo of %s by user %d was not persisted: %v", tx.ID, userId, err)
	}

	log.Infof("user %d undid %q", userId, tx.Description)
	return Reply{
		Kind:         KindUndo,
		Transactions: []expense.Transaction{tx},
		Budget:       status,
		Persisted:    err == nil,
		Text:         undoText(tx, status),
	}, nil
}

func (s *ServiceImpl) WeeklyBudget(ctx context.Context) (budget.Status, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return budget.Status{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.sessions.Session(userId).Budget(s.clock.Now()), nil
}

func (s *ServiceImpl) ask(ctx context.Context, question string, status budget.Status) (Reply, error) {
	hint := Reply{Kind: KindHint, Budget: status, Persisted: true, Text: UsageHint}
	if question == "" {
		return hint, nil
	}

	financialContext := ""
	summary, err := s.reports.GetSummary(ctx)
	if err != nil {
		log.Warnf("unable to build financial context: %v", err)
	} else {
		financialContext = report.FinancialContext(summary)
	}

	answer, err := s.assistant.Ask(ctx, question, financialContext)
	if err != nil {
		if !errors.Is(err, assistant.ErrNotConfigured) {
			log.Errorf("assistant failed to answer: %v", err)
		}
		return hint, nil
	}
	return Reply{Kind: KindAnswer, Budget: status, Persisted: true, Text: answer}, nil
}

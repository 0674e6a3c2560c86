package app

import (
	"math/rand/v2"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/chitieu/chitieu/internal/event_bus"
	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/assistant"
	"github.com/chitieu/chitieu/pkg/bill_split"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
	"github.com/chitieu/chitieu/pkg/interpret"
	"github.com/chitieu/chitieu/pkg/message"
	"github.com/chitieu/chitieu/pkg/report"
	"github.com/chitieu/chitieu/pkg/storage"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	Repository storage.Repository
	Mirror     *storage.Mirror

	Sessions    *interpret.Registry
	Interpreter *interpret.Interpreter

	Assistant assistant.Assistant

	ReportService *report.ServiceImpl
	ReportHandler *report.Handler

	MessageService *message.ServiceImpl
	MessageHandler *message.Handler

	BillSplitHandler *bill_split.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repo storage.Repository, settings budget.Settings, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{Location: settings.Location}
	deps.EventBus = event_bus.NewEventBus()

	deps.Repository = repo
	deps.Mirror = storage.NewMirror(repo, settings.Location, StorageTimeout(cfg.Storage), deps.Clock)
	deps.Mirror.Subscribe(deps.EventBus)

	rules, fallback := CategoryRules(cfg.Categories)
	deps.Sessions = interpret.NewRegistry(settings, deps.Mirror.Seed)
	deps.Interpreter = interpret.NewInterpreter(
		expense.NewItemParser(orDefault(cfg.Parser.FillerWords, expense.DefaultFillerWords)),
		expense.NewCategorizer(rules, fallback),
		expense.NewWasteDetector(
			orDefault(cfg.Waste.Keywords, expense.DefaultWasteKeywords),
			orDefault(cfg.Waste.Warnings, expense.DefaultWasteWarnings),
		),
		deps.Clock,
	)

	deps.Assistant = assistant.NewGeminiAssistant(cfg.Gemini)

	deps.ReportService = report.NewServiceImpl(repo, deps.Sessions, settings.Location, deps.Clock)
	deps.ReportHandler = report.NewHandler(deps.ReportService, report.NewCsvRenderer(), deps.Clock)

	deps.MessageService = message.NewServiceImpl(
		deps.Sessions,
		deps.Interpreter,
		deps.EventBus,
		deps.Assistant,
		deps.ReportService,
		deps.Clock,
		rand.IntN,
	)
	deps.MessageHandler = message.NewHandler(deps.MessageService)

	deps.BillSplitHandler = bill_split.NewHandler()

	return deps
}

package app

import (
	"fmt"
	"time"

	"github.com/chitieu/chitieu/internal/config"
	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/expense"
)

func BudgetSettings(cfg config.Budget) (budget.Settings, error) {
	firstDay, err := budget.ParseWeekday(cfg.FirstDay)
	if err != nil {
		return budget.Settings{}, err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return budget.Settings{}, fmt.Errorf("invalid budget timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.WeeklyLimit < 0 {
		return budget.Settings{}, fmt.Errorf("weekly limit must not be negative, got %d", cfg.WeeklyLimit)
	}
	return budget.Settings{
		Limit:            cfg.WeeklyLimit,
		FirstDay:         firstDay,
		Location:         loc,
		WarningPercent:   cfg.WarningPercent,
		EarlyWarningDays: cfg.EarlyWarningDays,
	}, nil
}

// CategoryRules converts the configured keyword table. An empty table means the built-in one.
func CategoryRules(cfg config.Categories) ([]expense.CategoryRule, expense.Category) {
	fallback := expense.Category(cfg.Default)
	if len(cfg.Rules) == 0 {
		return expense.DefaultCategoryRules(), fallback
	}
	rules := make([]expense.CategoryRule, 0, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		rules = append(rules, expense.CategoryRule{Name: expense.Category(rule.Name), Keywords: rule.Keywords})
	}
	return rules, fallback
}

// StorageTimeout bounds every call to the persistence mirror.
func StorageTimeout(cfg config.Storage) time.Duration {
	if cfg.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

func orDefault(values []string, defaults func() []string) []string {
	if len(values) == 0 {
		return defaults()
	}
	return values
}

package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chitieu/chitieu/internal/utils"
	"github.com/chitieu/chitieu/pkg/interpret"
	"github.com/chitieu/chitieu/pkg/storage"
	"github.com/chitieu/chitieu/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetSummary(ctx context.Context) (Summary, error)
	MonthRows(ctx context.Context, year int, month time.Month) ([]storage.Row, error)
}

type ServiceImpl struct {
	repo     storage.Repository
	sessions *interpret.Registry
	loc      *time.Location
	clock    utils.Clock
}

func NewServiceImpl(repo storage.Repository, sessions *interpret.Registry, loc *time.Location, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		sessions: sessions,
		loc:      loc,
		clock:    clock,
	}
}

// GetSummary totals the persisted rows of the current day and month. The weekly figures come from
// the user's session, which is the authority for the running budget.
func (s *ServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	now := s.clock.Now().In(s.loc)
	week := s.sessions.Session(userId).Budget(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	nextMonth := monthStart.AddDate(0, 1, 0)

	from := monthStart
	if week.WeekStart.Before(from) {
		from = week.WeekStart
	}
	to := nextMonth
	if week.WeekEnd.After(to) {
		to = week.WeekEnd
	}
	rows, err := s.repo.List(ctx, userId, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list expenses: %w", err)
	}
	log.Tracef("report of user %d based on %d rows", userId, len(rows))

	summary := Summary{GeneratedAt: now, Week: week}
	byCategory := map[string]int64{}
	for _, row := range rows {
		local := row.FullTime.In(s.loc)
		if !local.Before(monthStart) && local.Before(nextMonth) {
			summary.Month += row.Amount
			byCategory[row.Category] += row.Amount
			if sameDays(local, now, s.loc) {
				summary.Today += row.Amount
			}
		}
	}
	summary.TopCategories = topCategories(byCategory, topCategoriesLimit)
	summary.Recent = newestFirst(rows, recentLimit)

	return summary, nil
}

func (s *ServiceImpl) MonthRows(ctx context.Context, year int, month time.Month) ([]storage.Row, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	return s.repo.List(ctx, userId, from, from.AddDate(0, 1, 0))
}

func topCategories(byCategory map[string]int64, limit int) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

func newestFirst(rows []storage.Row, limit int) []storage.Row {
	out := make([]storage.Row, 0, limit)
	for i := len(rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, rows[i])
	}
	return out
}

func sameDays(date1, date2 time.Time, loc *time.Location) bool {
	year1, month1, day1 := date1.In(loc).Date()
	year2, month2, day2 := date2.In(loc).Date()
	return year1 == year2 && month1 == month2 && day1 == day2
}

package report

import (
	"time"

	"github.com/chitieu/chitieu/pkg/budget"
	"github.com/chitieu/chitieu/pkg/storage"
)

const (
	topCategoriesLimit = 5
	recentLimit        = 5
)

type CategoryTotal struct {
	Category string
	Amount   int64
}

// Summary is the spending overview of one user at GeneratedAt.
type Summary struct {
	GeneratedAt time.Time
	Today       int64
	Month       int64
	Week        budget.Status
	// TopCategories of the current month, largest first.
	TopCategories []CategoryTotal
	// Recent rows, newest first.
	Recent []storage.Row
}

package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chitieu/chitieu/pkg/expense"
)

// TimeLayout is the format of the "Full Time" column.
const TimeLayout = "2006-01-02 15:04:05"

var ErrRowNotFound = errors.New("row not found")

// Header is the first row of the expense sheet.
var Header = []string{"Full Time", "Ngày", "Tháng", "Năm", "Tên món", "Phân loại", "Số tiền"}

// Row is the persisted shape of a transaction: the seven sheet columns plus the identifiers that
// only the database keeps.
type Row struct {
	ID          string
	UserId      int
	FullTime    time.Time
	Day         int
	Month       int
	Year        int
	Description string
	Category    string
	Amount      int64
	IsWasteful  bool
}

func RowFromTransaction(userId int, tx expense.Transaction, loc *time.Location) Row {
	local := tx.Timestamp.In(loc)
	return Row{
		ID:          tx.ID,
		UserId:      userId,
		FullTime:    local,
		Day:         local.Day(),
		Month:       int(local.Month()),
		Year:        local.Year(),
		Description: tx.Description,
		Category:    string(tx.Category),
		Amount:      tx.Amount,
		IsWasteful:  tx.IsWasteful,
	}
}

func (r Row) Transaction() expense.Transaction {
	return expense.Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    expense.Category(r.Category),
		IsWasteful:  r.IsWasteful,
		Timestamp:   r.FullTime,
	}
}

// Values returns the seven sheet cells of the row.
func (r Row) Values() []interface{} {
	return []interface{}{
		r.FullTime.Format(TimeLayout),
		r.Day,
		r.Month,
		r.Year,
		r.Description,
		r.Category,
		r.Amount,
	}
}

// sameEntry reports whether other describes the same expense, ignoring identifiers.
func (r Row) sameEntry(other Row) bool {
	return r.FullTime.Format(TimeLayout) == other.FullTime.Format(TimeLayout) &&
		r.Description == other.Description &&
		r.Amount == other.Amount
}

func (r Row) within(from, to time.Time) bool {
	return !r.FullTime.Before(from) && r.FullTime.Before(to)
}

// parseValues reads a row back from sheet cells.
func parseValues(cells []interface{}, loc *time.Location) (Row, error) {
	if len(cells) < len(Header) {
		return Row{}, fmt.Errorf("expected %d cells, got %d", len(Header), len(cells))
	}
	text := make([]string, len(Header))
	for i := range Header {
		text[i] = cellText(cells[i])
	}

	fullTime, err := time.ParseInLocation(TimeLayout, text[0], loc)
	if err != nil {
		return Row{}, fmt.Errorf("invalid time %q: %w", text[0], err)
	}
	var numbers [3]int
	for i := range numbers {
		numbers[i], err = strconv.Atoi(text[i+1])
		if err != nil {
			return Row{}, fmt.Errorf("invalid %s %q: %w", Header[i+1], text[i+1], err)
		}
	}
	amount, err := strconv.ParseInt(strings.NewReplacer(",", "", ".", "").Replace(text[6]), 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid amount %q: %w", text[6], err)
	}

	return Row{
		FullTime:    fullTime,
		Day:         numbers[0],
		Month:       numbers[1],
		Year:        numbers[2],
		Description: text[4],
		Category:    text[5],
		Amount:      amount,
	}, nil
}

func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

package expense

import "time"

type Category string

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Education Category = "Education"
	Other     Category = "Other"
)

// Transaction is one parsed expense item.
type Transaction struct {
	ID          string
	Description string
	// Amount is expressed in đồng and is always positive.
	Amount     int64
	Category   Category
	IsWasteful bool
	Timestamp  time.Time
}

func (t Transaction) Day() int {
	return t.Timestamp.Day()
}

func (t Transaction) Month() int {
	return int(t.Timestamp.Month())
}

func (t Transaction) Year() int {
	return t.Timestamp.Year()
}

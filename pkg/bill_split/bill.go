package bill_split

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chitieu/chitieu/pkg/amount"
)

var ErrInvalidBill = errors.New("invalid bill")

type Share struct {
	Name   string
	Amount int64
	// Remainder is the part of Amount that comes from the undivisible rest of the total.
	Remainder int64
}

type Bill struct {
	Total     int64
	People    int
	PerPerson int64
	Remainder int64
	// Shares is only filled when the bill is split between named people.
	Shares []Share
}

func SplitEvenly(total int64, people int) (Bill, error) {
	if total <= 0 {
		return Bill{}, fmt.Errorf("%w: total must be positive", ErrInvalidBill)
	}
	if people <= 0 {
		return Bill{}, fmt.Errorf("%w: number of people must be positive", ErrInvalidBill)
	}
	return Bill{
		Total:     total,
		People:    people,
		PerPerson: total / int64(people),
		Remainder: total % int64(people),
	}, nil
}

// SplitByNames splits total between names. The last person pays the remainder.
func SplitByNames(total int64, names []string) (Bill, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		return Bill{}, fmt.Errorf("%w: no names", ErrInvalidBill)
	}
	bill, err := SplitEvenly(total, len(cleaned))
	if err != nil {
		return Bill{}, err
	}
	bill.Shares = make([]Share, 0, len(cleaned))
	for i, name := range cleaned {
		share := Share{Name: name, Amount: bill.PerPerson}
		if i == len(cleaned)-1 {
			share.Amount += bill.Remainder
			share.Remainder = bill.Remainder
		}
		bill.Shares = append(bill.Shares, share)
	}
	return bill, nil
}

// ParseNames splits a comma separated list of names.
func ParseNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseCommand reads the arguments of a split command: an amount followed by either the number of
// people ("500k 4") or a list of names ("300k Nam, Hùng, Lộc").
func ParseCommand(args string) (Bill, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return Bill{}, fmt.Errorf("%w: expected an amount and people", ErrInvalidBill)
	}
	total, err := amount.Parse(fields[0])
	if err != nil {
		return Bill{}, fmt.Errorf("%w: %w", ErrInvalidBill, err)
	}
	rest := strings.Join(fields[1:], " ")
	if people, err := strconv.Atoi(rest); err == nil {
		return SplitEvenly(total, people)
	}
	return SplitByNames(total, ParseNames(rest))
}

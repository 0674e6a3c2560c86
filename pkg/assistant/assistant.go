package assistant

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("assistant is not configured")

// Assistant answers free-form questions that do not describe any expense, such as "tuần này tiêu
// bao nhiêu rồi?". financialContext is a plain-text summary of the user's recent spending.
type Assistant interface {
	Ask(ctx context.Context, question string, financialContext string) (string, error)
}

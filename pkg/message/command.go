package message

import (
	"context"
	"errors"
	"strings"

	"github.com/chitieu/chitieu/pkg/bill_split"
	"github.com/chitieu/chitieu/pkg/ledger"
	"github.com/chitieu/chitieu/pkg/report"
	log "github.com/sirupsen/logrus"
)

// parseCommand splits "/chia 500k 4" into "chia" and "500k 4". A bot suffix ("/undo@bot") is dropped.
func parseCommand(text string) (string, string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	command, args, _ := strings.Cut(text[1:], " ")
	command, _, _ = strings.Cut(command, "@")
	return strings.ToLower(command), strings.TrimSpace(args), true
}

func (s *ServiceImpl) command(ctx context.Context, command string, args string) (Reply, error) {
	log.Debugf("handling command /%s", command)
	switch command {
	case "undo":
		reply, err := s.Undo(ctx)
		if errors.Is(err, ledger.ErrEmptyLedger) {
			return Reply{Kind: KindUndo, Persisted: true, Text: nothingToUndo}, nil
		}
		return reply, err
	case "report", "thongke":
		summary, err := s.reports.GetSummary(ctx)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Kind: KindReport, Budget: summary.Week, Persisted: true, Text: report.Text(summary)}, nil
	case "chia":
		bill, err := bill_split.ParseCommand(args)
		if err != nil {
			log.Debugf("invalid split command %q: %v", args, err)
			return Reply{Kind: KindSplit, Persisted: true, Text: bill_split.Usage}, nil
		}
		return Reply{Kind: KindSplit, Persisted: true, Text: bill.Text()}, nil
	default:
		return Reply{Kind: KindHelp, Persisted: true, Text: helpText}, nil
	}
}

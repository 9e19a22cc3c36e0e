package history

import (
	"context"
	"errors"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// FanOut writes every interaction to all logs. History is served by the first
// log that can read interactions back.
type FanOut struct {
	logs []contractx.InteractionLog
}

func NewFanOut(logs ...contractx.InteractionLog) *FanOut {
	kept := make([]contractx.InteractionLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			kept = append(kept, l)
		}
	}
	return &FanOut{logs: kept}
}

func (f *FanOut) Record(ctx context.Context, in contractx.Interaction) error {
	var errs []error
	for _, l := range f.logs {
		if err := l.Record(ctx, in); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *FanOut) History(ctx context.Context, userID string, limit int) ([]contractx.Interaction, error) {
	for _, l := range f.logs {
		if h, ok := l.(contractx.InteractionHistory); ok {
			return h.History(ctx, userID, limit)
		}
	}
	return []contractx.Interaction{}, nil
}

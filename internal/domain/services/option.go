package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hexfield/rulecore/internal/domain/catalog"
	"github.com/hexfield/rulecore/internal/domain/options"
	"github.com/hexfield/rulecore/internal/domain/ports"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// OptionService mutates ruleset options and records every change in the
// catalog store. It subscribes to the options' change notifications, so
// changes made directly on an option after Watch are captured too.
type OptionService struct {
	store   ports.CatalogStore
	pending []options.Change
}

// NewOptionService creates an option service over the given store.
func NewOptionService(store ports.CatalogStore) *OptionService {
	return &OptionService{store: store}
}

// Watch subscribes to change notifications of every option in the
// ruleset. Call once per loaded ruleset.
func (s *OptionService) Watch(rs *Ruleset) {
	for _, o := range rs.Options() {
		o.AddListener(func(c options.Change) {
			s.pending = append(s.pending, c)
		})
	}
}

// Set coerces value into the named option.
func (s *OptionService) Set(rs *Ruleset, id, value string) error {
	opt := rs.Option(id)
	if opt == nil {
		return fmt.Errorf("option %q not found", id)
	}
	return opt.SetStringValue(value)
}

// Flush writes the collected changes to the store and clears them. It
// returns the number of changes written.
func (s *OptionService) Flush(ctx context.Context) (int, error) {
	for i, c := range s.pending {
		change := &catalog.OptionChange{
			OptionID:  c.OptionID,
			OldValue:  c.Old,
			NewValue:  c.New,
			ChangedAt: timeNow(),
		}
		if err := s.store.LogOptionChange(ctx, change); err != nil {
			s.pending = s.pending[i:]
			return i, fmt.Errorf("logging option change: %w", err)
		}
	}
	n := len(s.pending)
	s.pending = nil
	return n, nil
}

// History returns the most recent recorded changes of an option.
func (s *OptionService) History(ctx context.Context, optionID string, limit int) ([]catalog.OptionChange, error) {
	return s.store.FindOptionChanges(ctx, optionID, limit)
}

package handlers

import (
	"context"
	"fmt"

	"github.com/hexfield/rulecore/internal/domain/catalog"
	"github.com/hexfield/rulecore/internal/domain/services"
)

// OptionRow is one option in list form.
type OptionRow struct {
	ID      string
	Value   string
	Label   string
	Defined bool
}

// OptionHandler reads and mutates ruleset options.
type OptionHandler struct {
	opts *services.OptionService
}

// NewOptionHandler creates a new OptionHandler.
func NewOptionHandler(opts *services.OptionService) *OptionHandler {
	return &OptionHandler{opts: opts}
}

// HandleList returns one row per option, in document order.
func (h *OptionHandler) HandleList(rs *services.Ruleset) []OptionRow {
	opts := rs.Options()
	rows := make([]OptionRow, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, OptionRow{
			ID:      o.ID(),
			Value:   o.StringValue(),
			Label:   o.Label(),
			Defined: o.Defined(),
		})
	}
	return rows
}

// HandleSet sets the named option and flushes the recorded change to the
// catalog store.
func (h *OptionHandler) HandleSet(ctx context.Context, rs *services.Ruleset, id, value string) error {
	if err := h.opts.Set(rs, id, value); err != nil {
		return err
	}
	if _, err := h.opts.Flush(ctx); err != nil {
		return fmt.Errorf("recording option change: %w", err)
	}
	return nil
}

// HandleHistory returns the recorded changes of an option, newest first.
func (h *OptionHandler) HandleHistory(ctx context.Context, optionID string, limit int) ([]catalog.OptionChange, error) {
	return h.opts.History(ctx, optionID, limit)
}

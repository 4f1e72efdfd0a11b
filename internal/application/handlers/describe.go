package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/hexfield/rulecore/internal/domain/ports"
	"github.com/hexfield/rulecore/internal/domain/services"
)

// DescribeHandler produces an LLM-written prose summary of a ruleset.
type DescribeHandler struct {
	llm ports.Describer
}

// NewDescribeHandler creates a new DescribeHandler.
func NewDescribeHandler(llm ports.Describer) *DescribeHandler {
	return &DescribeHandler{llm: llm}
}

// HandleDescribe dumps the ruleset as plain text and asks the LLM for a
// summary.
func (h *DescribeHandler) HandleDescribe(ctx context.Context, rs *services.Ruleset) (string, error) {
	summary, err := h.llm.Describe(ctx, DumpRuleset(rs))
	if err != nil {
		return "", fmt.Errorf("describing ruleset: %w", err)
	}
	return summary, nil
}

// DumpRuleset renders the whole ruleset as plain text.
func DumpRuleset(rs *services.Ruleset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ruleset %s", rs.ID())
	if rs.Version() != "" {
		fmt.Fprintf(&b, " version %s", rs.Version())
	}
	b.WriteString("\n")
	for _, t := range rs.TileTypes() {
		b.WriteString(DumpTileType(t))
	}
	for _, o := range rs.Options() {
		fmt.Fprintf(&b, "option %s = %s", o.ID(), o.StringValue())
		if label := o.Label(); label != "" {
			fmt.Fprintf(&b, " (%s)", label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Package handlers contains application-level handlers bridging the CLI
// commands and the domain services.
package handlers

import (
	"fmt"

	"github.com/hexfield/rulecore/internal/domain/services"
)

// ValidationSummary is the outcome of validating one ruleset document.
type ValidationSummary struct {
	RulesetID string
	Version   string
	Goods     int
	Resources int
	Disasters int
	TileTypes int
	Options   int
	Warnings  []string
}

// ValidateHandler validates ruleset documents.
type ValidateHandler struct {
	svc *services.RulesetService
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(svc *services.RulesetService) *ValidateHandler {
	return &ValidateHandler{svc: svc}
}

// HandleValidate loads the document at path and reports what it contains.
// A malformed document returns an error; recoverable skips come back as
// warnings in the summary.
func (h *ValidateHandler) HandleValidate(path string) (*ValidationSummary, error) {
	rs, report, err := h.svc.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading ruleset: %w", err)
	}
	return &ValidationSummary{
		RulesetID: rs.ID(),
		Version:   rs.Version(),
		Goods:     len(rs.GoodsTypes()),
		Resources: len(rs.ResourceTypes()),
		Disasters: len(rs.Disasters()),
		TileTypes: len(rs.TileTypes()),
		Options:   len(rs.Options()),
		Warnings:  report.Warnings,
	}, nil
}

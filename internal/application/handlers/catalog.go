package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/hexfield/rulecore/internal/domain/catalog"
	"github.com/hexfield/rulecore/internal/domain/ports"
	"github.com/hexfield/rulecore/internal/domain/services"
)

// CatalogHandler manages the local catalog of installed rulesets.
type CatalogHandler struct {
	store ports.CatalogStore
	svc   *services.RulesetService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store ports.CatalogStore, svc *services.RulesetService) *CatalogHandler {
	return &CatalogHandler{store: store, svc: svc}
}

// HandleAdd validates the document at path and registers it in the
// catalog under its own ruleset identifier.
func (h *CatalogHandler) HandleAdd(ctx context.Context, path string) (*catalog.RulesetInfo, error) {
	rs, _, err := h.svc.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading ruleset: %w", err)
	}

	checksum, err := fileChecksum(path)
	if err != nil {
		return nil, err
	}

	info := &catalog.RulesetInfo{
		Name:     rs.ID(),
		Path:     path,
		Version:  rs.Version(),
		Checksum: checksum,
	}
	if err := h.store.SaveRuleset(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

// HandleList lists the installed rulesets.
func (h *CatalogHandler) HandleList(ctx context.Context) ([]catalog.RulesetInfo, error) {
	return h.store.ListRulesets(ctx)
}

// HandleRemove removes an installed ruleset from the catalog. The
// document file itself is left in place.
func (h *CatalogHandler) HandleRemove(ctx context.Context, name string) error {
	existing, err := h.store.FindRuleset(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("ruleset %q not found", name)
	}
	return h.store.DeleteRuleset(ctx, name)
}

func fileChecksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading ruleset for checksum: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

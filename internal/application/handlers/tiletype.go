package handlers

import (
	"fmt"
	"strings"

	"github.com/hexfield/rulecore/internal/domain/rules"
	"github.com/hexfield/rulecore/internal/domain/services"
)

// TileTypeRow is one tile type in list form.
type TileTypeRow struct {
	ID        string
	MoveCost  int
	WorkTurns int
	Flags     string
}

// TileTypeHandler reads tile type definitions out of a loaded ruleset.
type TileTypeHandler struct{}

// NewTileTypeHandler creates a new TileTypeHandler.
func NewTileTypeHandler() *TileTypeHandler {
	return &TileTypeHandler{}
}

// HandleList returns one row per tile type, in document order.
func (h *TileTypeHandler) HandleList(rs *services.Ruleset) []TileTypeRow {
	tiles := rs.TileTypes()
	rows := make([]TileTypeRow, 0, len(tiles))
	for _, t := range tiles {
		rows = append(rows, TileTypeRow{
			ID:        t.ID(),
			MoveCost:  t.BasicMoveCost(),
			WorkTurns: t.BasicWorkTurns(),
			Flags:     flagString(t),
		})
	}
	return rows
}

// HandleShow returns a plain-text description of one tile type.
func (h *TileTypeHandler) HandleShow(rs *services.Ruleset, id string) (string, error) {
	t := rs.TileType(id)
	if t == nil {
		return "", fmt.Errorf("tile type %q not found", id)
	}
	return DumpTileType(t), nil
}

// DumpTileType renders one tile type as indented plain text. The describe
// command feeds the same dump to the LLM client.
func DumpTileType(t *rules.TileType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "tile type %s\n", t.ID())
	fmt.Fprintf(&b, "  move cost %d, work turns %d\n", t.BasicMoveCost(), t.BasicWorkTurns())
	if flags := flagString(t); flags != "" {
		fmt.Fprintf(&b, "  flags: %s\n", flags)
	}
	for _, p := range t.ProductionTypes() {
		mode := "attended"
		if p.Unattended() {
			mode = "unattended"
		}
		fmt.Fprintf(&b, "  production (%s", mode)
		if p.Level() != "" {
			fmt.Fprintf(&b, ", level %s", p.Level())
		}
		b.WriteString("):")
		for _, out := range p.Outputs() {
			fmt.Fprintf(&b, " +%d %s", out.Amount, out.Type.ID())
		}
		for _, in := range p.Inputs() {
			fmt.Fprintf(&b, " -%d %s", in.Amount, in.Type.ID())
		}
		b.WriteString("\n")
	}
	for _, c := range t.WeightedResources() {
		fmt.Fprintf(&b, "  resource %s (weight %d)\n", c.Object.ID(), c.Probability)
	}
	for _, c := range t.Disasters() {
		fmt.Fprintf(&b, "  disaster %s (weight %d)\n", c.Object.ID(), c.Probability)
	}
	return b.String()
}

func flagString(t *rules.TileType) string {
	var flags []string
	if t.IsWater() {
		flags = append(flags, "water")
	}
	if t.IsForested() {
		flags = append(flags, "forest")
	}
	if t.IsElevation() {
		flags = append(flags, "elevation")
	}
	if t.IsConnected() {
		flags = append(flags, "connected")
	}
	if t.CanSettle() {
		flags = append(flags, "settleable")
	}
	return strings.Join(flags, ",")
}

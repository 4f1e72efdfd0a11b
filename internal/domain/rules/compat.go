package rules

import (
	"strings"

	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

// Versioned compatibility shim: legacy document tags accepted on read and
// normalized into current in-memory structures. Legacy tags are never
// written back. The whole file can be deleted once legacy document support
// is dropped.

const (
	primaryProductionTag   = "primary-production"
	secondaryProductionTag = "secondary-production"
	modifierTag            = "modifier"
	tileProductionTag      = "tile-production"

	goodsModifierPrefix = "model.goods."
)

// tileTypeCompat maps a legacy tile-type child tag to its rewrite rule.
// Consulted before canonical dispatch.
var tileTypeCompat = map[string]func(*TileType, *xmlio.Reader) error{
	primaryProductionTag:   readLegacyTileProduction,
	secondaryProductionTag: readLegacyTileProduction,
	modifierTag:            readLegacyModifier,
}

// readLegacyTileProduction handles the single-goods production tags of the
// legacy schema: primary-production, secondary-production, and production
// carrying a goods-type attribute.
//
// A secondary tag appends its goods to every unattended entry whose level
// matches; this only works when the primary tag appeared earlier in
// document order. A secondary tag with no preceding primary is a no-op,
// an ordering assumption carried over from the legacy format.
func readLegacyTileProduction(t *TileType, r *xmlio.Reader) error {
	tag := r.Name()
	goods, err := readGoodsAmount(r, t.reg)
	if err != nil {
		return err
	}
	level := r.StringAttr(tileProductionTag, "")
	switch tag {
	case primaryProductionTag:
		t.productions = append(t.productions,
			newSingleGoodsProduction(goods, true, level))
	case secondaryProductionTag:
		for _, p := range t.productions {
			if p.unattended && (level == "" || level == p.level) {
				p.appendOutput(goods)
			}
		}
	default:
		t.productions = append(t.productions,
			newSingleGoodsProduction(goods, false, level))
	}
	return r.Skip()
}

// readLegacyModifier discards bare goods-production modifiers, which the
// production-entry mechanism superseded. Anything else falls through to
// the generic child handler.
func readLegacyModifier(t *TileType, r *xmlio.Reader) error {
	if strings.HasPrefix(r.StringAttr(idTag, ""), goodsModifierPrefix) {
		return r.Skip()
	}
	return t.Base.ReadChild(r)
}

package rules

import (
	"fmt"

	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

const (
	tileTypeTag = "tile-type"

	basicMoveCostTag  = "basic-move-cost"
	basicWorkTurnsTag = "basic-work-turns"
	isForestTag       = "is-forest"
	isWaterTag        = "is-water"
	isElevationTag    = "is-elevation"
	isConnectedTag    = "is-connected"
	canSettleTag      = "can-settle"

	genTag            = "gen"
	humidityMinTag    = "humidityMin"
	humidityMaxTag    = "humidityMax"
	temperatureMinTag = "temperatureMin"
	temperatureMaxTag = "temperatureMax"
	altitudeMinTag    = "altitudeMin"
	altitudeMaxTag    = "altitudeMax"

	resourceTag    = "resource"
	disasterTag    = "disaster"
	typeTag        = "type"
	probabilityTag = "probability"
	deleteTag      = "delete"
)

// RangeKind selects one of the three climate bands of a tile type.
type RangeKind int

// Climate band kinds.
const (
	Humidity RangeKind = iota
	Temperature
	Altitude
)

// TileType is the definition of one terrain tile kind: capability flags,
// movement and work costs, climate bands, production recipes, and weighted
// resource and disaster tables. It is populated once during document load
// and not mutated afterwards.
type TileType struct {
	Base
	reg *Registry

	forest    bool
	water     bool
	canSettle bool
	connected bool
	elevation bool

	basicMoveCost  int
	basicWorkTurns int

	humidity    [2]int
	temperature [2]int
	altitude    [2]int

	resources   WeightedList[*ResourceType]
	disasters   WeightedList[*Disaster]
	productions []*ProductionType
}

// NewTileType creates an empty tile type resolving references through reg.
func NewTileType(reg *Registry) *TileType {
	return &TileType{reg: reg}
}

// Virtual tile types for land maps, which only distinguish water from
// land. They are built through the regular factory and identifier path so
// no under-initialized variant exists alongside loaded definitions.
var (
	Water = newVirtualTileType("model.tile.water", true)
	Land  = newVirtualTileType("model.tile.land", false)
)

func newVirtualTileType(id string, water bool) *TileType {
	t := NewTileType(nil)
	if err := t.SetID(id); err != nil {
		panic(err)
	}
	t.water = water
	t.canSettle = !water
	t.basicMoveCost = 1
	t.basicWorkTurns = 1
	return t
}

// TagName returns "tile-type".
func (t *TileType) TagName() string {
	return tileTypeTag
}

// IsForested reports whether this is a forested tile type.
func (t *TileType) IsForested() bool {
	return t.forest
}

// IsWater reports whether this is a water tile type.
func (t *TileType) IsWater() bool {
	return t.water
}

// CanSettle reports whether a settlement can be founded on this tile type.
func (t *TileType) CanSettle() bool {
	return t.canSettle
}

// IsConnected reports whether the tile type is inherently connected to the
// transport network.
func (t *TileType) IsConnected() bool {
	return t.connected
}

// IsElevation reports whether this is elevated terrain.
func (t *TileType) IsElevation() bool {
	return t.elevation
}

// BasicMoveCost returns the base movement cost through this tile type.
func (t *TileType) BasicMoveCost() int {
	return t.basicMoveCost
}

// BasicWorkTurns returns the base work turns to improve this tile type.
func (t *TileType) BasicWorkTurns() int {
	return t.basicWorkTurns
}

// WithinRange reports whether value falls inside the selected climate band.
func (t *TileType) WithinRange(kind RangeKind, value int) bool {
	switch kind {
	case Humidity:
		return t.humidity[0] <= value && value <= t.humidity[1]
	case Temperature:
		return t.temperature[0] <= value && value <= t.temperature[1]
	case Altitude:
		return t.altitude[0] <= value && value <= t.altitude[1]
	}
	return false
}

// WeightedResources returns the resource table in document order.
func (t *TileType) WeightedResources() []Choice[*ResourceType] {
	return t.resources.Choices()
}

// ResourceTypes returns the resource types without their weights.
func (t *TileType) ResourceTypes() []*ResourceType {
	choices := t.resources.Choices()
	out := make([]*ResourceType, len(choices))
	for i, c := range choices {
		out[i] = c.Object
	}
	return out
}

// CanHaveResource reports whether the resource type may appear on this
// tile type.
func (t *TileType) CanHaveResource(res *ResourceType) bool {
	for _, c := range t.resources.Choices() {
		if c.Object == res {
			return true
		}
	}
	return false
}

// Disasters returns the disaster table in document order.
func (t *TileType) Disasters() []Choice[*Disaster] {
	return t.disasters.Choices()
}

// ProductionTypes returns every production entry.
func (t *TileType) ProductionTypes() []*ProductionType {
	out := make([]*ProductionType, len(t.productions))
	copy(out, t.productions)
	return out
}

// ProductionTypesFor returns the entries with the given mode that apply to
// the given level. An empty level selects every level.
func (t *TileType) ProductionTypesFor(unattended bool, level string) []*ProductionType {
	var out []*ProductionType
	for _, p := range t.productions {
		if p.unattended == unattended && p.AppliesTo(level) {
			out = append(out, p)
		}
	}
	return out
}

// ProductionOf returns the best attended output amount of the given goods
// type across the production entries.
func (t *TileType) ProductionOf(goods *GoodsType) int {
	if goods == nil {
		return 0
	}
	amount := 0
	for _, p := range t.ProductionTypesFor(false, "") {
		for _, out := range p.outputs {
			if out.Type == goods && out.Amount > amount {
				amount = out.Amount
			}
		}
	}
	return amount
}

// PossibleProduction returns the flattened outputs of the unattended
// production entries.
func (t *TileType) PossibleProduction() []GoodsAmount {
	var out []GoodsAmount
	for _, p := range t.ProductionTypesFor(true, "") {
		out = append(out, p.outputs...)
	}
	return out
}

// ClearContainers resets the list containers ahead of a full-record
// override in a layered ruleset.
func (t *TileType) ClearContainers() {
	t.resources.Clear()
	t.disasters.Clear()
	t.productions = nil
}

// ReadAttributes reads the scalar fields with their documented defaults.
// Land settles by default, water does not, unless overridden explicitly.
func (t *TileType) ReadAttributes(r *xmlio.Reader) error {
	if err := t.Base.ReadAttributes(r); err != nil {
		return err
	}
	var err error
	if t.basicMoveCost, err = r.IntAttr(basicMoveCostTag, 1); err != nil {
		return err
	}
	if t.basicWorkTurns, err = r.IntAttr(basicWorkTurnsTag, 1); err != nil {
		return err
	}
	if t.forest, err = r.BoolAttr(isForestTag, false); err != nil {
		return err
	}
	if t.water, err = r.BoolAttr(isWaterTag, false); err != nil {
		return err
	}
	if t.elevation, err = r.BoolAttr(isElevationTag, false); err != nil {
		return err
	}
	if t.canSettle, err = r.BoolAttr(canSettleTag, !t.water); err != nil {
		return err
	}
	if t.connected, err = r.BoolAttr(isConnectedTag, false); err != nil {
		return err
	}
	return nil
}

// ReadChild dispatches one child element. Legacy tags run through the
// compatibility shim before canonical dispatch.
func (t *TileType) ReadChild(r *xmlio.Reader) error {
	tag := r.Name()
	if handle, ok := tileTypeCompat[tag]; ok {
		return handle(t, r)
	}
	switch tag {
	case genTag:
		return t.readGen(r)
	case productionTag:
		return t.readProduction(r)
	case resourceTag:
		return t.readResource(r)
	case disasterTag:
		return t.readDisaster(r)
	}
	return t.Base.ReadChild(r)
}

func (t *TileType) readGen(r *xmlio.Reader) error {
	var err error
	if t.humidity[0], err = r.IntAttr(humidityMinTag, 0); err != nil {
		return err
	}
	if t.humidity[1], err = r.IntAttr(humidityMaxTag, 100); err != nil {
		return err
	}
	if t.temperature[0], err = r.IntAttr(temperatureMinTag, -20); err != nil {
		return err
	}
	if t.temperature[1], err = r.IntAttr(temperatureMaxTag, 40); err != nil {
		return err
	}
	if t.altitude[0], err = r.IntAttr(altitudeMinTag, 0); err != nil {
		return err
	}
	if t.altitude[1], err = r.IntAttr(altitudeMaxTag, 0); err != nil {
		return err
	}
	return r.Skip()
}

func (t *TileType) readProduction(r *xmlio.Reader) error {
	del, err := r.BoolAttr(deleteTag, false)
	if err != nil {
		return err
	}
	if del {
		// Override rulesets use the delete directive to drop all
		// inherited production entries.
		t.productions = nil
		return r.Skip()
	}
	if _, legacy := r.Attr(goodsTypeTag); legacy {
		return readLegacyTileProduction(t, r)
	}
	p, err := readProductionType(r, t.reg)
	if err != nil {
		return err
	}
	t.productions = append(t.productions, p)
	return nil
}

func (t *TileType) readResource(r *xmlio.Reader) error {
	id, ok := r.Attr(typeTag)
	if !ok {
		return fmt.Errorf("element %q: missing %s attribute: %w",
			resourceTag, typeTag, xmlio.ErrFormat)
	}
	probability, err := r.IntAttr(probabilityTag, 100)
	if err != nil {
		return err
	}
	res, err := t.reg.Resource(id)
	if err != nil {
		r.Warnf("tile type %q: skipping resource %q: %v", t.ID(), id, err)
		return r.Skip()
	}
	t.resources.Add(res, probability)
	return r.Skip()
}

func (t *TileType) readDisaster(r *xmlio.Reader) error {
	id, ok := r.Attr(idTag)
	if !ok {
		return fmt.Errorf("element %q: missing %s attribute: %w",
			disasterTag, idTag, xmlio.ErrFormat)
	}
	probability, err := r.IntAttr(probabilityTag, 100)
	if err != nil {
		return err
	}
	d, err := t.reg.Disaster(id)
	if err != nil {
		r.Warnf("tile type %q: skipping disaster %q: %v", t.ID(), id, err)
		return r.Skip()
	}
	t.disasters.Add(d, probability)
	return r.Skip()
}

// WriteAttributes writes the scalar attributes in canonical order.
func (t *TileType) WriteAttributes(w *xmlio.Writer) error {
	if err := t.Base.WriteAttributes(w); err != nil {
		return err
	}
	w.IntAttr(basicMoveCostTag, t.basicMoveCost)
	w.IntAttr(basicWorkTurnsTag, t.basicWorkTurns)
	w.BoolAttr(isForestTag, t.forest)
	w.BoolAttr(isWaterTag, t.water)
	w.BoolAttr(isElevationTag, t.elevation)
	w.BoolAttr(isConnectedTag, t.connected)
	w.BoolAttr(canSettleTag, t.canSettle)
	return nil
}

// WriteChildren writes the children in canonical order: the gen ranges,
// production entries, resources, then disasters. Read accepts them in any
// order, but the write order is part of the format contract so serialized
// rulesets stay diffable.
func (t *TileType) WriteChildren(w *xmlio.Writer) error {
	if err := w.StartElement(genTag); err != nil {
		return err
	}
	w.IntAttr(humidityMinTag, t.humidity[0])
	w.IntAttr(humidityMaxTag, t.humidity[1])
	w.IntAttr(temperatureMinTag, t.temperature[0])
	w.IntAttr(temperatureMaxTag, t.temperature[1])
	w.IntAttr(altitudeMinTag, t.altitude[0])
	w.IntAttr(altitudeMaxTag, t.altitude[1])
	if err := w.EndElement(); err != nil {
		return err
	}
	for _, p := range t.productions {
		if err := p.write(w); err != nil {
			return err
		}
	}
	for _, c := range t.resources.Choices() {
		if err := w.StartElement(resourceTag); err != nil {
			return err
		}
		w.Attr(typeTag, c.Object.ID())
		w.IntAttr(probabilityTag, c.Probability)
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	for _, c := range t.disasters.Choices() {
		if err := w.StartElement(disasterTag); err != nil {
			return err
		}
		w.Attr(idTag, c.Object.ID())
		w.IntAttr(probabilityTag, c.Probability)
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	return nil
}

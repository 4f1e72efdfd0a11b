package rules

import (
	"fmt"

	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

const (
	productionTag      = "production"
	outputTag          = "output"
	inputTag           = "input"
	goodsTypeTag       = "goods-type"
	valueTag           = "value"
	unattendedTag      = "unattended"
	productionLevelTag = "productionLevel"
)

// GoodsAmount is a quantity of one goods type.
type GoodsAmount struct {
	Type   *GoodsType
	Amount int
}

// ProductionType is one recipe of goods a tile type can produce: ordered
// outputs and inputs, an attended/unattended mode flag, and an optional
// production-level label. An empty level applies to every level.
type ProductionType struct {
	outputs    []GoodsAmount
	inputs     []GoodsAmount
	unattended bool
	level      string
}

// NewProductionType creates an empty production entry.
func NewProductionType(unattended bool, level string) *ProductionType {
	return &ProductionType{unattended: unattended, level: level}
}

// newSingleGoodsProduction creates a legacy-style entry with one output.
func newSingleGoodsProduction(goods GoodsAmount, unattended bool, level string) *ProductionType {
	p := NewProductionType(unattended, level)
	p.outputs = append(p.outputs, goods)
	return p
}

// Outputs returns the produced goods in document order.
func (p *ProductionType) Outputs() []GoodsAmount {
	out := make([]GoodsAmount, len(p.outputs))
	copy(out, p.outputs)
	return out
}

// Inputs returns the consumed goods in document order.
func (p *ProductionType) Inputs() []GoodsAmount {
	in := make([]GoodsAmount, len(p.inputs))
	copy(in, p.inputs)
	return in
}

// Unattended reports whether the entry applies without a worker present.
func (p *ProductionType) Unattended() bool {
	return p.unattended
}

// Level returns the production-level label, empty when the entry applies
// to every level.
func (p *ProductionType) Level() string {
	return p.level
}

// AppliesTo reports whether the entry is selected at the given level. An
// empty query level, like an empty entry level, matches everything.
func (p *ProductionType) AppliesTo(level string) bool {
	return level == "" || p.level == "" || p.level == level
}

// appendOutput extends the outputs. Only the legacy secondary-production
// merge uses this after construction.
func (p *ProductionType) appendOutput(goods GoodsAmount) {
	p.outputs = append(p.outputs, goods)
}

func readGoodsAmount(r *xmlio.Reader, reg *Registry) (GoodsAmount, error) {
	id, ok := r.Attr(goodsTypeTag)
	if !ok {
		return GoodsAmount{}, fmt.Errorf("element %q: missing %s attribute: %w",
			r.Name(), goodsTypeTag, xmlio.ErrFormat)
	}
	goods, err := reg.Goods(id)
	if err != nil {
		return GoodsAmount{}, err
	}
	amount, err := r.IntAttr(valueTag, 0)
	if err != nil {
		return GoodsAmount{}, err
	}
	return GoodsAmount{Type: goods, Amount: amount}, nil
}

// readProductionType parses a current-schema production element: mode and
// level attributes, then ordered output and input children. An unknown
// goods reference is fatal here, unlike resource and disaster references.
func readProductionType(r *xmlio.Reader, reg *Registry) (*ProductionType, error) {
	unattended, err := r.BoolAttr(unattendedTag, false)
	if err != nil {
		return nil, err
	}
	p := NewProductionType(unattended, r.StringAttr(productionLevelTag, ""))
	for {
		ok, err := r.NextChild()
		if err != nil {
			return nil, err
		}
		if !ok {
			return p, nil
		}
		switch r.Name() {
		case outputTag:
			goods, err := readGoodsAmount(r, reg)
			if err != nil {
				return nil, err
			}
			p.outputs = append(p.outputs, goods)
		case inputTag:
			goods, err := readGoodsAmount(r, reg)
			if err != nil {
				return nil, err
			}
			p.inputs = append(p.inputs, goods)
		default:
			return nil, fmt.Errorf("element %q: %w", r.Name(), xmlio.ErrUnknownChild)
		}
		if err := r.Skip(); err != nil {
			return nil, err
		}
	}
}

// write emits the current-schema form. Legacy single-goods entries are
// written back in the current schema as well; the legacy tags are accepted
// on read only.
func (p *ProductionType) write(w *xmlio.Writer) error {
	if err := w.StartElement(productionTag); err != nil {
		return err
	}
	w.BoolAttr(unattendedTag, p.unattended)
	if p.level != "" {
		w.Attr(productionLevelTag, p.level)
	}
	for _, goods := range p.outputs {
		if err := w.StartElement(outputTag); err != nil {
			return err
		}
		w.Attr(goodsTypeTag, goods.Type.ID())
		w.IntAttr(valueTag, goods.Amount)
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	for _, goods := range p.inputs {
		if err := w.StartElement(inputTag); err != nil {
			return err
		}
		w.Attr(goodsTypeTag, goods.Type.ID())
		w.IntAttr(valueTag, goods.Amount)
		if err := w.EndElement(); err != nil {
			return err
		}
	}
	return w.EndElement()
}

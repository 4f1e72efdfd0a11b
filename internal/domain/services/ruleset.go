// Package services contains the load/save orchestration over the rule
// model: the two-phase ruleset document loader, layered overrides, and
// option change tracking.
package services

import (
	"fmt"
	"io"
	"os"

	"github.com/hexfield/rulecore/internal/domain/options"
	"github.com/hexfield/rulecore/internal/domain/ports"
	"github.com/hexfield/rulecore/internal/domain/rules"
	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

const (
	rulesetTag       = "ruleset"
	goodsTypesTag    = "goods-types"
	resourceTypesTag = "resource-types"
	disastersTag     = "disasters"
	tileTypesTag     = "tile-types"
	optionsTag       = "options"

	idTag      = "id"
	versionTag = "version"
)

// Ruleset is one loaded ruleset document: the registry of primitive types,
// the tile type definitions, and the configuration options.
type Ruleset struct {
	id      string
	version string

	reg       *rules.Registry
	goods     []*rules.GoodsType
	resources []*rules.ResourceType
	disasters []*rules.Disaster
	tiles     []*rules.TileType
	opts      []*options.RangeOption
}

// ID returns the ruleset identifier.
func (rs *Ruleset) ID() string { return rs.id }

// Version returns the ruleset version string, possibly empty.
func (rs *Ruleset) Version() string { return rs.version }

// Registry returns the reference registry of the ruleset.
func (rs *Ruleset) Registry() *rules.Registry { return rs.reg }

// GoodsTypes returns the goods types in document order.
func (rs *Ruleset) GoodsTypes() []*rules.GoodsType {
	return append([]*rules.GoodsType(nil), rs.goods...)
}

// ResourceTypes returns the resource types in document order.
func (rs *Ruleset) ResourceTypes() []*rules.ResourceType {
	return append([]*rules.ResourceType(nil), rs.resources...)
}

// Disasters returns the disasters in document order.
func (rs *Ruleset) Disasters() []*rules.Disaster {
	return append([]*rules.Disaster(nil), rs.disasters...)
}

// TileTypes returns the tile types in document order.
func (rs *Ruleset) TileTypes() []*rules.TileType {
	return append([]*rules.TileType(nil), rs.tiles...)
}

// TileType returns the tile type with the given identifier, nil when
// absent.
func (rs *Ruleset) TileType(id string) *rules.TileType {
	for _, t := range rs.tiles {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// Options returns the options in document order.
func (rs *Ruleset) Options() []*options.RangeOption {
	return append([]*options.RangeOption(nil), rs.opts...)
}

// Option returns the option with the given identifier, nil when absent.
func (rs *Ruleset) Option(id string) *options.RangeOption {
	for _, o := range rs.opts {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

// LoadReport collects the recoverable problems of one load pass.
// Unresolved resource and disaster references are skipped with a warning
// instead of failing the record.
type LoadReport struct {
	Warnings []string
}

// RulesetService loads and saves ruleset documents.
type RulesetService struct {
	msgs ports.Messages
}

// NewRulesetService creates a ruleset service. A nil msgs disables label
// localization.
func NewRulesetService(msgs ports.Messages) *RulesetService {
	if msgs == nil {
		msgs = ports.Passthrough{}
	}
	return &RulesetService{msgs: msgs}
}

// Load parses a complete ruleset document. Primitive types register as
// their sections are read, so references resolve as long as the document
// keeps primitive sections ahead of the records using them; a forward
// reference fails with rules.ErrUnknownReference.
func (s *RulesetService) Load(r io.Reader) (*Ruleset, *LoadReport, error) {
	rs := &Ruleset{reg: rules.NewRegistry()}
	report, err := s.loadInto(rs, r, false)
	if err != nil {
		return nil, nil, err
	}
	return rs, report, nil
}

// LoadFile is Load over a file path.
func (s *RulesetService) LoadFile(path string) (*Ruleset, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ruleset: %w", err)
	}
	defer f.Close()
	return s.Load(f)
}

// LoadOverride applies a layered override document onto an existing
// ruleset. Records whose identifier is already present are re-read in
// place with their list containers cleared first; new records append.
func (s *RulesetService) LoadOverride(rs *Ruleset, r io.Reader) (*LoadReport, error) {
	return s.loadInto(rs, r, true)
}

func (s *RulesetService) loadInto(rs *Ruleset, r io.Reader, override bool) (*LoadReport, error) {
	xr := xmlio.NewReader(r)
	if err := xr.MoveToRoot(); err != nil {
		return nil, err
	}
	if xr.Name() != rulesetTag {
		return nil, fmt.Errorf("expected element %q, found %q: %w",
			rulesetTag, xr.Name(), xmlio.ErrFormat)
	}
	id, ok := xr.Attr(idTag)
	if !ok {
		return nil, fmt.Errorf("element %q: missing id attribute: %w",
			rulesetTag, xmlio.ErrFormat)
	}
	if !override {
		rs.id = id
	}
	if v, ok := xr.Attr(versionTag); ok {
		rs.version = v
	}
	xr.SetClearContainers(override)

	for {
		ok, err := xr.NextChild()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := s.readSection(rs, xr, override); err != nil {
			return nil, err
		}
	}
	return &LoadReport{Warnings: xr.Warnings()}, nil
}

func (s *RulesetService) readSection(rs *Ruleset, xr *xmlio.Reader, override bool) error {
	section := xr.Name()
	for {
		ok, err := xr.NextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch section {
		case goodsTypesTag:
			err = readTyped(rs, xr, override, rules.KindGoods,
				rules.NewGoodsType, &rs.goods)
		case resourceTypesTag:
			err = readTyped(rs, xr, override, rules.KindResource,
				rules.NewResourceType, &rs.resources)
		case disastersTag:
			err = readTyped(rs, xr, override, rules.KindDisaster,
				rules.NewDisaster, &rs.disasters)
		case tileTypesTag:
			err = readTyped(rs, xr, override, rules.KindTile,
				func() *rules.TileType { return rules.NewTileType(rs.reg) },
				&rs.tiles)
		case optionsTag:
			err = s.readOption(rs, xr, override)
		default:
			return fmt.Errorf("element %q: %w", section, xmlio.ErrUnknownChild)
		}
		if err != nil {
			return err
		}
	}
}

// readTyped reads one record of a section, either re-reading an existing
// record in override mode or constructing and registering a new one.
func readTyped[T interface {
	rules.Record
	ID() string
}](rs *Ruleset, xr *xmlio.Reader, override bool,
	kind rules.Kind, construct func() T, list *[]T) error {

	if override {
		if id, ok := xr.Attr(idTag); ok {
			if existing, err := rs.reg.Resolve(kind, id); err == nil {
				return rules.Read(xr, existing.(T))
			}
		}
	}
	rec := construct()
	if err := rules.Read(xr, rec); err != nil {
		return err
	}
	if err := rs.reg.Register(kind, rec.ID(), rec); err != nil {
		return err
	}
	*list = append(*list, rec)
	return nil
}

func (s *RulesetService) readOption(rs *Ruleset, xr *xmlio.Reader, override bool) error {
	if override {
		if id, ok := xr.Attr(idTag); ok {
			if existing := rs.Option(id); existing != nil {
				return existing.Read(xr, s.msgs)
			}
		}
	}
	opt, err := options.ReadRangeOption(xr, s.msgs)
	if err != nil {
		return err
	}
	rs.opts = append(rs.opts, opt)
	return nil
}

// Save writes the ruleset in canonical section order: goods types,
// resource types, disasters, tile types, then options. Legacy forms are
// never written.
func (s *RulesetService) Save(w io.Writer, rs *Ruleset) error {
	xw := xmlio.NewWriter(w)
	if err := xw.StartElement(rulesetTag); err != nil {
		return err
	}
	xw.Attr(idTag, rs.id)
	if rs.version != "" {
		xw.Attr(versionTag, rs.version)
	}

	if err := writeSection(xw, goodsTypesTag, rs.goods); err != nil {
		return err
	}
	if err := writeSection(xw, resourceTypesTag, rs.resources); err != nil {
		return err
	}
	if err := writeSection(xw, disastersTag, rs.disasters); err != nil {
		return err
	}
	if err := writeSection(xw, tileTypesTag, rs.tiles); err != nil {
		return err
	}

	if err := xw.StartElement(optionsTag); err != nil {
		return err
	}
	for _, o := range rs.opts {
		if err := o.Write(xw); err != nil {
			return err
		}
	}
	if err := xw.EndElement(); err != nil {
		return err
	}

	if err := xw.EndElement(); err != nil {
		return err
	}
	return xw.Flush()
}

// SaveFile is Save over a file path.
func (s *RulesetService) SaveFile(path string, rs *Ruleset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ruleset file: %w", err)
	}
	if err := s.Save(f, rs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSection[T rules.Record](xw *xmlio.Writer, tag string, recs []T) error {
	if err := xw.StartElement(tag); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := rules.Write(xw, rec); err != nil {
			return err
		}
	}
	return xw.EndElement()
}

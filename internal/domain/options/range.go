package options

import (
	"fmt"
	"strconv"

	"github.com/hexfield/rulecore/internal/domain/ports"
	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

const (
	rangeOptionTag = "rangeOption"
	rangeValueTag  = "rangeValue"

	idTag              = "id"
	valueTag           = "value"
	defaultValueTag    = "defaultValue"
	localizedLabelsTag = "localizedLabels"
	labelTag           = "label"
)

// RangeValue is one selectable entry of a RangeOption: a raw integer value
// and its display label.
type RangeValue struct {
	Value int
	Label string
}

// RangeOption is an integer option whose valid choices are an ordered
// value-to-label table. Rank operations address entries by their position
// in that order.
type RangeOption struct {
	base
	value           int
	localizedLabels bool
	entries         []RangeValue
}

// NewRangeOption creates a range option with a pre-assigned identifier.
// A document read may then omit the id attribute.
func NewRangeOption(id string) (*RangeOption, error) {
	o := &RangeOption{}
	if err := o.setID(id); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadRangeOption constructs a range option from the element the reader is
// positioned on. Labels are resolved through msgs when the document asks
// for localized labels; a nil msgs falls back to the passthrough lookup.
func ReadRangeOption(r *xmlio.Reader, msgs ports.Messages) (*RangeOption, error) {
	o := &RangeOption{}
	if err := o.Read(r, msgs); err != nil {
		return nil, err
	}
	return o, nil
}

// TagName returns "rangeOption".
func (o *RangeOption) TagName() string {
	return rangeOptionTag
}

// Value returns the current value.
func (o *RangeOption) Value() int {
	return o.value
}

// SetValue sets the value and marks the option defined. A change
// notification fires only when the value actually differs and the option
// was already defined, so the first assignment during load never
// notifies on its own defined transition.
func (o *RangeOption) SetValue(v int) {
	old := o.value
	o.value = v
	if v != old && o.isDefined {
		o.notify(strconv.Itoa(old), strconv.Itoa(v))
	}
	o.isDefined = true
}

// RangeValues returns the value table in document order.
func (o *RangeOption) RangeValues() []RangeValue {
	out := make([]RangeValue, len(o.entries))
	copy(out, o.entries)
	return out
}

// Label returns the display label of the current value, empty when the
// value is not in the table.
func (o *RangeOption) Label() string {
	for _, e := range o.entries {
		if e.Value == o.value {
			return e.Label
		}
	}
	return ""
}

// ValueRank returns the 0-based position of the current value in the
// table, or the table size when the value is not present.
func (o *RangeOption) ValueRank() int {
	for i, e := range o.entries {
		if e.Value == o.value {
			return i
		}
	}
	return len(o.entries)
}

// SetValueRank sets the value by table position.
func (o *RangeOption) SetValueRank(rank int) error {
	if rank < 0 || rank >= len(o.entries) {
		return fmt.Errorf("option %q: rank %d with %d values: %w",
			o.id, rank, len(o.entries), ErrOutOfRange)
	}
	o.SetValue(o.entries[rank].Value)
	return nil
}

// StringValue returns the decimal form of the value.
func (o *RangeOption) StringValue() string {
	return strconv.Itoa(o.value)
}

// SetStringValue parses the decimal form and sets the value.
func (o *RangeOption) SetStringValue(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("option %q: value %q is not an integer: %w",
			o.id, v, xmlio.ErrFormat)
	}
	o.SetValue(n)
	return nil
}

// Read populates the option from the element the reader is positioned on.
// Either an explicit value or a default plus value table must be present.
func (o *RangeOption) Read(r *xmlio.Reader, msgs ports.Messages) error {
	if r.Name() != rangeOptionTag {
		return fmt.Errorf("expected element %q, found %q: %w",
			rangeOptionTag, r.Name(), xmlio.ErrFormat)
	}
	if msgs == nil {
		msgs = ports.Passthrough{}
	}

	id, hasAttrID := r.Attr(idTag)
	if !hasAttrID && !o.hasID {
		return fmt.Errorf("element %q: missing id attribute: %w",
			rangeOptionTag, xmlio.ErrFormat)
	}
	if hasAttrID {
		if err := o.setID(id); err != nil {
			return err
		}
	}

	var err error
	if o.localizedLabels, err = r.BoolAttr(localizedLabelsTag, false); err != nil {
		return err
	}

	value, hasValue := r.Attr(valueTag)
	defaultValue, hasDefault := r.Attr(defaultValueTag)
	if !hasValue && !hasDefault {
		return fmt.Errorf("element %q id %q: no value nor default value: %w",
			rangeOptionTag, o.id, xmlio.ErrFormat)
	}

	if hasValue {
		if err := o.SetStringValue(value); err != nil {
			return err
		}
		return r.Skip()
	}

	if err := o.SetStringValue(defaultValue); err != nil {
		return err
	}
	for {
		ok, err := r.NextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if r.Name() != rangeValueTag {
			return fmt.Errorf("element %q: %w", r.Name(), xmlio.ErrUnknownChild)
		}
		label := r.StringAttr(labelTag, "")
		raw, hasRaw := r.Attr(valueTag)
		if !hasRaw {
			return fmt.Errorf("element %q: missing %s attribute: %w",
				rangeValueTag, valueTag, xmlio.ErrFormat)
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return fmt.Errorf("element %q: value %q is not an integer: %w",
				rangeValueTag, raw, xmlio.ErrFormat)
		}
		if o.localizedLabels {
			label = msgs.Message(label)
		}
		o.entries = append(o.entries, RangeValue{Value: n, Label: label})
		if err := r.Skip(); err != nil {
			return err
		}
	}
}

// Write serializes the option: identifier and current value. The value
// table travels with the defining document, not with saved state.
func (o *RangeOption) Write(w *xmlio.Writer) error {
	if err := w.StartElement(rangeOptionTag); err != nil {
		return err
	}
	w.Attr(idTag, o.id)
	w.Attr(valueTag, o.StringValue())
	return w.EndElement()
}

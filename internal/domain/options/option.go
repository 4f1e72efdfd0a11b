// Package options contains the configuration-value model: named,
// identified values with a defined/undefined state, string coercion, and
// explicit change notification.
package options

import (
	"errors"
	"fmt"

	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

// ErrOutOfRange reports a rank lookup beyond the value table bounds.
var ErrOutOfRange = errors.New("rank out of range")

// Option is a named configuration value persisted as a document element.
type Option interface {
	// ID returns the option identifier.
	ID() string

	// TagName returns the element tag of the option's document form.
	TagName() string

	// Defined reports whether the value has been explicitly set, as
	// opposed to holding only a default.
	Defined() bool

	// StringValue returns the canonical string form of the value.
	StringValue() string

	// SetStringValue coerces the string form and sets the value.
	SetStringValue(v string) error

	// AddListener registers fn for change notifications.
	AddListener(fn Listener)

	// Write serializes the option.
	Write(w *xmlio.Writer) error
}

// Change describes one option mutation, with both values in their string
// form. Listeners receive a descriptor instead of being coupled to the
// option's internals.
type Change struct {
	OptionID string
	Old      string
	New      string
}

// Listener receives change notifications synchronously, on the goroutine
// performing the set.
type Listener func(Change)

// base carries the identifier, defined state, and listener list shared by
// option implementations.
type base struct {
	id        string
	hasID     bool
	isDefined bool
	listeners []Listener
}

func (b *base) ID() string {
	return b.id
}

func (b *base) Defined() bool {
	return b.isDefined
}

// AddListener registers fn for change notifications.
func (b *base) AddListener(fn Listener) {
	b.listeners = append(b.listeners, fn)
}

func (b *base) setID(id string) error {
	if id == "" {
		return fmt.Errorf("empty option identifier: %w", xmlio.ErrFormat)
	}
	b.id = id
	b.hasID = true
	return nil
}

func (b *base) notify(old, new string) {
	change := Change{OptionID: b.id, Old: old, New: new}
	for _, fn := range b.listeners {
		fn(change)
	}
}

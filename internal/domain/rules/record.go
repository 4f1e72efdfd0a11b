// Package rules contains the record model of a ruleset document: identified
// type definitions, production entries, weighted choice tables, and the
// generic read/write dispatch they share.
package rules

import (
	"fmt"

	"github.com/hexfield/rulecore/internal/infrastructure/xmlio"
)

const (
	idTag = "id"
)

// Record is implemented by every object persisted as a document element.
// Read and Write drive the dispatch: attributes first, then children in
// document order on read, in canonical order on write.
type Record interface {
	TagName() string
	ReadAttributes(r *xmlio.Reader) error
	ReadChild(r *xmlio.Reader) error
	WriteAttributes(w *xmlio.Writer) error
	WriteChildren(w *xmlio.Writer) error
}

// containerClearer is implemented by records that keep list containers
// which a full-record override resets before reading children.
type containerClearer interface {
	ClearContainers()
}

// Read populates rec from the element the reader is positioned on. A parse
// error aborts the record; no partial record is valid.
func Read(r *xmlio.Reader, rec Record) error {
	if r.Name() != rec.TagName() {
		return fmt.Errorf("expected element %q, found %q: %w",
			rec.TagName(), r.Name(), xmlio.ErrFormat)
	}
	if err := rec.ReadAttributes(r); err != nil {
		return err
	}
	if r.ClearContainers() {
		if c, ok := rec.(containerClearer); ok {
			c.ClearContainers()
		}
	}
	for {
		ok, err := r.NextChild()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := rec.ReadChild(r); err != nil {
			return err
		}
	}
}

// Write serializes rec as a full element.
func Write(w *xmlio.Writer, rec Record) error {
	if err := w.StartElement(rec.TagName()); err != nil {
		return err
	}
	if err := rec.WriteAttributes(w); err != nil {
		return err
	}
	if err := rec.WriteChildren(w); err != nil {
		return err
	}
	return w.EndElement()
}

// Base carries the identifier shared by all records. Identity is the
// identifier; records compare equal by it.
type Base struct {
	id    string
	hasID bool
}

// ID returns the record identifier, empty until assigned.
func (b *Base) ID() string {
	return b.id
}

// HasID reports whether an identifier has been assigned. This replaces the
// magic NO_ID sentinel of older formats.
func (b *Base) HasID() bool {
	return b.hasID
}

// SetID assigns the record identifier.
func (b *Base) SetID(id string) error {
	if id == "" {
		return fmt.Errorf("empty record identifier: %w", xmlio.ErrFormat)
	}
	b.id = id
	b.hasID = true
	return nil
}

// ReadAttributes reads the required id attribute.
func (b *Base) ReadAttributes(r *xmlio.Reader) error {
	id, ok := r.Attr(idTag)
	if !ok {
		if b.hasID {
			return nil
		}
		return fmt.Errorf("element %q: missing id attribute: %w",
			r.Name(), xmlio.ErrFormat)
	}
	return b.SetID(id)
}

// ReadChild rejects the child element. Records embed Base and dispatch
// recognized tags before falling back here.
func (b *Base) ReadChild(r *xmlio.Reader) error {
	return fmt.Errorf("element %q: %w", r.Name(), xmlio.ErrUnknownChild)
}

// WriteAttributes writes the id attribute.
func (b *Base) WriteAttributes(w *xmlio.Writer) error {
	w.Attr(idTag, b.id)
	return nil
}

// WriteChildren writes nothing; records with children override it.
func (b *Base) WriteChildren(w *xmlio.Writer) error {
	return nil
}

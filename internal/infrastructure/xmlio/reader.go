// Package xmlio provides the streaming reader and writer used to persist
// ruleset documents. It wraps encoding/xml with attribute coercion,
// default fallback, and the child-element iteration primitives the record
// read/write dispatch is built on.
package xmlio

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	// ErrFormat reports a malformed document or a missing required field.
	ErrFormat = errors.New("malformed document")

	// ErrUnknownChild reports a child element no handler recognizes.
	ErrUnknownChild = errors.New("unknown child element")
)

// Reader streams a ruleset document element by element. The cursor always
// sits on a start element; attribute getters read from it. Child handlers
// must consume through the end of their element, either by reading their
// own children or by calling Skip.
type Reader struct {
	dec      *xml.Decoder
	cur      xml.StartElement
	clear    bool
	warnings []string
}

// NewReader creates a Reader over r. The cursor is positioned on the
// document root after MoveToRoot.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// MoveToRoot advances to the document's root element.
func (r *Reader) MoveToRoot() error {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return fmt.Errorf("no root element: %w", ErrFormat)
		}
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			r.cur = start
			return nil
		}
	}
}

// Name returns the local name of the current element.
func (r *Reader) Name() string {
	return r.cur.Name.Local
}

// NextChild advances to the next child start element of the element whose
// handler is currently running. It returns false once the enclosing end
// element has been consumed.
func (r *Reader) NextChild() (bool, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return false, fmt.Errorf("unexpected end of document: %w", ErrFormat)
		}
		if err != nil {
			return false, fmt.Errorf("reading document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			r.cur = t
			return true, nil
		case xml.EndElement:
			return false, nil
		}
	}
}

// Skip consumes the remainder of the current element, children included.
func (r *Reader) Skip() error {
	if err := r.dec.Skip(); err != nil {
		return fmt.Errorf("skipping element %q: %w", r.Name(), err)
	}
	return nil
}

// Attr returns the raw value of the named attribute on the current element.
func (r *Reader) Attr(name string) (string, bool) {
	for _, a := range r.cur.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// StringAttr returns the named attribute, or def when absent.
func (r *Reader) StringAttr(name, def string) string {
	if v, ok := r.Attr(name); ok {
		return v
	}
	return def
}

// IntAttr returns the named attribute parsed as an integer, or def when
// absent. A present but unparseable value is a format error.
func (r *Reader) IntAttr(name string, def int) (int, error) {
	v, ok := r.Attr(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("element %q attribute %q: %q is not an integer: %w",
			r.Name(), name, v, ErrFormat)
	}
	return n, nil
}

// BoolAttr returns the named attribute parsed as a boolean, or def when
// absent. Only "true" and "false" are accepted.
func (r *Reader) BoolAttr(name string, def bool) (bool, error) {
	v, ok := r.Attr(name)
	if !ok {
		return def, nil
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("element %q attribute %q: %q is not a boolean: %w",
		r.Name(), name, v, ErrFormat)
}

// SetClearContainers marks the read pass as a full-record override: records
// reset their list containers before processing children. Layered rulesets
// use this to replace, rather than extend, inherited lists.
func (r *Reader) SetClearContainers(clear bool) {
	r.clear = clear
}

// ClearContainers reports whether records should reset their list
// containers before reading children.
func (r *Reader) ClearContainers() bool {
	return r.clear
}

// Warnf records a recoverable problem encountered during the read pass.
func (r *Reader) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the recoverable problems recorded so far.
func (r *Reader) Warnings() []string {
	return append([]string(nil), r.warnings...)
}

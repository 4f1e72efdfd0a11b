package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Writer emits a ruleset document. Attributes are buffered on the pending
// start element and flushed when the first child, or the end of the
// element, is written. Emission order is exactly call order, which is how
// the canonical write order of the format is kept stable.
type Writer struct {
	enc     *xml.Encoder
	pending *xml.StartElement
	stack   []xml.Name
}

// NewWriter creates a Writer over w with two-space indentation.
func NewWriter(w io.Writer) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &Writer{enc: enc}
}

// StartElement opens a new element. Attributes added before the next
// StartElement or EndElement call belong to it.
func (w *Writer) StartElement(name string) error {
	if err := w.flushPending(); err != nil {
		return err
	}
	w.pending = &xml.StartElement{Name: xml.Name{Local: name}}
	w.stack = append(w.stack, w.pending.Name)
	return nil
}

// Attr adds a string attribute to the pending element.
func (w *Writer) Attr(name, value string) {
	if w.pending == nil {
		panic("xmlio: attribute written outside a start element")
	}
	w.pending.Attr = append(w.pending.Attr, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	})
}

// IntAttr adds an integer attribute in canonical decimal form.
func (w *Writer) IntAttr(name string, value int) {
	w.Attr(name, strconv.Itoa(value))
}

// BoolAttr adds a boolean attribute as "true" or "false".
func (w *Writer) BoolAttr(name string, value bool) {
	w.Attr(name, strconv.FormatBool(value))
}

// EndElement closes the innermost open element.
func (w *Writer) EndElement() error {
	if err := w.flushPending(); err != nil {
		return err
	}
	if len(w.stack) == 0 {
		return fmt.Errorf("no open element to close")
	}
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if err := w.enc.EncodeToken(xml.EndElement{Name: name}); err != nil {
		return fmt.Errorf("closing element %q: %w", name.Local, err)
	}
	return nil
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.flushPending(); err != nil {
		return err
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("flushing document: %w", err)
	}
	return nil
}

func (w *Writer) flushPending() error {
	if w.pending == nil {
		return nil
	}
	start := *w.pending
	w.pending = nil
	if err := w.enc.EncodeToken(start); err != nil {
		return fmt.Errorf("opening element %q: %w", start.Name.Local, err)
	}
	return nil
}

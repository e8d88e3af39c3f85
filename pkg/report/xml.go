package report

import (
	"encoding/xml"
	"fmt"
	"io"
)

// XMLWriter streams elements to an io.Writer as XML. Elements are indented by
// two spaces and the document starts with an XML declaration.
//
// The zero value is not usable; use [NewXMLWriter].
type XMLWriter struct {
	w       io.Writer
	enc     *xml.Encoder
	open    []string
	started bool
	closed  bool
}

// NewXMLWriter returns an emitter writing to w.
func NewXMLWriter(w io.Writer) *XMLWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &XMLWriter{w: w, enc: enc}
}

// Start writes an opening tag.
func (x *XMLWriter) Start(name string, attrs ...Attr) error {
	if x.closed {
		return ErrClosed
	}
	if x.started && len(x.open) == 0 {
		return fmt.Errorf("%w: second root element %q", ErrUnbalanced, name)
	}
	if !x.started {
		if _, err := io.WriteString(x.w, xml.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		x.started = true
	}

	start := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := x.enc.EncodeToken(start); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	x.open = append(x.open, name)
	return nil
}

// End writes the closing tag of the innermost open element.
func (x *XMLWriter) End() error {
	if x.closed {
		return ErrClosed
	}
	if len(x.open) == 0 {
		return fmt.Errorf("%w: End without Start", ErrUnbalanced)
	}
	name := x.open[len(x.open)-1]
	x.open = x.open[:len(x.open)-1]
	if err := x.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}}); err != nil {
		return fmt.Errorf("end %s: %w", name, err)
	}
	return nil
}

// Close ends all open elements, flushes the encoder and terminates the
// document with a newline. Close is idempotent.
func (x *XMLWriter) Close() error {
	if x.closed {
		return nil
	}
	for len(x.open) > 0 {
		if err := x.End(); err != nil {
			return err
		}
	}
	x.closed = true
	if err := x.enc.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if x.started {
		if _, err := io.WriteString(x.w, "\n"); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}
	return nil
}

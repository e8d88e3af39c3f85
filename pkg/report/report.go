package report

import "errors"

var (
	// ErrUnbalanced is returned when End is called without a matching Start,
	// or when a second root element is started.
	ErrUnbalanced = errors.New("unbalanced elements")

	// ErrClosed is returned by emitters that are used after Close.
	ErrClosed = errors.New("emitter closed")
)

// Attr is one element attribute.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for constructing an Attr.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// Emitter receives a stream of nested elements.
//
// Start opens a child of the innermost open element, End closes the innermost
// open element. Close ends any elements that are still open and flushes the
// output; an emitter must not be used after Close.
type Emitter interface {
	Start(name string, attrs ...Attr) error
	End() error
	Close() error
}

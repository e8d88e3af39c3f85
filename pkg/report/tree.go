package report

import "fmt"

// Element is a node of an in-memory element tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns the direct children with the given name, in order.
func (e *Element) All(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Tree is an [Emitter] that records elements in memory.
type Tree struct {
	root   *Element
	stack  []*Element
	closed bool
}

// NewTree returns an empty tree emitter.
func NewTree() *Tree { return &Tree{} }

// Root returns the root element, or nil if nothing was emitted.
func (t *Tree) Root() *Element { return t.root }

func (t *Tree) Start(name string, attrs ...Attr) error {
	if t.closed {
		return ErrClosed
	}
	e := &Element{Name: name, Attrs: append([]Attr(nil), attrs...)}
	if len(t.stack) == 0 {
		if t.root != nil {
			return fmt.Errorf("%w: second root element %q", ErrUnbalanced, name)
		}
		t.root = e
	} else {
		parent := t.stack[len(t.stack)-1]
		parent.Children = append(parent.Children, e)
	}
	t.stack = append(t.stack, e)
	return nil
}

func (t *Tree) End() error {
	if t.closed {
		return ErrClosed
	}
	if len(t.stack) == 0 {
		return fmt.Errorf("%w: End without Start", ErrUnbalanced)
	}
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

func (t *Tree) Close() error {
	t.stack = nil
	t.closed = true
	return nil
}

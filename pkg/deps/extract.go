package deps

import (
	"strings"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

// Edge is one reported dependency of a type.
type Edge struct {
	From string           // Full name of the referencing type
	To   metadata.TypeRef // Referenced type
	// Assembly is the identity owning To's scope, or nil when the scope is
	// neither a module nor an assembly reference.
	Assembly *metadata.AssemblyName
}

// NewEdge builds an edge and attributes it to to's scope.
func NewEdge(from string, to metadata.TypeRef) Edge {
	e := Edge{From: from, To: to}
	if s := to.Scope(); s.HasAssembly() {
		asm := s.Assembly
		e.Assembly = &asm
	}
	return e
}

// EdgeSet collects the edges of one type, keeping the first edge for each
// target full name.
type EdgeSet struct {
	seen  map[string]bool
	edges []Edge
}

// NewEdgeSet returns an empty set.
func NewEdgeSet() *EdgeSet { return &EdgeSet{seen: make(map[string]bool)} }

// Add inserts e unless an edge to the same full name is already present.
// It reports whether e was added.
func (s *EdgeSet) Add(e Edge) bool {
	name := e.To.FullName()
	if s.seen[name] {
		return false
	}
	s.seen[name] = true
	s.edges = append(s.edges, e)
	return true
}

// Edges returns the edges in insertion order.
func (s *EdgeSet) Edges() []Edge { return s.edges }

// Len returns the number of edges.
func (s *EdgeSet) Len() int { return len(s.edges) }

// TypeEdges is the complete dependency set of one type.
type TypeEdges struct {
	From  string
	Edges []Edge
}

// Extractor enumerates the dependencies of type definitions.
type Extractor struct {
	filter *Filter
}

// NewExtractor returns an extractor that filters candidates with f.
func NewExtractor(f *Filter) *Extractor { return &Extractor{filter: f} }

// Extract hands fn one TypeEdges per non-skipped type in t's tree. Nested
// types are reported before the type that declares them. Extraction stops at
// the first error returned by fn.
//
// A type is skipped together with everything nested in it when it is a
// top-level type without a namespace, or when its name starts with "<>".
func (x *Extractor) Extract(t metadata.TypeDefinition, fn func(TypeEdges) error) error {
	if skipType(t) {
		return nil
	}
	for _, n := range t.NestedTypes() {
		if err := x.Extract(n, fn); err != nil {
			return err
		}
	}
	return fn(x.edges(t))
}

func skipType(t metadata.TypeDefinition) bool {
	if !t.IsNested() && t.Namespace() == "" {
		return true
	}
	return strings.HasPrefix(t.Name(), "<>")
}

func (x *Extractor) edges(t metadata.TypeDefinition) TypeEdges {
	from := t.FullName()
	set := NewEdgeSet()
	add := func(refs ...metadata.TypeRef) {
		for _, r := range refs {
			for _, c := range x.filter.Candidates(from, r) {
				set.Add(NewEdge(from, c))
			}
		}
	}

	add(t.CustomAttributes()...)
	add(t.BaseType())
	add(t.Interfaces()...)
	add(t.Events()...)
	add(t.Fields()...)
	add(t.Properties()...)
	for _, m := range t.Methods() {
		add(m.ReturnType)
		add(m.Parameters...)
		if m.Body == nil {
			continue
		}
		add(m.Body.Variables...)
		for _, h := range m.Body.ExceptionHandlers {
			if h.CatchType != nil {
				add(h.CatchType)
			}
		}
	}
	return TypeEdges{From: from, Edges: set.Edges()}
}

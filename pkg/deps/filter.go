package deps

import (
	"strings"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

// Verdict is the outcome of evaluating one candidate reference.
type Verdict int

const (
	// Skip drops the reference.
	Skip Verdict = iota
	// Report records the reference as a dependency.
	Report
	// Unwrap replaces the reference by its constituents, which are evaluated
	// on their own.
	Unwrap
)

func (v Verdict) String() string {
	switch v {
	case Report:
		return "report"
	case Unwrap:
		return "unwrap"
	default:
		return "skip"
	}
}

// Decision is the result of [Filter.Decide].
type Decision struct {
	Verdict Verdict
	// Inner holds the references to evaluate next when Verdict is Unwrap:
	// the element type of an array, or the generic arguments followed by the
	// unbound generic type of a generic instance.
	Inner []metadata.TypeRef
}

// Filter decides which type references count as dependencies.
// A Filter is immutable and safe for concurrent use.
type Filter struct {
	roots    map[string]bool
	prefixes []string
}

// NewFilter builds a filter from the framework lists in opts. Empty lists
// fall back to the defaults.
func NewFilter(opts Options) *Filter {
	opts = opts.WithDefaults()
	roots := make(map[string]bool, len(opts.FrameworkRoots))
	for _, r := range opts.FrameworkRoots {
		roots[r] = true
	}
	return &Filter{roots: roots, prefixes: opts.FrameworkPrefixes}
}

// Decide evaluates the reference from the type named from to the type to.
// Rules apply in order:
//
//  1. a reference to the type itself is skipped
//  2. generic parameters are skipped
//  3. types without a namespace are skipped, nested type references included
//  4. arrays unwrap to their element type
//  5. generic instances unwrap to their arguments, then the unbound type
//  6. types whose scope is a framework assembly are skipped
//  7. anything else is reported
func (f *Filter) Decide(from string, to metadata.TypeRef) Decision {
	switch {
	case to == nil:
		return Decision{Verdict: Skip}
	case to.FullName() == from:
		return Decision{Verdict: Skip}
	case to.IsGenericParameter():
		return Decision{Verdict: Skip}
	case to.Namespace() == "":
		return Decision{Verdict: Skip}
	case to.IsArray():
		return Decision{Verdict: Unwrap, Inner: []metadata.TypeRef{to.ElementType()}}
	case to.IsGenericInstance():
		args := to.GenericArguments()
		inner := make([]metadata.TypeRef, 0, len(args)+1)
		inner = append(inner, args...)
		inner = append(inner, to.ElementType())
		return Decision{Verdict: Unwrap, Inner: inner}
	case f.IsFramework(to.Scope().Name):
		return Decision{Verdict: Skip}
	}
	return Decision{Verdict: Report}
}

// IsFramework reports whether a scope name belongs to the framework.
func (f *Filter) IsFramework(scope string) bool {
	if f.roots[scope] {
		return true
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(scope, p) {
			return true
		}
	}
	return false
}

// Candidates evaluates to and, recursively, everything it unwraps to. It
// returns the reportable references in evaluation order, duplicates
// included.
func (f *Filter) Candidates(from string, to metadata.TypeRef) []metadata.TypeRef {
	var out []metadata.TypeRef
	f.collect(from, to, &out)
	return out
}

func (f *Filter) collect(from string, to metadata.TypeRef, out *[]metadata.TypeRef) {
	d := f.Decide(from, to)
	switch d.Verdict {
	case Report:
		*out = append(*out, to)
	case Unwrap:
		for _, inner := range d.Inner {
			f.collect(from, inner, out)
		}
	}
}

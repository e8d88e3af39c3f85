package deps

import (
	"errors"
	"io/fs"

	"github.com/matzehuels/asmdeps/pkg/metadata"
	"github.com/matzehuels/asmdeps/pkg/report"
)

// Element and attribute names of the dependency report.
const (
	ElemDependencies   = "Dependencies"
	ElemAssembly       = "Assembly"
	ElemReferences     = "References"
	ElemReference      = "Reference"
	ElemTypeReferences = "TypeReferences"
	ElemFrom           = "From"
	ElemTo             = "To"
)

// AssemblyStats summarizes one analyzed module.
type AssemblyStats struct {
	References int // Declared assembly references
	Types      int // From sections emitted (primary only)
	Edges      int // To elements emitted (primary only)
}

// Analyzer writes the report section of one module and feeds its references
// into the worklist state.
type Analyzer struct {
	provider  metadata.Provider
	emitter   report.Emitter
	state     *State
	extractor *Extractor
	opts      Options
}

// NewAnalyzer returns an analyzer writing to em and recording references in
// state. provider is only consulted for debug symbols.
func NewAnalyzer(provider metadata.Provider, em report.Emitter, state *State, opts Options) *Analyzer {
	opts = opts.WithDefaults()
	return &Analyzer{
		provider:  provider,
		emitter:   em,
		state:     state,
		extractor: NewExtractor(NewFilter(opts)),
		opts:      opts,
	}
}

// Analyze emits the Assembly section for m, read from path. Every declared
// reference is emitted and, when not yet known, queued for analysis. Type
// dependencies are only emitted for the primary module. Finally m's own
// identity is marked parsed.
//
// Errors come from the emitter only; symbol problems are logged and ignored.
func (a *Analyzer) Analyze(m metadata.Module, path string, primary bool) (AssemblyStats, error) {
	var stats AssemblyStats
	a.readSymbols(m, path)
	a.opts.Logger("parsing %s", m.Name())

	asm := m.Assembly()
	if err := a.emitter.Start(ElemAssembly,
		report.A("name", asm.Name),
		report.A("version", asm.Version.String()),
	); err != nil {
		return stats, err
	}

	if err := a.references(m, &stats); err != nil {
		return stats, err
	}

	if primary {
		if err := a.typeReferences(m, &stats); err != nil {
			return stats, err
		}
	}

	if err := a.emitter.End(); err != nil {
		return stats, err
	}
	a.state.MarkParsed(asm.FullName())
	return stats, nil
}

func (a *Analyzer) readSymbols(m metadata.Module, path string) {
	sr, ok := a.provider.(metadata.SymbolReader)
	if !ok {
		return
	}
	err := sr.ReadSymbols(m, path)
	if err == nil || errors.Is(err, fs.ErrNotExist) || errors.Is(err, metadata.ErrNoSymbols) {
		return
	}
	a.opts.Debug("reading symbols for %s: %v", m.Name(), err)
}

func (a *Analyzer) references(m metadata.Module, stats *AssemblyStats) error {
	if err := a.emitter.Start(ElemReferences); err != nil {
		return err
	}
	for _, ref := range m.AssemblyReferences() {
		fullName := ref.FullName()
		if err := a.emitter.Start(ElemReference,
			report.A("name", ref.Name),
			report.A("fullName", fullName),
			report.A("version", ref.Version.String()),
		); err != nil {
			return err
		}
		if err := a.emitter.End(); err != nil {
			return err
		}
		a.state.Enqueue(fullName)
		stats.References++
	}
	return a.emitter.End()
}

func (a *Analyzer) typeReferences(m metadata.Module, stats *AssemblyStats) error {
	if err := a.emitter.Start(ElemTypeReferences); err != nil {
		return err
	}
	emit := func(te TypeEdges) error {
		if err := a.emitter.Start(ElemFrom, report.A("fullname", te.From)); err != nil {
			return err
		}
		for _, e := range te.Edges {
			if err := a.emitter.Start(ElemTo, toAttrs(e)...); err != nil {
				return err
			}
			if err := a.emitter.End(); err != nil {
				return err
			}
		}
		stats.Types++
		stats.Edges += len(te.Edges)
		return a.emitter.End()
	}
	for _, t := range m.Types() {
		if err := a.extractor.Extract(t, emit); err != nil {
			return err
		}
	}
	return a.emitter.End()
}

func toAttrs(e Edge) []report.Attr {
	attrs := []report.Attr{report.A("fullname", e.To.FullName())}
	if e.Assembly != nil {
		attrs = append(attrs,
			report.A("assemblyname", e.Assembly.Name),
			report.A("assemblyversion", e.Assembly.Version.String()),
		)
	}
	return attrs
}

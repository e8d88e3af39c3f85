package deps

import (
	"context"
	"path/filepath"
	"time"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/errors"
	"github.com/matzehuels/asmdeps/pkg/metadata"
	"github.com/matzehuels/asmdeps/pkg/observability"
	"github.com/matzehuels/asmdeps/pkg/report"
)

// Status records what happened to an observed assembly.
type Status string

const (
	StatusAnalyzed   Status = "analyzed"   // Loaded and emitted
	StatusMismatch   Status = "mismatch"   // File found, identity differs
	StatusMissing    Status = "missing"    // No file next to the primary (maybe in the GAC)
	StatusUnreadable Status = "unreadable" // File found but could not be loaded
)

// Skipped is an assembly that was marked parsed without being analyzed.
type Skipped struct {
	FullName string
	Status   Status
	Path     string // Candidate file, empty for missing assemblies
}

// Result summarizes a completed analysis.
//
// Graph has one node per observed assembly full name and one edge per
// declared reference. Node metadata holds "name", "version", "status" and
// "primary".
type Result struct {
	Primary  metadata.AssemblyName
	Analyzed []string      // Full names in analysis order, primary first
	Skipped  []Skipped     // Assemblies given up on, in worklist order
	Types    int           // From sections emitted for the primary
	Edges    int           // To elements emitted for the primary
	Graph    *dag.DAG      // Assembly reference graph
	Duration time.Duration // Wall time of the whole run
}

// Builder drives the worklist: it analyzes the primary module, then locates,
// loads and analyzes every referenced assembly found next to it until no
// reference is left pending.
type Builder struct {
	provider metadata.Provider
	emitter  report.Emitter
	opts     Options
}

// NewBuilder returns a builder that loads modules with provider and writes
// the report to em. The builder does not close em.
func NewBuilder(provider metadata.Provider, em report.Emitter, opts Options) *Builder {
	return &Builder{provider: provider, emitter: em, opts: opts.WithDefaults()}
}

// Build writes the complete dependency report for primary, which was loaded
// from primaryPath. Secondary assemblies that are missing, mismatched or
// unreadable are logged and skipped. The returned error is either an emitter
// failure or ctx.Err(); the context is checked between assemblies.
func (b *Builder) Build(ctx context.Context, primary metadata.Module, primaryPath string) (*Result, error) {
	start := time.Now()
	hooks := observability.Analysis()
	asm := primary.Assembly()

	r := &run{
		Builder: b,
		ctx:     ctx,
		hooks:   hooks,
		state:   NewState(),
		locator: NewLocator(filepath.Dir(primaryPath), b.opts.Extensions),
		result:  &Result{Primary: asm, Graph: dag.New(dag.Metadata{"primary": asm.FullName()})},
	}
	r.analyzer = NewAnalyzer(b.provider, b.emitter, r.state, b.opts)

	err := r.drain(primary, primaryPath)
	r.result.Duration = time.Since(start)
	hooks.OnAnalysisComplete(ctx, asm.Name, len(r.result.Analyzed), r.result.Duration, err)
	if err != nil {
		return nil, err
	}
	return r.result, nil
}

// run holds the per-call state of Build.
type run struct {
	*Builder
	ctx      context.Context
	hooks    observability.AnalysisHooks
	state    *State
	locator  *Locator
	analyzer *Analyzer
	result   *Result
}

func (r *run) drain(primary metadata.Module, primaryPath string) error {
	asm := primary.Assembly()
	if err := r.emitter.Start(ElemDependencies,
		report.A("name", asm.Name),
		report.A("version", asm.Version.String()),
	); err != nil {
		return err
	}

	if err := r.analyze(primary, primaryPath, true); err != nil {
		return err
	}

	for {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		fullName, ok := r.state.Next()
		if !ok {
			break
		}
		if err := r.resolve(fullName); err != nil {
			return err
		}
		// Guarantees progress even if the analyzed module reported a
		// different identity than the one queued.
		r.state.MarkParsed(fullName)
	}

	return r.emitter.End()
}

// resolve handles one pending full name.
func (r *run) resolve(fullName string) error {
	name, err := metadata.ParseAssemblyName(fullName)
	if err == nil {
		err = errors.ValidateAssemblyName(name.Name)
	}
	if err != nil {
		r.opts.Warn("cannot locate %s: %v", fullName, err)
		r.skip(fullName, StatusMissing, "")
		return nil
	}

	path, ok := r.locator.Locate(name.Name)
	if !ok {
		r.opts.Warn("skip %s... maybe in the GAC?", name.Name)
		r.skip(fullName, StatusMissing, "")
		return nil
	}

	m, err := r.provider.Load(path)
	if err != nil {
		r.opts.Warn("could not load %s: %v", path, err)
		r.skip(fullName, StatusUnreadable, path)
		return nil
	}

	if got := m.Assembly().FullName(); got != fullName {
		r.opts.Warn("the existing file %s doesn't match the full name %s (found %s), skip it", path, fullName, got)
		r.skip(fullName, StatusMismatch, path)
		return nil
	}

	return r.analyze(m, path, false)
}

func (r *run) analyze(m metadata.Module, path string, primary bool) error {
	asm := m.Assembly()
	start := time.Now()
	r.hooks.OnAssemblyStart(r.ctx, asm.Name, primary)

	stats, err := r.analyzer.Analyze(m, path, primary)
	if err != nil {
		return err
	}

	r.hooks.OnAssemblyComplete(r.ctx, asm.Name, stats.Types, stats.Edges, time.Since(start))
	r.result.Analyzed = append(r.result.Analyzed, asm.FullName())
	if primary {
		r.result.Types = stats.Types
		r.result.Edges = stats.Edges
	}
	r.record(m, primary)
	return nil
}

// record adds m and its references to the assembly graph.
func (r *run) record(m metadata.Module, primary bool) {
	asm := m.Assembly()
	from := asm.FullName()

	node := r.node(from)
	if node == nil {
		return
	}
	node.Meta["name"] = asm.Name
	node.Meta["version"] = asm.Version.String()
	node.Meta["status"] = string(StatusAnalyzed)
	node.Meta["primary"] = primary

	for _, ref := range m.AssemblyReferences() {
		to := ref.FullName()
		if to == from {
			continue
		}
		n := r.node(to)
		if n == nil {
			continue
		}
		if _, ok := n.Meta["name"]; !ok {
			n.Meta["name"] = ref.Name
			n.Meta["version"] = ref.Version.String()
		}
		r.edge(from, to)
	}
}

// node returns the graph node for id, or nil after a debug line if the graph
// refuses it.
func (r *run) node(id string) *dag.Node {
	n, err := r.result.Graph.EnsureNode(id)
	if err != nil {
		r.opts.Debug("graph: node %q: %v", id, err)
		return nil
	}
	return n
}

// edge adds from->to unless it is already present.
func (r *run) edge(from, to string) {
	g := r.result.Graph
	if g.HasEdge(from, to) {
		return
	}
	if err := g.AddEdge(dag.Edge{From: from, To: to}); err != nil {
		r.opts.Debug("graph: edge %s -> %s: %v", from, to, err)
	}
}

func (r *run) skip(fullName string, status Status, path string) {
	r.state.MarkParsed(fullName)
	r.result.Skipped = append(r.result.Skipped, Skipped{FullName: fullName, Status: status, Path: path})
	r.hooks.OnAssemblySkipped(r.ctx, fullName, string(status))

	if n := r.node(fullName); n != nil {
		n.Meta["status"] = string(status)
		if _, ok := n.Meta["name"]; !ok {
			if name, err := metadata.ParseAssemblyName(fullName); err == nil {
				n.Meta["name"] = name.Name
				n.Meta["version"] = name.Version.String()
			}
		}
	}
}

package deps

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/metadata/descriptor"
	"github.com/matzehuels/asmdeps/pkg/observability"
	"github.com/matzehuels/asmdeps/pkg/report"
)

const (
	appFullName    = "App, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"
	gadgetFullName = "Gadget, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"
	corlibFullName = "mscorlib, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089"
)

const appDescriptor = `{
  "assembly": {"name": "App", "version": "1.0.0.0"},
  "references": [
    {"name": "mscorlib", "version": "4.0.0.0", "publicKeyToken": "b77a5c561934e089"},
    {"name": "Gadget", "version": "1.0.0.0"}
  ],
  "types": [{
    "namespace": "App",
    "name": "Widget",
    "baseType": "[mscorlib]System.Object",
    "fields": [
      {"name": "Name", "type": "[mscorlib]System.String"},
      {"name": "Inner", "type": "[Gadget]App.Gadget"}
    ]
  }]
}`

const gadgetDescriptor = `
[assembly]
name = "Gadget"
version = "1.0.0.0"

[[references]]
name = "mscorlib"
version = "4.0.0.0"
publicKeyToken = "b77a5c561934e089"

[[types]]
namespace = "App"
name = "Gadget"
baseType = "[mscorlib]System.Object"
`

// buildDir runs a full analysis of primary inside dir and returns the result
// and the emitted tree.
func buildDir(t *testing.T, dir, primary string) (*Result, *report.Element) {
	t.Helper()
	p := descriptor.NewProvider()
	path := filepath.Join(dir, primary)
	m, err := p.Load(path)
	if err != nil {
		t.Fatalf("Load(%s): %v", primary, err)
	}

	tree := report.NewTree()
	res, err := NewBuilder(p, tree, Options{}).Build(context.Background(), m, path)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if err := tree.Close(); err != nil {
		t.Fatal(err)
	}
	return res, tree.Root()
}

func attr(e *report.Element, name string) string {
	v, _ := e.Attr(name)
	return v
}

func assemblyNames(root *report.Element) []string {
	var out []string
	for _, a := range root.All(ElemAssembly) {
		out = append(out, attr(a, "name"))
	}
	return out
}

func TestBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)

	res, root := buildDir(t, dir, "App.dll")

	if root.Name != ElemDependencies || attr(root, "name") != "App" || attr(root, "version") != "1.0.0.0" {
		t.Fatalf("root = %s name=%q version=%q", root.Name, attr(root, "name"), attr(root, "version"))
	}
	if got := assemblyNames(root); !slices.Equal(got, []string{"App", "Gadget"}) {
		t.Fatalf("Assembly sections = %v, want [App Gadget]", got)
	}

	app := root.All(ElemAssembly)[0]
	refs := app.Child(ElemReferences).All(ElemReference)
	if len(refs) != 2 {
		t.Fatalf("App references = %d, want 2", len(refs))
	}
	if attr(refs[0], "name") != "mscorlib" || attr(refs[0], "fullName") != corlibFullName || attr(refs[0], "version") != "4.0.0.0" {
		t.Errorf("first reference = %+v", refs[0].Attrs)
	}

	froms := app.Child(ElemTypeReferences).All(ElemFrom)
	if len(froms) != 1 || attr(froms[0], "fullname") != "App.Widget" {
		t.Fatalf("From sections = %v, want one App.Widget", froms)
	}
	tos := froms[0].All(ElemTo)
	if len(tos) != 1 {
		t.Fatalf("To elements = %d, want 1", len(tos))
	}
	if attr(tos[0], "fullname") != "App.Gadget" || attr(tos[0], "assemblyname") != "Gadget" || attr(tos[0], "assemblyversion") != "1.0.0.0" {
		t.Errorf("To = %+v", tos[0].Attrs)
	}

	gadget := root.All(ElemAssembly)[1]
	if gadget.Child(ElemTypeReferences) != nil {
		t.Error("secondary assembly must not have TypeReferences")
	}
	if gadget.Child(ElemReferences) == nil {
		t.Error("secondary assembly should list its references")
	}

	if want := []string{appFullName, gadgetFullName}; !slices.Equal(res.Analyzed, want) {
		t.Errorf("Analyzed = %v, want %v", res.Analyzed, want)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].FullName != corlibFullName || res.Skipped[0].Status != StatusMissing {
		t.Errorf("Skipped = %+v, want mscorlib missing", res.Skipped)
	}
	if res.Types != 1 || res.Edges != 1 {
		t.Errorf("Types, Edges = %d, %d; want 1, 1", res.Types, res.Edges)
	}
}

func TestBuild_Graph(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)

	res, _ := buildDir(t, dir, "App.dll")
	g := res.Graph

	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Fatalf("graph has %d nodes and %d edges, want 3 and 3", g.NodeCount(), g.EdgeCount())
	}
	status := map[string]string{
		appFullName:    "analyzed",
		gadgetFullName: "analyzed",
		corlibFullName: "missing",
	}
	for id, want := range status {
		n, ok := g.Node(id)
		if !ok {
			t.Errorf("node %s missing", id)
			continue
		}
		if got := n.Meta.String("status"); got != want {
			t.Errorf("%s status = %q, want %q", id, got, want)
		}
	}
	if n, _ := g.Node(appFullName); !n.Meta.Bool("primary") {
		t.Error("App should be marked primary")
	}
	if n, _ := g.Node(corlibFullName); n.Meta.String("name") != "mscorlib" || n.Meta.String("version") != "4.0.0.0" {
		t.Errorf("mscorlib meta = %v", n.Meta)
	}
	if !g.HasEdge(gadgetFullName, corlibFullName) {
		t.Error("missing edge Gadget -> mscorlib")
	}
}

func TestBuild_Cycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.dll", `{
  "assembly": {"name": "A", "version": "1.0"},
  "references": [{"name": "B", "version": "1.0"}],
  "types": [{"namespace": "A", "name": "Left", "fields": [{"type": "[B]B.Right"}]}]
}`)
	writeFile(t, dir, "B.dll", `{
  "assembly": {"name": "B", "version": "1.0"},
  "references": [{"name": "A", "version": "1.0"}],
  "types": [{"namespace": "B", "name": "Right", "fields": [{"type": "[A]A.Left"}]}]
}`)

	res, root := buildDir(t, dir, "A.dll")

	if got := assemblyNames(root); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Assembly sections = %v, want [A B]", got)
	}
	if len(res.Analyzed) != 2 || len(res.Skipped) != 0 {
		t.Errorf("Analyzed = %v, Skipped = %v", res.Analyzed, res.Skipped)
	}
	if !res.Graph.HasEdge(res.Analyzed[0], res.Analyzed[1]) || !res.Graph.HasEdge(res.Analyzed[1], res.Analyzed[0]) {
		t.Error("graph should contain both directions of the cycle")
	}
}

func TestBuild_SkippedSecondaries(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   string
		status Status
	}{
		{"missing", "", "", StatusMissing},
		{"identity mismatch", "Gadget.dll", `{"assembly": {"name": "Gadget", "version": "2.0.0.0"}}`, StatusMismatch},
		{"unreadable", "Gadget.dll", "MZ\x90\x00", StatusUnreadable},
		{"invalid descriptor", "Gadget.dll", `{"assembly": `, StatusUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "App.dll", appDescriptor)
			if tt.file != "" {
				writeFile(t, dir, tt.file, tt.data)
			}

			res, root := buildDir(t, dir, "App.dll")

			if got := assemblyNames(root); !slices.Equal(got, []string{"App"}) {
				t.Errorf("Assembly sections = %v, want [App]", got)
			}
			var gadget *Skipped
			for i := range res.Skipped {
				if res.Skipped[i].FullName == gadgetFullName {
					gadget = &res.Skipped[i]
				}
			}
			if gadget == nil {
				t.Fatalf("Gadget not in Skipped: %+v", res.Skipped)
			}
			if gadget.Status != tt.status {
				t.Errorf("status = %s, want %s", gadget.Status, tt.status)
			}
			if n, _ := res.Graph.Node(gadgetFullName); n.Meta.String("status") != string(tt.status) {
				t.Errorf("graph status = %v, want %s", n.Meta["status"], tt.status)
			}
		})
	}
}

func TestBuild_ExeFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.exe", gadgetDescriptor)

	_, root := buildDir(t, dir, "App.dll")
	if got := assemblyNames(root); !slices.Equal(got, []string{"App", "Gadget"}) {
		t.Errorf("Assembly sections = %v, want [App Gadget]", got)
	}
}

func TestBuild_SymbolsDoNotChangeOutput(t *testing.T) {
	run := func(withSymbols bool) string {
		dir := t.TempDir()
		path := writeFile(t, dir, "App.dll", appDescriptor)
		writeFile(t, dir, "Gadget.dll", gadgetDescriptor)
		if withSymbols {
			writeFile(t, dir, "App.pdb", "")
			writeFile(t, dir, "Gadget.pdb", "")
		}

		p := descriptor.NewProvider()
		m, err := p.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		w := report.NewXMLWriter(&buf)
		if _, err := NewBuilder(p, w, Options{}).Build(context.Background(), m, path); err != nil {
			t.Fatalf("Build(symbols=%v) error: %v", withSymbols, err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		if withSymbols && m.(*descriptor.Module).SymbolFile() == "" {
			t.Error("symbols should have been attached")
		}
		return buf.String()
	}

	without, with := run(false), run(true)
	if without != with {
		t.Errorf("output differs with symbols\nwithout:\n%s\nwith:\n%s", without, with)
	}
}

func TestBuild_XMLDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)

	p := descriptor.NewProvider()
	m, _ := p.Load(path)
	var buf bytes.Buffer
	w := report.NewXMLWriter(&buf)
	if _, err := NewBuilder(p, w, Options{}).Build(context.Background(), m, path); err != nil {
		t.Fatal(err)
	}
	w.Close()

	var doc struct {
		Name       string `xml:"name,attr"`
		Assemblies []struct {
			Name       string `xml:"name,attr"`
			References []struct {
				FullName string `xml:"fullName,attr"`
			} `xml:"References>Reference"`
			From []struct {
				FullName string `xml:"fullname,attr"`
				To       []struct {
					FullName     string `xml:"fullname,attr"`
					AssemblyName string `xml:"assemblyname,attr"`
				} `xml:"To"`
			} `xml:"TypeReferences>From"`
		} `xml:"Assembly"`
	}
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid XML: %v\n%s", err, buf.String())
	}
	if doc.Name != "App" || len(doc.Assemblies) != 2 {
		t.Fatalf("decoded %+v", doc)
	}
	if len(doc.Assemblies[0].From) != 1 || doc.Assemblies[0].From[0].To[0].AssemblyName != "Gadget" {
		t.Errorf("App type references = %+v", doc.Assemblies[0].From)
	}
	if len(doc.Assemblies[1].References) != 1 || doc.Assemblies[1].References[0].FullName != corlibFullName {
		t.Errorf("Gadget references = %+v", doc.Assemblies[1].References)
	}
}

func TestBuild_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)

	p := descriptor.NewProvider()
	m, _ := p.Load(path)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree := report.NewTree()
	_, err := NewBuilder(p, tree, Options{}).Build(ctx, m, path)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Build() error = %v, want context.Canceled", err)
	}
	tree.Close()
	if got := assemblyNames(tree.Root()); !slices.Equal(got, []string{"App"}) {
		t.Errorf("Assembly sections = %v, want only the primary", got)
	}
}

type failingEmitter struct {
	report.Emitter
	starts, failAt int
}

func (f *failingEmitter) Start(name string, attrs ...report.Attr) error {
	f.starts++
	if f.starts == f.failAt {
		return errors.New("disk full")
	}
	return f.Emitter.Start(name, attrs...)
}

func TestBuild_EmitterErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)

	p := descriptor.NewProvider()
	m, _ := p.Load(path)
	for failAt := 1; failAt <= 8; failAt++ {
		em := &failingEmitter{Emitter: report.NewTree(), failAt: failAt}
		if _, err := NewBuilder(p, em, Options{}).Build(context.Background(), m, path); err == nil {
			t.Errorf("Build() with failure at start %d should fail", failAt)
		}
	}
}

type recordingHooks struct {
	observability.NoopAnalysisHooks
	started []string
	skipped []string
	done    int
}

func (r *recordingHooks) OnAssemblyStart(_ context.Context, name string, _ bool) {
	r.started = append(r.started, name)
}

func (r *recordingHooks) OnAssemblySkipped(_ context.Context, fullName, reason string) {
	r.skipped = append(r.skipped, fullName+":"+reason)
}

func (r *recordingHooks) OnAnalysisComplete(context.Context, string, int, time.Duration, error) {
	r.done++
}

func TestBuild_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetAnalysisHooks(hooks)
	defer observability.Reset()

	dir := t.TempDir()
	writeFile(t, dir, "App.dll", appDescriptor)
	writeFile(t, dir, "Gadget.dll", gadgetDescriptor)
	buildDir(t, dir, "App.dll")

	if !slices.Equal(hooks.started, []string{"App", "Gadget"}) {
		t.Errorf("started = %v, want [App Gadget]", hooks.started)
	}
	if !slices.Equal(hooks.skipped, []string{corlibFullName + ":missing"}) {
		t.Errorf("skipped = %v", hooks.skipped)
	}
	if hooks.done != 1 {
		t.Errorf("OnAnalysisComplete called %d times, want 1", hooks.done)
	}
}

func TestBuild_Logging(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "App.dll", appDescriptor)

	var infos, warns []string
	opts := Options{
		Logger: func(format string, args ...any) { infos = append(infos, format) },
		Warn:   func(format string, args ...any) { warns = append(warns, format) },
	}
	p := descriptor.NewProvider()
	m, _ := p.Load(path)
	if _, err := NewBuilder(p, report.NewTree(), opts).Build(context.Background(), m, path); err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Errorf("progress lines = %v, want one parsing line", infos)
	}
	if len(warns) != 2 {
		t.Errorf("warnings = %v, want mscorlib and Gadget skips", warns)
	}
}

func TestRun_GraphErrorsAreLogged(t *testing.T) {
	tests := []struct {
		name      string
		do        func(r *run)
		wantDebug int
		wantEdges int
	}{
		{"valid node", func(r *run) { r.node(appFullName) }, 0, 0},
		{"empty node id", func(r *run) { r.node("") }, 1, 0},
		{"edge between known nodes", func(r *run) {
			r.node(appFullName)
			r.node(gadgetFullName)
			r.edge(appFullName, gadgetFullName)
			r.edge(appFullName, gadgetFullName)
		}, 0, 1},
		{"edge to unknown node", func(r *run) {
			r.node(appFullName)
			r.edge(appFullName, gadgetFullName)
		}, 1, 0},
		{"skip with empty name", func(r *run) { r.skip("", StatusMissing, "") }, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var debug []string
			opts := Options{Debug: func(format string, args ...any) { debug = append(debug, fmt.Sprintf(format, args...)) }}
			r := &run{
				Builder: NewBuilder(descriptor.NewProvider(), report.NewTree(), opts),
				ctx:     context.Background(),
				hooks:   observability.NoopAnalysisHooks{},
				state:   NewState(),
				result:  &Result{Graph: dag.New(nil)},
			}
			tt.do(r)
			if len(debug) != tt.wantDebug {
				t.Errorf("debug lines = %v, want %d", debug, tt.wantDebug)
			}
			if got := r.result.Graph.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

package descriptor

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

const appJSON = `{
  "assembly": {"name": "App", "version": "1.0.0.0"},
  "references": [
    {"name": "mscorlib", "version": "4.0.0.0", "publicKeyToken": "B77A5C561934E089"},
    {"name": "Gadget", "version": "2.1.0.0", "culture": "neutral"}
  ],
  "types": [{
    "namespace": "App",
    "name": "Widget",
    "attributes": ["[mscorlib]System.SerializableAttribute"],
    "baseType": "[mscorlib]System.Object",
    "interfaces": ["App.IWidget"],
    "fields": [{"name": "gadget", "type": "[Gadget]App.Gadget"}],
    "methods": [
      {"name": "Run", "returnType": "[mscorlib]System.Void", "parameters": [{"name": "count", "type": "[mscorlib]System.Int32"}],
       "body": {"variables": ["App.Item[]"], "handlers": [{"kind": "catch", "catchType": "App.WidgetException"}, {"kind": "finally"}]}},
      {"name": "Abstract"}
    ],
    "nestedTypes": [{"name": "Part", "fields": [{"type": "App.Widget"}]}]
  }]
}`

const appTOML = `
module = "App.exe"

[assembly]
name = "App"
version = "1.0"

[[references]]
name = "Gadget"
version = "2.1.0.0"

[[types]]
namespace = "App"
name = "Widget"
baseType = "[Gadget]App.Gadget"

[[types.methods]]
name = "Run"
returnType = "App.Widget"

[types.methods.body]
variables = ["[Gadget]App.Gadget"]
`

func TestParse_JSON(t *testing.T) {
	m, err := Parse([]byte(appJSON), "App.dll")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Format() != FormatJSON {
		t.Errorf("Format() = %q, want json", m.Format())
	}
	if m.Name() != "App.dll" {
		t.Errorf("Name() = %q, want App.dll", m.Name())
	}
	if got := m.Assembly().FullName(); got != "App, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null" {
		t.Errorf("Assembly().FullName() = %q", got)
	}

	refs := m.AssemblyReferences()
	if len(refs) != 2 {
		t.Fatalf("len(AssemblyReferences()) = %d, want 2", len(refs))
	}
	if refs[0].PublicKeyToken != "b77a5c561934e089" {
		t.Errorf("token = %q, want lowercase", refs[0].PublicKeyToken)
	}
	if refs[1].Culture != "" {
		t.Errorf("culture = %q, want neutral (empty)", refs[1].Culture)
	}

	types := m.Types()
	if len(types) != 1 {
		t.Fatalf("len(Types()) = %d, want 1", len(types))
	}
	w := types[0]
	if w.FullName() != "App.Widget" || w.IsNested() {
		t.Errorf("type = %q (nested=%v), want top-level App.Widget", w.FullName(), w.IsNested())
	}
	if len(w.CustomAttributes()) != 1 || w.BaseType() == nil || len(w.Interfaces()) != 1 || len(w.Fields()) != 1 {
		t.Errorf("member surfaces not decoded: %+v", w)
	}
	if got := w.Fields()[0].Scope().Kind; got != metadata.ScopeAssemblyReference {
		t.Errorf("field scope = %v, want assembly", got)
	}

	methods := w.Methods()
	if len(methods) != 2 {
		t.Fatalf("len(Methods()) = %d, want 2", len(methods))
	}
	run := methods[0]
	if run.ReturnType == nil || len(run.Parameters) != 1 || run.Body == nil {
		t.Fatalf("Run not fully decoded: %+v", run)
	}
	if len(run.Body.Variables) != 1 || !run.Body.Variables[0].IsArray() {
		t.Errorf("variables = %v, want one array", run.Body.Variables)
	}
	handlers := run.Body.ExceptionHandlers
	if len(handlers) != 2 {
		t.Fatalf("len(handlers) = %d, want 2", len(handlers))
	}
	if handlers[0].Kind != metadata.HandlerCatch || handlers[0].CatchType.FullName() != "App.WidgetException" {
		t.Errorf("handlers[0] = %+v", handlers[0])
	}
	if handlers[1].Kind != metadata.HandlerFinally || handlers[1].CatchType != nil {
		t.Errorf("handlers[1] = %+v, want finally without catch type", handlers[1])
	}
	if methods[1].Body != nil || methods[1].ReturnType != nil {
		t.Errorf("Abstract should have no body and no return type")
	}

	nested := w.NestedTypes()
	if len(nested) != 1 {
		t.Fatalf("len(NestedTypes()) = %d, want 1", len(nested))
	}
	part := nested[0]
	if !part.IsNested() || part.FullName() != "App.Widget/Part" || part.Namespace() != "App" {
		t.Errorf("nested = (%q, %q, nested=%v)", part.FullName(), part.Namespace(), part.IsNested())
	}
}

func TestParse_TOML(t *testing.T) {
	m, err := Parse([]byte(appTOML), "App.dll")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Format() != FormatTOML {
		t.Errorf("Format() = %q, want toml", m.Format())
	}
	if m.Name() != "App.exe" {
		t.Errorf("Name() = %q, want module override App.exe", m.Name())
	}
	if got := m.Assembly().Version.String(); got != "1.0.0.0" {
		t.Errorf("version = %q, want 1.0.0.0", got)
	}
	w := m.Types()[0]
	if got := w.BaseType().Scope().Name; got != "Gadget" {
		t.Errorf("base type scope = %q, want Gadget", got)
	}
	if got := w.BaseType().Scope().Assembly.Version.String(); got != "2.1.0.0" {
		t.Errorf("base type assembly version = %q, want 2.1.0.0", got)
	}
	run := w.Methods()[0]
	if run.Body == nil || len(run.Body.Variables) != 1 {
		t.Fatalf("Run body not decoded: %+v", run)
	}
	if got := run.ReturnType.Scope().Name; got != "App.exe" {
		t.Errorf("return type scope = %q, want App.exe", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"binary image", "MZ\x90\x00\x03", ErrBinaryImage},
		{"missing assembly json", `{"types": []}`, ErrMissingAssembly},
		{"missing assembly toml", `module = "x.dll"`, ErrMissingAssembly},
		{"bad signature", `{"assembly": {"name": "A"}, "types": [{"namespace": "A", "name": "T", "baseType": "[x"}]}`, ErrInvalidSignature},
		{"unknown json key", `{"assembly": {"name": "A"}, "extra": 1}`, nil},
		{"unknown toml key", "extra = 1\n[assembly]\nname = \"A\"\n", nil},
		{"bad version", `{"assembly": {"name": "A", "version": "1.x"}}`, nil},
		{"bad handler", `{"assembly": {"name": "A"}, "types": [{"name": "T", "methods": [{"name": "M", "body": {"handlers": [{"kind": "oops"}]}}]}]}`, nil},
		{"unnamed type", `{"assembly": {"name": "A"}, "types": [{"namespace": "A"}]}`, nil},
		{"malformed json", `{"assembly": `, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "A.dll")
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		data string
		want Format
	}{
		{`{"assembly": {}}`, FormatJSON},
		{"\n\t  {}", FormatJSON},
		{"\ufeff{}", FormatJSON},
		{"[assembly]\nname = \"A\"", FormatTOML},
		{"", FormatTOML},
	}
	for _, tt := range tests {
		got, err := DetectFormat([]byte(tt.data))
		if err != nil {
			t.Errorf("DetectFormat(%q) error: %v", tt.data, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

func TestProvider_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.dll")
	if err := os.WriteFile(path, []byte(appJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider()
	m, err := p.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Name() != "App.dll" {
		t.Errorf("Name() = %q, want App.dll", m.Name())
	}

	if _, err := p.Load(filepath.Join(dir, "Missing.dll")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want fs.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "Bad.dll")
	if err := os.WriteFile(bad, []byte("MZ"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = p.Load(bad)
	if !errors.Is(err, ErrBinaryImage) {
		t.Errorf("Load(binary) error = %v, want ErrBinaryImage", err)
	}
	if err != nil && !strings.Contains(err.Error(), bad) {
		t.Errorf("Load(binary) error %q should name the path", err)
	}
}

func TestProvider_ReadSymbols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "App.dll")
	if err := os.WriteFile(path, []byte(appJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider()
	m, err := p.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if err := p.ReadSymbols(m, path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadSymbols() without pdb error = %v, want fs.ErrNotExist", err)
	}
	if got := m.(*Module).SymbolFile(); got != "" {
		t.Errorf("SymbolFile() = %q, want empty", got)
	}

	pdb := filepath.Join(dir, "App.pdb")
	if err := os.WriteFile(pdb, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.ReadSymbols(m, path); err != nil {
		t.Fatalf("ReadSymbols() error: %v", err)
	}
	if got := m.(*Module).SymbolFile(); got != pdb {
		t.Errorf("SymbolFile() = %q, want %q", got, pdb)
	}
}

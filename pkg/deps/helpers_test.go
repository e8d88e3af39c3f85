package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/asmdeps/pkg/metadata"
	"github.com/matzehuels/asmdeps/pkg/metadata/descriptor"
)

var (
	testAssembly = metadata.AssemblyName{Name: "App", Version: metadata.Version{1, 0, 0, 0}}
	testRefs     = []metadata.AssemblyName{
		{Name: "mscorlib", Version: metadata.Version{4, 0, 0, 0}, PublicKeyToken: "b77a5c561934e089"},
		{Name: "System.Core", Version: metadata.Version{4, 0, 0, 0}},
		{Name: "Gadget", Version: metadata.Version{1, 0, 0, 0}},
	}
)

// ref parses a signature as seen from App.dll.
func ref(t *testing.T, sig string) metadata.TypeRef {
	t.Helper()
	r, err := descriptor.ParseTypeRef(sig, "App.dll", testAssembly, testRefs)
	if err != nil {
		t.Fatalf("ParseTypeRef(%q): %v", sig, err)
	}
	return r
}

// parseModule decodes an in-memory descriptor.
func parseModule(t *testing.T, name, doc string) *descriptor.Module {
	t.Helper()
	m, err := descriptor.Parse([]byte(doc), name)
	if err != nil {
		t.Fatalf("Parse(%s): %v", name, err)
	}
	return m
}

// writeFile writes a descriptor fixture and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fullNames(refs []metadata.TypeRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.FullName()
	}
	return out
}

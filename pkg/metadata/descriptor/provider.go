package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/asmdeps/pkg/metadata"
)

// SymbolExtension is the extension of the debug symbol companion file.
const SymbolExtension = ".pdb"

// Provider loads module descriptors from disk. The zero value is ready to use.
type Provider struct{}

// NewProvider returns a descriptor provider.
func NewProvider() *Provider { return &Provider{} }

// Load reads and decodes the descriptor at path. The module name defaults to
// the file's base name.
func (p *Provider) Load(path string) (metadata.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadSymbols attaches the symbol companion of the module at path. When the
// companion is missing the error satisfies errors.Is(err, fs.ErrNotExist).
func (p *Provider) ReadSymbols(m metadata.Module, path string) error {
	pdb := strings.TrimSuffix(path, filepath.Ext(path)) + SymbolExtension
	info, err := os.Stat(pdb)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("symbol file %s is a directory", pdb)
	}
	if dm, ok := m.(*Module); ok {
		dm.symbolFile = pdb
	}
	return nil
}

// Parse decodes a descriptor held in memory. name is used as the module name
// when the descriptor does not set one.
func Parse(data []byte, name string) (*Module, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	format, _ := DetectFormat(data)
	return buildModule(doc, name, format)
}

var (
	_ metadata.Provider     = (*Provider)(nil)
	_ metadata.SymbolReader = (*Provider)(nil)
	_ metadata.Module       = (*Module)(nil)
)

package deps

import (
	"os"
	"path/filepath"
)

// Locator finds referenced assemblies in a single directory.
type Locator struct {
	dir  string
	exts []string
}

// NewLocator returns a locator for dir that tries exts in order.
func NewLocator(dir string, exts []string) *Locator {
	return &Locator{dir: dir, exts: exts}
}

// Dir returns the directory searched by the locator.
func (l *Locator) Dir() string { return l.dir }

// Locate returns the path of the first regular file named name plus one of
// the configured extensions.
func (l *Locator) Locate(name string) (string, bool) {
	for _, ext := range l.exts {
		path := filepath.Join(l.dir, name+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

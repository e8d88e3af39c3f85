package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/asmdeps/pkg/errors"
)

// absPath resolves a relative path against the working directory.
func absPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}

// resolveInput returns the absolute path of the assembly to scan.
// Missing or non-regular files yield ErrCodeFileNotFound.
func resolveInput(path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "invalid assembly path")
	}
	abs, err := absPath(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "could not resolve %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s was not found", abs)
	}
	if !info.Mode().IsRegular() {
		return "", errors.New(errors.ErrCodeFileNotFound, "input file %s is not a regular file", abs)
	}
	return abs, nil
}

// resolveOutput returns the absolute path of the report file. Its directory
// must exist; a file already at that path is deleted.
func resolveOutput(path string) (string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidOutput, err, "invalid output path")
	}
	abs, err := absPath(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not resolve %s", path)
	}

	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidOutput, "output directory %s does not exist", dir)
	}

	info, err := os.Stat(abs)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return abs, nil
	case err != nil:
		return "", errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not access %s", abs)
	case info.IsDir():
		return "", errors.New(errors.ErrCodeInvalidOutput, "output path %s is a directory", abs)
	}
	if err := os.Remove(abs); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not delete existing file %s", abs)
	}
	return abs, nil
}

// distinctOutputs rejects a graph or metrics path that would overwrite the
// report or each other. Empty paths are ignored.
func distinctOutputs(output, graph, metrics string) error {
	seen := make(map[string]string)
	for _, o := range []struct{ flag, path string }{
		{"--output", output},
		{"--graph", graph},
		{"--metrics", metrics},
	} {
		if o.path == "" {
			continue
		}
		abs, err := absPath(o.path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not resolve %s", o.path)
		}
		if prev, ok := seen[abs]; ok {
			return errors.New(errors.ErrCodeInvalidOutput, "%s and %s both write %s", prev, o.flag, abs)
		}
		seen[abs] = o.flag
	}
	return nil
}

package cli

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/asmdeps/pkg/deps"
	"github.com/matzehuels/asmdeps/pkg/errors"
)

// Config is the optional configuration file passed with --config.
//
//	[filter]
//	framework_roots    = ["mscorlib"]
//	framework_prefixes = ["System", "Microsoft"]
//
//	[resolve]
//	extensions = [".dll", ".exe"]
//
// Empty lists keep the built-in defaults.
type Config struct {
	Filter  FilterConfig  `toml:"filter" yaml:"filter"`
	Resolve ResolveConfig `toml:"resolve" yaml:"resolve"`
}

// FilterConfig selects which referenced assemblies count as framework.
type FilterConfig struct {
	FrameworkRoots    []string `toml:"framework_roots" yaml:"framework_roots"`
	FrameworkPrefixes []string `toml:"framework_prefixes" yaml:"framework_prefixes"`
}

// ResolveConfig controls how referenced assemblies are located on disk.
type ResolveConfig struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// loadConfig reads a config file. The format follows the extension:
// .toml, .yaml or .yml.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if err := errors.ValidatePath(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "could not read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "could not parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "could not parse %s", path)
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	for _, e := range cfg.Resolve.Extensions {
		if !strings.HasPrefix(e, ".") {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "extension %q must start with a dot", e)
		}
	}
	return cfg, nil
}

// Options converts the configuration into analysis options. Extra prefixes
// from the command line are appended to the configured or default list.
func (c Config) Options(extraPrefixes []string) deps.Options {
	prefixes := c.Filter.FrameworkPrefixes
	if len(extraPrefixes) > 0 {
		if len(prefixes) == 0 {
			prefixes = deps.DefaultFrameworkPrefixes
		}
		prefixes = append(slices.Clone(prefixes), extraPrefixes...)
	}
	return deps.Options{
		FrameworkRoots:    slices.Clone(c.Filter.FrameworkRoots),
		FrameworkPrefixes: prefixes,
		Extensions:        slices.Clone(c.Resolve.Extensions),
	}
}

package deps

import "slices"

var (
	// DefaultFrameworkRoots are scope names that are skipped on exact match.
	DefaultFrameworkRoots = []string{"mscorlib"}
	// DefaultFrameworkPrefixes are scope name prefixes that are skipped.
	// Matching is a plain string prefix test, so "SystemTools" is skipped too.
	DefaultFrameworkPrefixes = []string{"System", "Microsoft"}
	// DefaultExtensions are the file extensions tried, in order, when
	// locating a referenced assembly next to the primary one.
	DefaultExtensions = []string{".dll", ".exe"}
)

// Options configures dependency analysis behavior.
type Options struct {
	FrameworkRoots    []string             // Exact scope names treated as framework (default: mscorlib)
	FrameworkPrefixes []string             // Scope name prefixes treated as framework (default: System, Microsoft)
	Extensions        []string             // Lookup order for referenced assemblies (default: .dll, .exe)
	Logger            func(string, ...any) // Progress callback (optional)
	Warn              func(string, ...any) // Recoverable problems such as skipped assemblies (optional)
	Debug             func(string, ...any) // Diagnostic detail (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if len(opts.FrameworkRoots) == 0 {
		opts.FrameworkRoots = slices.Clone(DefaultFrameworkRoots)
	}
	if len(opts.FrameworkPrefixes) == 0 {
		opts.FrameworkPrefixes = slices.Clone(DefaultFrameworkPrefixes)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = slices.Clone(DefaultExtensions)
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.Warn == nil {
		opts.Warn = opts.Logger
	}
	if opts.Debug == nil {
		opts.Debug = func(string, ...any) {}
	}
	return opts
}

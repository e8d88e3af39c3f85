// Package cli implements the asmdeps command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asmdeps/pkg/buildinfo"
	"github.com/matzehuels/asmdeps/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used in messages and usage text.
	appName = "asmdeps"

	// defaultOutput is the report file written when --output is not given.
	defaultOutput = "output.xml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Process exit statuses.
const (
	ExitOK              = 0
	ExitFileNotFound    = -1
	ExitInvalidOutput   = -2
	ExitInvalidAssembly = -3
	ExitFailure         = 1
	ExitInterrupted     = 130
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the root command.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer // Usage, version and progress output
	Err    io.Writer // Error lines
}

// New creates a CLI writing progress to out and errors and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
		Err:    errw,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the asmdeps command.
func (c *CLI) RootCommand() *cobra.Command {
	var opts analyzeOptions

	root := &cobra.Command{
		Use:   appName + " -a=assembly [options]",
		Short: "asmdeps reports the type dependencies of a .NET assembly",
		Long: `asmdeps reads a module descriptor, a JSON or TOML file describing the metadata
of a .NET assembly, and records every type each of its types depends on. It then
follows the assembly references it can find as descriptors next to the input
file and lists their own references. The result is written as an XML report.

Descriptors keep the assembly file name (App.dll, App.exe). Compiled PE images
are not read and are reported as invalid assemblies.`,
		Args:          usageArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintln(c.Out, buildinfo.Line(appName))
				if c.Logger.GetLevel() <= LogDebug {
					fmt.Fprintln(c.Out, buildinfo.String())
				}
				return nil
			}
			if opts.assembly == "" {
				return cmd.Help()
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runAnalyze(ctx, opts)
		},
	}

	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid arguments")
	})

	f := root.Flags()
	f.StringVarP(&opts.assembly, "assembly", "a", "", "the module descriptor of the assembly to scan")
	f.StringVarP(&opts.output, "output", "o", defaultOutput, "the path to the output xml report file")
	f.BoolVarP(&opts.version, "version", "v", false, "print "+appName+" version and exit")
	f.StringVar(&opts.config, "config", "", "config file (.toml, .yaml or .yml)")
	f.StringArrayVar(&opts.frameworkPrefixes, "framework-prefix", nil, "additional assembly name prefix treated as framework (repeatable)")
	f.StringVar(&opts.graph, "graph", "", "write the assembly reference graph (.dot, .svg or .json)")
	f.BoolVar(&opts.detailed, "detailed", false, "include versions and status in graph labels")
	f.StringVar(&opts.metrics, "metrics", "", "write run metrics in Prometheus textfile format")

	return root
}

func usageArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid arguments")
	}
	return nil
}

// =============================================================================
// Error Reporting
// =============================================================================

// HandleError prints err the way the command line reports failures and
// returns the process exit status for it. A nil error maps to ExitOK.
//
// Argument errors are reported with a pointer to --help and exit with
// ExitOK, like help and version output.
func (c *CLI) HandleError(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	printError(c.Err, "%s", errors.UserMessage(err))

	code := ExitCode(err)
	if errors.Is(err, errors.ErrCodeInvalidInput) {
		fmt.Fprintf(c.Err, "Try '%s --help' for more information.\n", appName)
	}
	return code
}

// ExitCode maps an error returned by the root command to an exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		return ExitOK
	case errors.ErrCodeFileNotFound:
		return ExitFileNotFound
	case errors.ErrCodeInvalidOutput, errors.ErrCodeDirectoryNotFound:
		return ExitInvalidOutput
	case errors.ErrCodeInvalidAssembly, errors.ErrCodeInvalidDescriptor:
		return ExitInvalidAssembly
	default:
		return ExitFailure
	}
}

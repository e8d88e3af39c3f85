package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs args through the root command and returns the process exit
// status. It is the entry point used by main and by tests.
//
// Logging:
//   - Default: info level (logs to the error writer)
//   - With --verbose: debug level
func (c *CLI) Execute(ctx context.Context, args []string) int {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
	}

	root.SetArgs(args)
	return c.HandleError(root.ExecuteContext(ctx))
}

package cli

import (
	"context"
	stderrors "errors"
	"os"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/dag/transform"
	"github.com/matzehuels/asmdeps/pkg/deps"
	"github.com/matzehuels/asmdeps/pkg/errors"
	"github.com/matzehuels/asmdeps/pkg/metadata"
	"github.com/matzehuels/asmdeps/pkg/metadata/descriptor"
	"github.com/matzehuels/asmdeps/pkg/observability"
	"github.com/matzehuels/asmdeps/pkg/report"
)

// analyzeOptions holds the root command flags.
type analyzeOptions struct {
	assembly          string
	output            string
	version           bool
	config            string
	frameworkPrefixes []string
	graph             string
	detailed          bool
	metrics           string
}

// runAnalyze validates the paths, analyzes the assembly and writes the
// report plus the optional graph and metrics files.
func (c *CLI) runAnalyze(ctx context.Context, opts analyzeOptions) error {
	logger := loggerFromContext(ctx)

	var cfg Config
	if opts.config != "" {
		var err error
		if cfg, err = loadConfig(opts.config); err != nil {
			return err
		}
		logger.Debug("loaded config", "path", opts.config)
	}
	if opts.graph != "" {
		if _, err := graphFormat(opts.graph); err != nil {
			return err
		}
	}

	input, err := resolveInput(opts.assembly)
	if err != nil {
		return err
	}
	if err := distinctOutputs(opts.output, opts.graph, opts.metrics); err != nil {
		return err
	}
	output, err := resolveOutput(opts.output)
	if err != nil {
		return err
	}

	printInfo(c.Out, "Running analysis on assembly %s", input)
	printInfo(c.Out, "Output report file is: %s", output)

	provider := descriptor.NewProvider()
	primary, err := provider.Load(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAssembly, err, "could not analyze assembly %s", input)
	}

	summary := newSummary()
	hooks := observability.MultiAnalysisHooks{summary}
	var m *metrics
	if opts.metrics != "" {
		m = newMetrics()
		hooks = append(hooks, m)
		observability.SetRenderHooks(m)
	}
	observability.SetAnalysisHooks(hooks)
	defer observability.Reset()

	res, err := c.writeReport(ctx, provider, primary, input, output, cfg.Options(opts.frameworkPrefixes))
	if err != nil {
		return err
	}

	back := transform.BackEdges(res.Graph)
	for _, e := range back {
		logger.Warn("reference cycle", "from", e.From, "to", e.To)
	}
	logger.Debug("reference graph",
		"assemblies", res.Graph.NodeCount(),
		"depth", annotateDepths(res.Graph, res.Primary.FullName()),
		"leaves", dag.NodeIDs(res.Graph.Sinks()))

	if opts.graph != "" {
		path, err := resolveOutput(opts.graph)
		if err != nil {
			return err
		}
		if err := writeGraph(ctx, res.Graph, back, path, opts.detailed); err != nil {
			return err
		}
		printFile(c.Out, path)
	}

	if m != nil {
		path, err := resolveOutput(opts.metrics)
		if err != nil {
			return err
		}
		if err := m.write(path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not write metrics")
		}
		printFile(c.Out, path)
	}

	summary.print(c.Out, res.Primary.Name)
	if logger.GetLevel() <= LogDebug {
		summary.printSkipped(c.Out, res.Graph)
	}
	return nil
}

// writeReport runs the builder with an XML emitter writing to output.
func (c *CLI) writeReport(ctx context.Context, provider *descriptor.Provider, primary metadata.Module, input, output string, opts deps.Options) (*deps.Result, error) {
	logger := loggerFromContext(ctx)
	opts.Logger, opts.Warn, opts.Debug = printfFuncs(logger)

	f, err := os.Create(output)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not create %s", output)
	}

	prog := newProgress(logger)
	w := report.NewXMLWriter(f)
	res, err := deps.NewBuilder(provider, w, opts).Build(ctx, primary, input)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not write report %s", output)
	}
	prog.done("analysis complete")
	return res, nil
}

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/dag/transform"
	"github.com/matzehuels/asmdeps/pkg/errors"
	graphio "github.com/matzehuels/asmdeps/pkg/io"
	"github.com/matzehuels/asmdeps/pkg/observability"
	"github.com/matzehuels/asmdeps/pkg/render/nodelink"
)

// Graph output formats, selected by the --graph file extension.
const (
	graphDOT  = "dot"
	graphSVG  = "svg"
	graphJSON = "json"
)

// graphFormat returns the output format for path.
func graphFormat(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		return graphDOT, nil
	case ".svg":
		return graphSVG, nil
	case ".json":
		return graphJSON, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported graph format %q (use .dot, .svg or .json)", ext)
	}
}

// annotateDepths stores each node's reference depth from the primary
// assembly under the "depth" metadata key and returns the maximum depth.
func annotateDepths(g *dag.DAG, primary string) int {
	depths := transform.Depths(g, primary)
	for id, d := range depths {
		if n, ok := g.Node(id); ok {
			n.Meta["depth"] = d
		}
	}
	return transform.MaxDepth(depths)
}

// writeGraph writes the assembly reference graph to path in the format
// implied by its extension. Back edges are drawn dashed in DOT and SVG.
func writeGraph(ctx context.Context, g *dag.DAG, back []dag.Edge, path string, detailed bool) (err error) {
	format, err := graphFormat(path)
	if err != nil {
		return err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	if format == graphJSON {
		if err := graphio.ExportJSON(g, path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not write graph")
		}
		return nil
	}

	data := []byte(nodelink.ToDOT(g, nodelink.Options{Detailed: detailed, BackEdges: back}))
	if format == graphSVG {
		data, err = nodelink.RenderSVG(ctx, string(data))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "could not render graph")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOutput, err, "could not write graph")
	}
	return nil
}

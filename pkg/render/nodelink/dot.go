package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/asmdeps/pkg/dag"
)

// Status values understood by the renderer. Nodes whose "status" metadata is
// not StatusAnalyzed are drawn greyed out.
const (
	StatusAnalyzed = "analyzed"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the version and analysis status to node labels.
	// When false, only the assembly short name is shown.
	Detailed bool
	// BackEdges are drawn dashed. They usually come from transform.BackEdges.
	BackEdges []dag.Edge
}

// ToDOT converts an assembly graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// The primary assembly is drawn with a bold outline; assemblies that were not
// analyzed (missing, mismatched or unreadable) are drawn with grey fill and a
// dashed outline.
func ToDOT(g *dag.DAG, opts Options) string {
	back := make(map[[2]string]bool, len(opts.BackEdges))
	for _, e := range opts.BackEdges {
		back[[2]string{e.From, e.To}] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if back[[2]string{e.From, e.To}] {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, constraint=false];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	name := n.Meta.String("name")
	if name == "" {
		name = n.ID
	}
	if !detailed {
		return name
	}

	var parts []string
	if v := n.Meta.String("version"); v != "" {
		parts = append(parts, v)
	}
	if s := n.Meta.String("status"); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return name
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Meta.Bool("primary") {
		attrs = append(attrs, "penwidth=2")
	}
	if n.Meta.String("status") != StatusAnalyzed {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=dimgray")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

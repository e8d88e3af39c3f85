// Package nodelink renders assembly reference graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// assemblies appear as boxes connected by reference arrows.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{BackEdges: transform.BackEdges(g)})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include version and analysis status
//   - BackEdges: Edges that close reference cycles, drawn dashed
//
// # Node Styles
//
// Node appearance follows the node metadata recorded during analysis: the
// primary assembly gets a bold outline, and any assembly whose "status" is
// not "analyzed" is greyed out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; the DOT source can also be saved and processed with external
// Graphviz tools.
package nodelink

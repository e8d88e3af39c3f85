// Package transform provides analyses and transformations over assembly
// reference graphs.
//
// # Cycle Detection
//
// Assemblies can reference each other, directly (A→B→A) or through longer
// chains. [BackEdges] reports the edges that close such cycles without
// modifying the graph, which is what the graph export uses to draw them
// differently:
//
//	for _, e := range transform.BackEdges(g) {
//	    log.Warn("reference cycle", "from", e.From, "to", e.To)
//	}
//
// It uses a depth-first search with white/gray/black coloring that starts
// from source nodes and then visits remaining nodes in insertion order, so
// results are deterministic.
//
// # Depths
//
// [Depths] computes the breadth-first distance from a root, which for a graph
// rooted at the primary assembly matches the order the worklist discovers
// assemblies in. [MaxDepth] summarizes it.
package transform

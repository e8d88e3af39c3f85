package transform

import "github.com/matzehuels/asmdeps/pkg/dag"

// BackEdges returns the edges that close a directed cycle, found by a
// depth-first search that starts from source nodes and then from any node
// not yet visited, in insertion order. Removing every returned edge leaves
// the graph acyclic. The graph is not modified.
func BackEdges(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var back []dag.Edge
	seen := make(map[[2]string]bool)

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				key := [2]string{node, child}
				if !seen[key] {
					seen[key] = true
					back = append(back, dag.Edge{From: node, To: child})
				}
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	return back
}

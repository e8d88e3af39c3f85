package transform

import "github.com/matzehuels/asmdeps/pkg/dag"

// Depths returns the length of the shortest reference path from root to
// every reachable node. The root has depth 0; unreachable nodes are absent
// from the result. Cycles are harmless since each node is visited once.
//
// For an assembly graph rooted at the primary assembly this is the order in
// which the worklist discovers assemblies.
func Depths(g *dag.DAG, root string) map[string]int {
	if _, ok := g.Node(root); !ok {
		return map[string]int{}
	}
	depth := map[string]int{root: 0}
	queue := []string{root}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range g.Children(curr) {
			if _, ok := depth[child]; ok {
				continue
			}
			depth[child] = depth[curr] + 1
			queue = append(queue, child)
		}
	}
	return depth
}

// MaxDepth returns the largest value in depths, or 0 for an empty map.
func MaxDepth(depths map[string]int) int {
	deepest := 0
	for _, d := range depths {
		deepest = max(deepest, d)
	}
	return deepest
}

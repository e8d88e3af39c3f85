package transform_test

import (
	"fmt"

	"github.com/matzehuels/asmdeps/pkg/dag"
	"github.com/matzehuels/asmdeps/pkg/dag/transform"
)

func ExampleBackEdges() {
	// App → A → B → A: A and B reference each other
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "App"})
	_ = g.AddNode(dag.Node{ID: "A"})
	_ = g.AddNode(dag.Node{ID: "B"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "A"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "A"})

	for _, e := range transform.BackEdges(g) {
		fmt.Printf("%s -> %s\n", e.From, e.To)
	}
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// B -> A
	// Edges: 3
}

func ExampleDepths() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "App"})
	_ = g.AddNode(dag.Node{ID: "Gadget"})
	_ = g.AddNode(dag.Node{ID: "Core"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "Gadget"})
	_ = g.AddEdge(dag.Edge{From: "Gadget", To: "Core"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "Core"})

	d := transform.Depths(g, "App")
	fmt.Println(d["App"], d["Gadget"], d["Core"])
	fmt.Println("Max:", transform.MaxDepth(d))
	// Output:
	// 0 1 1
	// Max: 1
}

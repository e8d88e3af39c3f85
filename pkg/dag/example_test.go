package dag_test

import (
	"fmt"

	"github.com/matzehuels/asmdeps/pkg/dag"
)

func ExampleDAG_basic() {
	// Create a simple reference graph: App → Gadget → Core
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "App"})
	_ = g.AddNode(dag.Node{ID: "Gadget"})
	_ = g.AddNode(dag.Node{ID: "Core"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "Gadget"})
	_ = g.AddEdge(dag.Edge{From: "Gadget", To: "Core"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Order:", dag.NodeIDs(g.Nodes()))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Order: [App Gadget Core]
}

func ExampleDAG_traversal() {
	// App references both Gadget and Logging
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "App"})
	_ = g.AddNode(dag.Node{ID: "Gadget"})
	_ = g.AddNode(dag.Node{ID: "Logging"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "Gadget"})
	_ = g.AddEdge(dag.Edge{From: "App", To: "Logging"})

	fmt.Println("Children of App:", g.Children("App"))
	fmt.Println("Parents of Gadget:", g.Parents("Gadget"))
	fmt.Println("Leaves:", dag.NodeIDs(g.Sinks()))
	// Output:
	// Children of App: [Gadget Logging]
	// Parents of Gadget: [App]
	// Leaves: [Gadget Logging]
}

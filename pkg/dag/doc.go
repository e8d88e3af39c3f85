// Package dag provides the directed graph that records which assemblies
// reference which.
//
// # Overview
//
// While the dependency report lists references per assembly, the graph view
// keeps the whole reference structure in one place: one node per observed
// assembly identity and one edge per declared reference. The graph feeds the
// run summary and the optional DOT/SVG export.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "App, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"})
//	g.AddNode(dag.Node{ID: "Gadget, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"})
//	g.AddEdge(dag.Edge{From: "App, ...", To: "Gadget, ..."})
//
// Nodes and edges are kept in insertion order, so traversals and exports are
// deterministic. Query the structure with [DAG.Children], [DAG.Parents],
// [DAG.Sources] and related methods.
//
// # Cycles
//
// Assemblies may reference each other. Unlike a strict DAG, AddEdge accepts
// edges that close a cycle. The [transform] subpackage finds the back edges
// responsible.
//
// # Metadata
//
// Both nodes and the graph itself support arbitrary metadata via [Metadata] maps.
// Assembly nodes carry "name", "version", "status" and "primary". Metadata maps
// are never nil after creation - empty maps are automatically initialized.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize access
// if multiple goroutines read or modify the same graph.
//
// [transform]: github.com/matzehuels/asmdeps/pkg/dag/transform
package dag

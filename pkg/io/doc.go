// Package io provides JSON import and export for assembly reference graphs.
//
// # JSON Format
//
// The format has two required top-level arrays and optional graph metadata:
//
//	{
//	  "meta": {"primary": "App, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"},
//	  "nodes": [
//	    {"id": "App, Version=1.0.0.0, ...", "meta": {"name": "App", "status": "analyzed", "primary": true}},
//	    {"id": "Gadget, Version=2.1.0.0, ...", "meta": {"name": "Gadget", "status": "missing"}}
//	  ],
//	  "edges": [
//	    {"from": "App, Version=1.0.0.0, ...", "to": "Gadget, Version=2.1.0.0, ..."}
//	  ]
//	}
//
// Node IDs are assembly full names. The meta object can contain any data;
// the keys written by the analyzer are name, version, status and primary.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both reject duplicate node IDs and edges whose
// endpoints are unknown. Reference cycles are accepted.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Nodes and edges keep their insertion order, so an exported graph
// re-imports identically.
package io

// Package descriptor implements [metadata.Provider] over module descriptors:
// text documents that describe the metadata of a compiled .NET module.
//
// # Overview
//
// A descriptor lists the module's assembly identity, its assembly references
// and its type definitions with every member that can mention another type.
// Descriptors are typically generated from a build (one per .dll or .exe) and
// stored under the module's own file name, so the worklist in
// [github.com/matzehuels/asmdeps/pkg/deps] can locate them exactly as it would
// locate the binaries.
//
// # Formats
//
// The format is detected from content: a document whose first non-space byte
// is '{' is decoded as JSON, anything else as TOML. Unknown keys are rejected
// in both formats. Files starting with the PE "MZ" signature are rejected with
// [ErrBinaryImage].
//
//	{
//	  "assembly": {"name": "App", "version": "1.0.0.0"},
//	  "references": [{"name": "mscorlib", "version": "4.0.0.0", "publicKeyToken": "b77a5c561934e089"}],
//	  "types": [{
//	    "namespace": "App",
//	    "name": "Widget",
//	    "baseType": "[mscorlib]System.Object",
//	    "fields": [{"name": "Inner", "type": "[Gadget]App.Gadget"}]
//	  }]
//	}
//
// # Type Signatures
//
// Member types are written in an ILAsm-like signature syntax:
//
//   - [mscorlib]System.String: type in a referenced assembly
//   - App.Widget: type in the module itself (no scope)
//   - App.Outer/Inner: nested type
//   - [mscorlib]System.Collections.Generic.List`1<App.Item>: generic instance
//   - App.Item[] and App.Item[,]: arrays
//   - !T and !!T: type and method generic parameters
//   - 'name<>with<>symbols': quoted identifier
//
// A scope naming one of the module's references resolves to that reference, a
// scope naming the module's own assembly resolves to the module, and any other
// scope becomes [metadata.ScopeOther].
//
// # Symbols
//
// [Provider.ReadSymbols] looks for the ".pdb" companion next to the module.
// When it is missing the returned error satisfies errors.Is(err, fs.ErrNotExist).
package descriptor

// Package metadata defines the object model that asmdeps reads from compiled
// .NET modules.
//
// # Overview
//
// The dependency analysis in [github.com/matzehuels/asmdeps/pkg/deps] never
// parses binary layouts itself. It walks the interfaces declared here:
//
//   - [Module]: one loaded module with its assembly identity, its declared
//     assembly references and its top-level type definitions
//   - [TypeDefinition]: a type defined by the module, with every member surface
//     that can mention another type
//   - [TypeRef]: a reference to a type by qualified name plus [Scope]
//
// Any reader that satisfies [Provider] can be plugged into the analysis. The
// repository ships one implementation, the descriptor provider in
// [github.com/matzehuels/asmdeps/pkg/metadata/descriptor].
//
// # Scopes
//
// Every [TypeRef] carries a [Scope] describing where the referenced type
// lives:
//
//   - [ScopeModule]: the module being read
//   - [ScopeAssemblyReference]: a named external assembly
//   - [ScopeOther]: anything else (module references, unresolved scopes)
//
// The scope name is what framework filtering matches against, so it follows
// the conventions of the underlying metadata: the module file name for
// [ScopeModule] (for example "App.dll") and the assembly short name for
// [ScopeAssemblyReference] (for example "mscorlib").
//
// # Assembly Identities
//
// [AssemblyName] is the unit of worklist tracking. Identities compare by their
// canonical full name:
//
//	App, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null
//
// Use [ParseAssemblyName] to turn a full name back into its parts.
package metadata

// Package deps extracts type-level dependencies from .NET modules and
// follows assembly references transitively.
//
// # Overview
//
// Analysis starts from one primary module and produces a report shaped like
// this:
//
//	<Dependencies name="App" version="1.0.0.0">
//	  <Assembly name="App" version="1.0.0.0">
//	    <References>
//	      <Reference name="Gadget" fullName="Gadget, Version=1.0.0.0, ..." version="1.0.0.0"/>
//	    </References>
//	    <TypeReferences>
//	      <From fullname="App.Widget">
//	        <To fullname="App.Gadget" assemblyname="Gadget" assemblyversion="1.0.0.0"/>
//	      </From>
//	    </TypeReferences>
//	  </Assembly>
//	  <Assembly name="Gadget" version="1.0.0.0">
//	    <References/>
//	  </Assembly>
//	</Dependencies>
//
// Only the primary module gets a TypeReferences section. Every other
// assembly contributes its declared references, which keeps the worklist
// going.
//
// # Architecture
//
// The package is layered, leaves first:
//
//  1. [Filter]: decides per candidate reference whether it is skipped,
//     reported, or unwrapped into its element type or generic arguments
//  2. [Extractor]: walks every member surface of a type and deduplicates
//     the filtered references into an ordered [EdgeSet]
//  3. [Analyzer]: emits one Assembly section and queues its references
//  4. [Builder]: drains the worklist held in [State], locating referenced
//     assemblies next to the primary module
//
// # Worklist
//
// [State] keeps two disjoint collections: parsed and pending. A reference is
// queued the first time it is seen. The builder takes the oldest pending
// name, looks for "<dir>/<name>.dll" and then "<dir>/<name>.exe", and
//
//   - analyzes the file when its identity matches the reference exactly
//   - marks the reference parsed without analysis when the file is missing,
//     cannot be loaded, or declares a different identity
//
// Nothing is ever retried, so the run terminates even when assemblies
// reference each other.
//
// # Framework Filtering
//
// References whose scope is a framework assembly are dropped: scope names
// equal to "mscorlib" or starting with "System" or "Microsoft". Both lists
// are configurable through [Options]:
//
//	opts := deps.Options{
//	    FrameworkPrefixes: []string{"System", "Microsoft", "Newtonsoft"},
//	}
//
// # Observability
//
// The builder reports assembly start, completion and skips to the hooks
// registered in [observability], and records an assembly-level reference
// graph in [Result.Graph].
//
// [observability]: github.com/matzehuels/asmdeps/pkg/observability
package deps

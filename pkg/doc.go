// Package pkg provides the core libraries for asmdeps, a dependency reporter
// for .NET assemblies.
//
// # Overview
//
// asmdeps reads a primary assembly, records which types each of its types
// depends on, then follows the assembly references it finds next to the
// primary file and lists their references too. The pkg directory is
// organized into four areas:
//
//  1. [metadata] - Assembly metadata model and the descriptor provider
//  2. [deps] - Reference filter, type extractor, analyzer and worklist builder
//  3. [report] - Streaming XML report emitter
//  4. [dag], [io], [render/nodelink] - Assembly reference graph and its exports
//
// # Architecture
//
//	Assembly file (descriptor)
//	         ↓
//	    [metadata/descriptor] package (load module)
//	         ↓
//	    [deps] package (filter, extract, follow references)
//	         ↓
//	    [report] package (XML report)   [dag] package (reference graph)
//	                                         ↓
//	                                    DOT / SVG / JSON
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/matzehuels/asmdeps/pkg/deps"
//	    "github.com/matzehuels/asmdeps/pkg/metadata/descriptor"
//	    "github.com/matzehuels/asmdeps/pkg/report"
//	)
//
//	p := descriptor.NewProvider()
//	m, _ := p.Load("bin/App.dll")
//
//	w := report.NewXMLWriter(os.Stdout)
//	res, _ := deps.NewBuilder(p, w, deps.Options{}).Build(context.Background(), m, "bin/App.dll")
//	_ = w.Close()
//
//	fmt.Println(len(res.Analyzed), "assemblies analyzed")
//
// # Supporting Packages
//
//   - [errors]: Coded errors mapped to process exit statuses
//   - [observability]: Hooks for analysis and render events
//   - [buildinfo]: Version information injected at build time
//
// [metadata]: github.com/matzehuels/asmdeps/pkg/metadata
// [deps]: github.com/matzehuels/asmdeps/pkg/deps
// [report]: github.com/matzehuels/asmdeps/pkg/report
// [dag]: github.com/matzehuels/asmdeps/pkg/dag
// [io]: github.com/matzehuels/asmdeps/pkg/io
// [render/nodelink]: github.com/matzehuels/asmdeps/pkg/render/nodelink
// [metadata/descriptor]: github.com/matzehuels/asmdeps/pkg/metadata/descriptor
// [errors]: github.com/matzehuels/asmdeps/pkg/errors
// [observability]: github.com/matzehuels/asmdeps/pkg/observability
// [buildinfo]: github.com/matzehuels/asmdeps/pkg/buildinfo
package pkg

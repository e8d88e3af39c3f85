// Package report defines the element sink that dependency analysis writes to.
//
// # Overview
//
// Analysis output is a tree of named elements with string attributes. The
// producer never builds the tree itself; it streams Start and End calls into
// an [Emitter]:
//
//	em.Start("Dependencies", report.A("name", "App"), report.A("version", "1.0.0.0"))
//	em.Start("Assembly", report.A("name", "App"), report.A("version", "1.0.0.0"))
//	em.End()
//	em.End()
//	em.Close()
//
// Two emitters are provided:
//
//   - [XMLWriter]: streams the elements as indented XML with a declaration
//   - [Tree]: keeps the elements in memory for inspection and tests
//
// Attribute order is preserved by both emitters.
package report

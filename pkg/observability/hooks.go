// Package observability provides hooks for metrics and progress reporting.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about assembly analysis and graph rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the analysis packages
// stay free of metrics frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAnalysisHooks(observability.MultiAnalysisHooks{summary, metrics})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Analysis().OnAssemblyStart(ctx, name, primary)
//	// ... analyze ...
//	observability.Analysis().OnAssemblyComplete(ctx, name, types, edges, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Analysis Hooks
// =============================================================================

// AnalysisHooks receives events from the assembly worklist.
type AnalysisHooks interface {
	// OnAssemblyStart is called before a module is analyzed.
	OnAssemblyStart(ctx context.Context, name string, primary bool)

	// OnAssemblyComplete is called after a module was analyzed. types is the
	// number of type sections emitted and edges the number of type
	// dependencies; both are zero for secondary assemblies.
	OnAssemblyComplete(ctx context.Context, name string, types, edges int, duration time.Duration)

	// OnAssemblySkipped is called when a referenced assembly is marked as
	// done without being analyzed. reason is "missing", "mismatch" or
	// "unreadable".
	OnAssemblySkipped(ctx context.Context, fullName, reason string)

	// OnAnalysisComplete is called once the worklist is drained or aborted.
	OnAnalysisComplete(ctx context.Context, primary string, assemblies int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from graph export.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAssemblyStart(context.Context, string, bool)                       {}
func (NoopAnalysisHooks) OnAssemblyComplete(context.Context, string, int, int, time.Duration) {}
func (NoopAnalysisHooks) OnAssemblySkipped(context.Context, string, string)                   {}
func (NoopAnalysisHooks) OnAnalysisComplete(context.Context, string, int, time.Duration, error) {
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Fan-out
// =============================================================================

// MultiAnalysisHooks forwards every event to each hook in order.
type MultiAnalysisHooks []AnalysisHooks

func (m MultiAnalysisHooks) OnAssemblyStart(ctx context.Context, name string, primary bool) {
	for _, h := range m {
		h.OnAssemblyStart(ctx, name, primary)
	}
}

func (m MultiAnalysisHooks) OnAssemblyComplete(ctx context.Context, name string, types, edges int, d time.Duration) {
	for _, h := range m {
		h.OnAssemblyComplete(ctx, name, types, edges, d)
	}
}

func (m MultiAnalysisHooks) OnAssemblySkipped(ctx context.Context, fullName, reason string) {
	for _, h := range m {
		h.OnAssemblySkipped(ctx, fullName, reason)
	}
}

func (m MultiAnalysisHooks) OnAnalysisComplete(ctx context.Context, primary string, assemblies int, d time.Duration, err error) {
	for _, h := range m {
		h.OnAnalysisComplete(ctx, primary, assemblies, d, err)
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	analysisHooks AnalysisHooks = NoopAnalysisHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	hooksMu       sync.RWMutex
)

// SetAnalysisHooks registers custom analysis hooks.
// This should be called once at application startup before any analysis runs.
func SetAnalysisHooks(h AnalysisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		analysisHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Analysis returns the registered analysis hooks.
func Analysis() AnalysisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return analysisHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	renderHooks = NoopRenderHooks{}
}

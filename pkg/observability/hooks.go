// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about drag gestures, diagram store operations, and exports.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGestureHooks(&myGestureHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Gesture().OnArmed(ctx, sessionID, "edge", 1)
//	// ... pointer moves ...
//	observability.Gesture().OnCommitted(ctx, sessionID, steps, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives lifecycle events from pointer drag sessions.
type GestureHooks interface {
	// OnArmed records a qualifying pointer down that gathered consumers.
	OnArmed(ctx context.Context, session, role string, consumers int)

	// OnStarted records the drag threshold being crossed.
	OnStarted(ctx context.Context, session string)

	// OnCommitted records a gesture that ended with a pointer release.
	OnCommitted(ctx context.Context, session string, steps int, duration time.Duration)

	// OnCancelled records an aborted gesture.
	OnCancelled(ctx context.Context, session, reason string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from diagram store operations.
type StoreHooks interface {
	// OnStoreHit records a successful lookup.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a lookup for a missing diagram.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreWrite records a diagram write.
	OnStoreWrite(ctx context.Context, backend string, size int)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from diagram export.
type ExportHooks interface {
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnArmed(context.Context, string, string, int)            {}
func (NoopGestureHooks) OnStarted(context.Context, string)                       {}
func (NoopGestureHooks) OnCommitted(context.Context, string, int, time.Duration) {}
func (NoopGestureHooks) OnCancelled(context.Context, string, string)             {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)        {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)       {}
func (NoopStoreHooks) OnStoreWrite(context.Context, string, int) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, []string)                          {}
func (NoopExportHooks) OnExportComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gestureHooks GestureHooks = NoopGestureHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	exportHooks  ExportHooks  = NoopExportHooks{}
	hooksMu      sync.RWMutex
)

// SetGestureHooks registers custom gesture hooks.
// This should be called once at application startup before any session is created.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gestureHooks = NoopGestureHooks{}
	storeHooks = NoopStoreHooks{}
	exportHooks = NoopExportHooks{}
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tile generation, preset storage, and HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages stay
// free of backend imports.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSessionHooks(&mySessionHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Session().OnGenerateStart(ctx, columns, rows)
//	// ... create tiles ...
//	observability.Session().OnGenerateComplete(ctx, created, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from generation sessions.
type SessionHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, columns, rows int)
	OnGenerateComplete(ctx context.Context, created int, duration time.Duration, err error)

	// Regenerate events
	OnRegenerateComplete(ctx context.Context, updated, skipped int, duration time.Duration, err error)

	// OnClear records removal of previously generated tiles.
	OnClear(ctx context.Context, removed int)
}

// =============================================================================
// Preset Hooks
// =============================================================================

// PresetHooks receives events from preset stores.
type PresetHooks interface {
	// OnPresetLoad records a preset lookup and whether it was found.
	OnPresetLoad(ctx context.Context, backend, name string, found bool)

	// OnPresetSave records a preset write.
	OnPresetSave(ctx context.Context, backend, name string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnGenerateStart(context.Context, int, int)                            {}
func (NoopSessionHooks) OnGenerateComplete(context.Context, int, time.Duration, error)        {}
func (NoopSessionHooks) OnRegenerateComplete(context.Context, int, int, time.Duration, error) {}
func (NoopSessionHooks) OnClear(context.Context, int)                                         {}

// NoopPresetHooks is a no-op implementation of PresetHooks.
type NoopPresetHooks struct{}

func (NoopPresetHooks) OnPresetLoad(context.Context, string, string, bool) {}
func (NoopPresetHooks) OnPresetSave(context.Context, string, string, int)  {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sessionHooks SessionHooks = NoopSessionHooks{}
	presetHooks  PresetHooks  = NoopPresetHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetSessionHooks registers custom session hooks.
// This should be called once at application startup before any generation.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// SetPresetHooks registers custom preset hooks.
func SetPresetHooks(h PresetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		presetHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Preset returns the registered preset hooks.
func Preset() PresetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return presetHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sessionHooks = NoopSessionHooks{}
	presetHooks = NoopPresetHooks{}
	httpHooks = NoopHTTPHooks{}
}

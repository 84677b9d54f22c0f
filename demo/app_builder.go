package demo

import (
	"github.com/Carmen-Shannon/oxy-spiral/engine/config"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/loader"
)

// AppBuilderOption is a functional option for configuring an App.
type AppBuilderOption func(*App)

// WithDiagnostics routes every component's events to sink.
//
// Parameters:
//   - sink: the diagnostics sink
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithDiagnostics(sink diag.Sink) AppBuilderOption {
	return func(a *App) {
		if sink != nil {
			a.sink = sink
		}
	}
}

// WithLoader replaces the default glTF loader.
func WithLoader(l loader.Loader) AppBuilderOption {
	return func(a *App) {
		a.loader = l
	}
}

// WithWatcher applies configs reloaded by w on every Tick.
func WithWatcher(w *config.Watcher) AppBuilderOption {
	return func(a *App) {
		a.watcher = w
	}
}

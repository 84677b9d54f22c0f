package loader

import (
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel pre-populates the cache, e.g. with a procedurally built hierarchy.
//
// Parameters:
//   - key: the cache key for the model
//   - root: the hierarchy to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, root *scene.Node) LoaderBuilderOption {
	return func(l *loader) {
		l.templates[key] = root
	}
}

// WithWorkers sets the maximum number of concurrent async loads.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithDiagnostics routes load events to sink.
//
// Parameters:
//   - sink: the diagnostics sink
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option
func WithDiagnostics(sink diag.Sink) LoaderBuilderOption {
	return func(l *loader) {
		if sink != nil {
			l.sink = sink
		}
	}
}

package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spiral/engine/diag"
	"github.com/Carmen-Shannon/oxy-spiral/engine/scene"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	templates map[string]*scene.Node
	backend   loaderBackend
	sink      diag.Sink

	workers     int
	poolOnce    sync.Once
	pool        worker.DynamicWorkerPool
	taskID      atomic.Int64
	pending     atomic.Int64
	completions chan func()
}

// Loader imports model files into scene graphs and caches them by path.
//
// Every call hands out a fresh deep copy of the cached hierarchy, so callers
// may attach and transform the result freely. Mesh geometry is shared.
type Loader interface {
	// Load imports a model file, or copies it from the cache.
	// The backend is selected from the extension (.gltf/.glb).
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *scene.Node: a detached copy of the model hierarchy
	//   - error: error if loading fails
	Load(path string) (*scene.Node, error)

	// LoadReader imports a model from a stream and caches it by name.
	//
	// Parameters:
	//   - name: the cache key and root group name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - *scene.Node: a detached copy of the model hierarchy
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (*scene.Node, error)

	// LoadAsync loads path on a background worker. Exactly one of onLoad or
	// onError runs later, on the goroutine that calls Poll.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - onLoad: receives the loaded hierarchy, may be nil
	//   - onError: receives the failure, may be nil
	LoadAsync(path string, onLoad func(*scene.Node), onError func(error))

	// Poll runs the callbacks of finished async loads without blocking.
	//
	// Returns:
	//   - int: the number of callbacks run
	Poll() int

	// Pending returns the number of async loads whose callbacks have not run yet.
	Pending() int

	// Get returns a copy of a cached model, or nil if it is not cached.
	//
	// Parameters:
	//   - name: the cache key
	//
	// Returns:
	//   - *scene.Node: the copy or nil
	Get(name string) *scene.Node

	// Cached returns the sorted cache keys.
	Cached() []string
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		templates:   make(map[string]*scene.Node),
		sink:        diag.Nop(),
		workers:     2,
		completions: make(chan func(), 16),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*scene.Node, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	root, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	l.sink.Emit(slog.LevelInfo, "loader.loaded",
		slog.String("path", path),
		slog.Int("nodes", root.Count()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return l.store(path, root), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (*scene.Node, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	root, err := l.backend.LoadReader(name, r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, root), nil
}

func (l *loader) LoadAsync(path string, onLoad func(*scene.Node), onError func(error)) {
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 16, time.Second)
	})

	l.pending.Add(1)
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			root, err := l.Load(path)
			if err != nil {
				l.sink.Emit(slog.LevelError, "loader.error", slog.String("path", path), slog.Any("err", err))
				l.completions <- func() {
					if onError != nil {
						onError(err)
					}
				}
				return nil, err
			}
			l.completions <- func() {
				if onLoad != nil {
					onLoad(root)
				}
			}
			return root, nil
		},
	})
}

func (l *loader) Poll() int {
	n := 0
	for {
		select {
		case done := <-l.completions:
			l.pending.Add(-1)
			done()
			n++
		default:
			return n
		}
	}
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Get(name string) *scene.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if t, ok := l.templates[name]; ok {
		return t.Clone(true)
	}
	return nil
}

func (l *loader) Cached() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	keys := make([]string, 0, len(l.templates))
	for k := range l.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// store caches root unless another load won the race, and returns a copy of
// whichever template ends up cached.
func (l *loader) store(key string, root *scene.Node) *scene.Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.templates[key]; ok {
		root = existing
	} else {
		l.templates[key] = root
	}
	return root.Clone(true)
}

// resolveBackend selects a loader backend from the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %q", ext)
	}
}

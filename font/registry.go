package font

import (
	"errors"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/internal/cache"
)

// ErrRegistryClosed is returned by a Registry after Close.
var ErrRegistryClosed = errors.New("font: registry closed")

// faceKey identifies a memoized face.
type faceKey struct {
	source uint64
	size   float64
}

func hashFaceKey(k faceKey) uint64 {
	return cache.Combine(cache.Mix(k.source), cache.Float64Hasher(k.size))
}

// Registry loads font files once and memoizes faces per (source, size),
// including their metric corrections. It is safe for concurrent use:
// concurrent loads of one path share a single read.
type Registry struct {
	loads   singleflight.Group
	sources *cache.Cache[string, *Source]
	faces   *cache.Cache[faceKey, *Face]
	closed  atomic.Bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: cache.New[string, *Source](16, cache.StringHasher),
		faces:   cache.New[faceKey, *Face](64, hashFaceKey),
	}
}

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(NewRegistry())
}

// Default returns the process-wide registry used by families that were not
// given one.
func Default() *Registry { return defaultRegistry.Load() }

// SetDefault replaces the process-wide registry. A nil registry installs a
// fresh one.
func SetDefault(r *Registry) {
	if r == nil {
		r = NewRegistry()
	}
	defaultRegistry.Store(r)
}

func closedError() error {
	return &compose.RenderError{Resource: "font registry", Err: ErrRegistryClosed}
}

// Load reads and parses the font file at path, or returns the source loaded
// earlier for the same path.
func (r *Registry) Load(path string) (*Source, error) {
	if r.closed.Load() {
		return nil, closedError()
	}
	key := filepath.Clean(path)
	if src, ok := r.sources.Get(key); ok {
		return src, nil
	}

	v, err, shared := r.loads.Do(key, func() (any, error) {
		src, err := LoadSource(key)
		if err != nil {
			return nil, err
		}
		r.sources.Set(key, src)
		return src, nil
	})
	if err != nil {
		return nil, err
	}
	compose.Logger().Debug("font: loaded", "path", key, "shared", shared)
	return v.(*Source), nil
}

// Face returns the memoized face of src at size pixels.
func (r *Registry) Face(src *Source, size float64) (*Face, error) {
	if r.closed.Load() {
		return nil, closedError()
	}
	if src == nil {
		return nil, compose.Constructionf("font.Registry.Face", "nil source")
	}
	if size <= 0 {
		return nil, compose.Constructionf("font.Registry.Face", "non-positive size %v", size)
	}
	return r.faces.GetOrCreate(faceKey{source: src.id, size: size}, func() (*Face, error) {
		return newFace(src, size)
	})
}

// Stats reports face cache usage.
func (r *Registry) Stats() cache.Stats { return r.faces.Stats() }

// Close releases every cached face and source. Further calls fail with
// ErrRegistryClosed. Faces handed out earlier must not be used after Close.
func (r *Registry) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	r.faces.Range(func(_ faceKey, f *Face) {
		f.close()
	})
	r.faces.Clear()
	r.sources.Clear()
	return nil
}

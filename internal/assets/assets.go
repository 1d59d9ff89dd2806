// Package assets handles demo asset loading and caching.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/grove/internal/logger"
)

// Well known asset paths.
const (
	VertexShader   = "shaders/lookat.vert"
	FragmentShader = "shaders/lookat.frag"
	DefaultScene   = "scenes/default.yaml"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when no source holds the requested asset.
var ErrNotFound = errors.New("asset not found")

// Embedded returns the assets compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

type source struct {
	name string
	fsys fs.FS
}

// Manager loads assets from layered sources.
// Sources are searched in reverse order (last added = highest priority).
type Manager struct {
	sources []source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a manager over the embedded assets.
func NewManager() *Manager {
	m := &Manager{cache: NewCache(DefaultCacheBytes)}
	m.AddFS("embedded", Embedded())
	return m
}

// AddFS adds a source above the existing ones.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.sources = append(m.sources, source{name: name, fsys: fsys})
	m.mu.Unlock()
	m.cache.Clear()
}

// AddDir adds a directory on disk above the existing sources.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("asset dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset dir %s: not a directory", dir)
	}
	m.AddFS(dir, os.DirFS(dir))
	logger.Info("asset directory added", zap.String("dir", dir))
	return nil
}

// Load returns the contents of name from the highest priority source.
func (m *Manager) Load(name string) ([]byte, error) {
	name = path.Clean(name)
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	data, origin, err := m.read(name)
	if err != nil {
		return nil, err
	}
	m.cache.Set(name, data)
	logger.Debug("asset loaded",
		zap.String("name", name),
		zap.String("source", origin),
		zap.Int("bytes", len(data)))
	return data, nil
}

// LoadString is Load for text assets.
func (m *Manager) LoadString(name string) (string, error) {
	data, err := m.Load(name)
	return string(data), err
}

// Origin reports which source serves name.
func (m *Manager) Origin(name string) (string, error) {
	_, origin, err := m.read(path.Clean(name))
	return origin, err
}

func (m *Manager) read(name string) ([]byte, string, error) {
	if !fs.ValidPath(name) {
		return nil, "", fmt.Errorf("%s: %w", name, fs.ErrInvalid)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		src := m.sources[i]
		data, err := fs.ReadFile(src.fsys, name)
		if err == nil {
			return data, src.name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %s from %s: %w", name, src.name, err)
		}
	}
	return nil, "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// List returns every asset path under dir across all sources, sorted.
func (m *Manager) List(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, src := range m.sources {
		err := fs.WalkDir(src.fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				return err
			}
			if !d.IsDir() {
				seen[p] = true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops name from the cache so the next Load reads it again.
func (m *Manager) Invalidate(name string) {
	m.cache.Delete(path.Clean(name))
}

// Close drops every source and the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	m.sources = nil
	m.mu.Unlock()
	m.cache.Clear()
}

// CacheStats returns the counters of the asset cache.
func (m *Manager) CacheStats() CacheStats {
	return m.cache.Stats()
}

// Package loader imports and caches texture atlases: the sprite sheets,
// terrain tile sets, and font atlases the textured draw families sample from.
package loader

import (
	"fmt"
	"sync"

	"github.com/lumen2d/lumen/common"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	atlasCache map[string]*Atlas
}

// Loader defines the public-facing interface for loading and caching texture
// atlases. Atlases are cached by path or name, so repeated loads of the same
// sheet decode once.
type Loader interface {
	// LoadAtlas imports an atlas image file (PNG or JPEG) and caches the
	// result by path. If the atlas is already cached, the cached version is
	// returned and the grid arguments are ignored.
	//
	// Parameters:
	//   - path: the file path to the atlas image
	//   - columns: the number of tile columns in the sheet
	//   - rows: the number of tile rows in the sheet
	//
	// Returns:
	//   - *Atlas: the loaded and cached atlas
	//   - error: error if decoding fails or the grid is invalid
	LoadAtlas(path string, columns, rows int) (*Atlas, error)

	// LoadAtlasBytes imports an atlas from raw image bytes and caches it by
	// the given name. Useful for embedded assets.
	//
	// Parameters:
	//   - name: the cache key for the atlas
	//   - data: raw PNG or JPEG bytes
	//   - columns: the number of tile columns in the sheet
	//   - rows: the number of tile rows in the sheet
	//
	// Returns:
	//   - *Atlas: the loaded and cached atlas
	//   - error: error if decoding fails or the grid is invalid
	LoadAtlasBytes(name string, data []byte, columns, rows int) (*Atlas, error)

	// Atlas retrieves a cached atlas by its cache key.
	//
	// Parameters:
	//   - key: the path or name the atlas was loaded under
	//
	// Returns:
	//   - *Atlas: the cached atlas, or nil if not found
	Atlas(key string) *Atlas

	// Evict removes an atlas from the cache.
	//
	// Parameters:
	//   - key: the path or name the atlas was loaded under
	Evict(key string)
}

var _ Loader = &loader{}

// NewLoader creates a Loader with an empty atlas cache.
//
// Parameters:
//   - options: variadic LoaderBuilderOption functions
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		atlasCache: make(map[string]*Atlas),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) LoadAtlas(path string, columns, rows int) (*Atlas, error) {
	if cached := l.Atlas(path); cached != nil {
		return cached, nil
	}

	staging, err := common.DecodeTexture(nil, path)
	if err != nil {
		return nil, err
	}
	return l.cacheAtlas(path, staging, columns, rows)
}

func (l *loader) LoadAtlasBytes(name string, data []byte, columns, rows int) (*Atlas, error) {
	if cached := l.Atlas(name); cached != nil {
		return cached, nil
	}

	staging, err := common.DecodeTexture(data, "")
	if err != nil {
		return nil, err
	}
	return l.cacheAtlas(name, staging, columns, rows)
}

func (l *loader) cacheAtlas(key string, staging *common.TextureStagingData, columns, rows int) (*Atlas, error) {
	atlas, err := NewAtlas(*staging, columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build atlas %s: %w", key, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// A concurrent load of the same key may have won; keep the first entry so
	// callers holding it stay consistent.
	if existing, ok := l.atlasCache[key]; ok {
		return existing, nil
	}
	l.atlasCache[key] = atlas
	return atlas, nil
}

func (l *loader) Atlas(key string) *Atlas {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.atlasCache[key]
}

func (l *loader) Evict(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.atlasCache, key)
}

package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithAtlas is an option builder that pre-populates the atlas cache.
//
// Parameters:
//   - key: the cache key for the atlas
//   - atlas: the atlas to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the atlas option to a loader
func WithAtlas(key string, atlas *Atlas) LoaderBuilderOption {
	return func(l *loader) {
		l.atlasCache[key] = atlas
	}
}

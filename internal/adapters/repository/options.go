package repository

import "github.com/okian/mergington/internal/domain/model"

// Option applies a configuration option to the InMemoryRegistry.
type Option func(*InMemoryRegistry)

// WithCatalog seeds the registry with catalog instead of model.DefaultCatalog.
// An empty catalog is ignored.
func WithCatalog(catalog model.Catalog) Option {
	return func(r *InMemoryRegistry) {
		if len(catalog) > 0 {
			r.seed = catalog
		}
	}
}

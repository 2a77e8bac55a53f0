package driving

import "context"

// CatalogueImporter loads catalogue files into the local store.
type CatalogueImporter interface {
	// ImportFile reads the catalogue at path and stores its items.
	// With replace set, existing items are removed first.
	// It returns the number of items stored afterwards.
	ImportFile(ctx context.Context, path string, replace bool) (int, error)
}

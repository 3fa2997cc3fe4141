package repository

import (
	"sapa/internal/domain/entity"
	"sapa/internal/errors"
)

// ErrCatalogEntryNotFound is returned when no catalog entry matches a slug.
var ErrCatalogEntryNotFound = errors.New("catalog entry not found")

// CatalogRepository provides read access to the curated product showcase.
// The current implementation is static editorial content compiled into
// the binary.
type CatalogRepository interface {
	// All returns every catalog entry in curation order.
	All() []*entity.CatalogProduct

	// BySlug returns the entry with the given slug, or
	// ErrCatalogEntryNotFound.
	BySlug(slug string) (*entity.CatalogProduct, error)
}

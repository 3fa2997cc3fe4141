package usecase

import (
	"context"

	"sapa/internal/domain/entity"
)

// CatalogUsecase defines the interface for the curated showcase catalog.
type CatalogUsecase interface {
	// List returns the catalog in curation order.
	List(ctx context.Context) []*entity.CatalogProduct

	// BySlug returns one catalog entry.
	BySlug(ctx context.Context, slug string) (*entity.CatalogProduct, error)

	// Categories returns the distinct categories in first-seen order.
	Categories(ctx context.Context) []string

	// ShareQR renders the public share link of a catalog entry as a PNG
	// QR code.
	ShareQR(ctx context.Context, slug string) ([]byte, error)
}

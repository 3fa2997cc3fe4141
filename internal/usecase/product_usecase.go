package usecase

import (
	"context"

	"sapa/internal/domain/entity"
)

// ProductDraft carries the product submission form. The store records it
// as given; field-level validation happens at the delivery edge. An empty
// Status defaults to pending.
type ProductDraft struct {
	ProductName        string
	Category           string
	PriceRange         string
	Description        string
	UniqueSellingPoint string
	ProductionCapacity string
	Certifications     string
	FulfillmentNotes   string
	MediaLink          string
	ImageBase64        string
	ImageMimeType      string
	Status             entity.SubmissionStatus
}

// SubmitProductOutput returns the recorded submission.
type SubmitProductOutput struct {
	Product *entity.SubmittedProduct
	Message string
}

// ProductUsecase defines the interface for product submission operations.
type ProductUsecase interface {
	// Bootstrap loads persisted submissions into memory. Storage
	// failures degrade to an empty list; Bootstrap never returns an
	// error for them.
	Bootstrap(ctx context.Context) error

	// Submit records a draft on behalf of owner. The owner identity is
	// copied into the submission as a snapshot; later profile edits do
	// not rewrite it. The status defaults to pending unless the draft
	// carries one.
	Submit(ctx context.Context, owner *entity.BusinessProfile, draft *ProductDraft) (*SubmitProductOutput, error)

	// Submissions returns every submission, most recent first.
	Submissions(ctx context.Context) []*entity.SubmittedProduct

	// SubmissionsByOwner returns the submissions recorded for one
	// profile, most recent first.
	SubmissionsByOwner(ctx context.Context, ownerID string) []*entity.SubmittedProduct

	// CountByStatus tallies one owner's submissions per moderation state.
	CountByStatus(ctx context.Context, ownerID string) map[entity.SubmissionStatus]int

	// ClearAll drops every submission from memory and storage.
	ClearAll(ctx context.Context) error

	// Ready reports whether Bootstrap has completed.
	Ready() bool
}

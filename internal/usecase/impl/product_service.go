package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	deliverycontext "sapa/internal/delivery/context"
	"sapa/internal/domain/entity"
	domainerrors "sapa/internal/domain/errors"
	"sapa/internal/domain/repository"
	"sapa/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const productsStorageKey = "sapa_umkm_products"

// productService implements the ProductUsecase interface. Submissions are
// held in memory most recent first; the key-value store is a write-through
// snapshot rewritten on every mutation.
type productService struct {
	kvStore repository.KeyValueStore
	logger  *slog.Logger

	mu          sync.RWMutex
	submissions []*entity.SubmittedProduct
	ready       bool
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	KVStore repository.KeyValueStore
	Logger  *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		kvStore: params.KVStore,
		logger:  params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Bootstrap hydrates the submission list from storage. Unreadable or
// corrupt data degrades to an empty list; after Bootstrap returns, Ready
// reports true either way.
func (srv *productService) Bootstrap(ctx context.Context) error {
	submissions := srv.loadSubmissions(ctx)

	srv.mu.Lock()
	srv.submissions = submissions
	srv.ready = true
	srv.mu.Unlock()

	srv.log(ctx).Info("Submission store bootstrapped", slog.Int("submissions", len(submissions)))

	return nil
}

func (srv *productService) loadSubmissions(ctx context.Context) []*entity.SubmittedProduct {
	raw, err := srv.kvStore.Get(ctx, productsStorageKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		srv.log(ctx).Warn("Failed to read persisted submissions, starting empty", slog.Any("error", err))

		return nil
	}

	var submissions []*entity.SubmittedProduct
	if err := json.Unmarshal(raw, &submissions); err != nil {
		srv.log(ctx).Warn("Persisted submissions are corrupt, starting empty", slog.Any("error", err))

		return nil
	}

	return submissions
}

// Submit records a draft on behalf of owner and prepends it so the list
// stays most recent first. The draft is recorded as given; field
// requirements are checked at the edge.
func (srv *productService) Submit(ctx context.Context, owner *entity.BusinessProfile, draft *usecase.ProductDraft) (*usecase.SubmitProductOutput, error) {
	if owner == nil {
		return nil, domainerrors.ErrNoActiveSession
	}

	status := draft.Status
	if status == "" {
		status = entity.StatusPending
	}

	submission := &entity.SubmittedProduct{
		ID:                 uuid.NewString(),
		OwnerID:            owner.ID,
		OwnerName:          owner.OwnerName,
		BusinessName:       owner.BusinessName,
		ProductName:        draft.ProductName,
		Category:           draft.Category,
		PriceRange:         draft.PriceRange,
		Description:        draft.Description,
		UniqueSellingPoint: draft.UniqueSellingPoint,
		ProductionCapacity: draft.ProductionCapacity,
		Certifications:     draft.Certifications,
		FulfillmentNotes:   draft.FulfillmentNotes,
		MediaLink:          draft.MediaLink,
		ImageBase64:        draft.ImageBase64,
		ImageMimeType:      draft.ImageMimeType,
		SubmittedAt:        time.Now(),
		Status:             status,
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.submissions = append([]*entity.SubmittedProduct{submission}, srv.submissions...)

	if err := srv.persistSubmissionsLocked(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product submitted",
		slog.String("submissionID", submission.ID),
		slog.String("ownerID", owner.ID))

	return &usecase.SubmitProductOutput{
		Product: cloneSubmission(submission),
		Message: "Pengajuan produk berhasil disimpan.",
	}, nil
}

// Submissions returns every submission, most recent first.
func (srv *productService) Submissions(_ context.Context) []*entity.SubmittedProduct {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	out := make([]*entity.SubmittedProduct, len(srv.submissions))
	for i, submission := range srv.submissions {
		out[i] = cloneSubmission(submission)
	}

	return out
}

// SubmissionsByOwner returns one profile's submissions, most recent first.
func (srv *productService) SubmissionsByOwner(_ context.Context, ownerID string) []*entity.SubmittedProduct {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	var out []*entity.SubmittedProduct
	for _, submission := range srv.submissions {
		if submission.OwnerID == ownerID {
			out = append(out, cloneSubmission(submission))
		}
	}

	return out
}

// CountByStatus tallies one owner's submissions per moderation state.
// Every state appears in the result, zero or not.
func (srv *productService) CountByStatus(_ context.Context, ownerID string) map[entity.SubmissionStatus]int {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	counts := map[entity.SubmissionStatus]int{
		entity.StatusPending:  0,
		entity.StatusAccepted: 0,
		entity.StatusRejected: 0,
	}
	for _, submission := range srv.submissions {
		if submission.OwnerID == ownerID {
			counts[submission.Status]++
		}
	}

	return counts
}

// ClearAll drops every submission from memory and deletes the storage key.
func (srv *productService) ClearAll(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.submissions = nil

	if err := srv.kvStore.Delete(ctx, productsStorageKey); err != nil {
		srv.log(ctx).Error("Failed to delete persisted submissions", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to delete persisted submissions")
	}

	srv.log(ctx).Info("Submissions cleared")

	return nil
}

// Ready reports whether Bootstrap has completed.
func (srv *productService) Ready() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.ready
}

func (srv *productService) persistSubmissionsLocked(ctx context.Context) error {
	raw, err := json.Marshal(srv.submissions)
	if err != nil {
		srv.log(ctx).Error("Failed to encode submissions", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to encode submissions")
	}

	if err := srv.kvStore.Set(ctx, productsStorageKey, raw); err != nil {
		srv.log(ctx).Error("Failed to persist submissions", slog.Any("error", err))

		return domainerrors.NewPersistenceError(err, "failed to persist submissions")
	}

	return nil
}

func cloneSubmission(s *entity.SubmittedProduct) *entity.SubmittedProduct {
	clone := *s
	return &clone
}

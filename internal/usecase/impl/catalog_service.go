package impl

import (
	"context"
	"log/slog"
	"strings"

	"sapa/config"
	deliverycontext "sapa/internal/delivery/context"
	"sapa/internal/domain/entity"
	domainerrors "sapa/internal/domain/errors"
	"sapa/internal/domain/repository"
	"sapa/internal/domain/service"
	"sapa/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface over the curated
// catalog repository.
type catalogService struct {
	catalogRepo  repository.CatalogRepository
	qrService    service.QRCodeService
	shareBaseURL string
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo repository.CatalogRepository
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	shareBaseURL := ""
	if params.Config != nil && params.Config.QRCode != nil {
		shareBaseURL = strings.TrimRight(params.Config.QRCode.BaseURL, "/")
	}

	return &catalogService{
		catalogRepo:  params.CatalogRepo,
		qrService:    params.QRService,
		shareBaseURL: shareBaseURL,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the catalog in curation order.
func (srv *catalogService) List(_ context.Context) []*entity.CatalogProduct {
	return srv.catalogRepo.All()
}

// BySlug returns one catalog entry.
func (srv *catalogService) BySlug(ctx context.Context, slug string) (*entity.CatalogProduct, error) {
	product, err := srv.catalogRepo.BySlug(slug)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogEntryNotFound) {
			return nil, domainerrors.ErrCatalogNotFound
		}

		srv.log(ctx).Error("Failed to load catalog entry", slog.String("slug", slug), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load catalog entry")
	}

	return product, nil
}

// Categories returns the distinct categories in first-seen order.
func (srv *catalogService) Categories(_ context.Context) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, product := range srv.catalogRepo.All() {
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}

	return categories
}

// ShareQR renders the public share link of a catalog entry as a PNG QR code.
func (srv *catalogService) ShareQR(ctx context.Context, slug string) ([]byte, error) {
	product, err := srv.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	shareURL := srv.shareBaseURL + "/" + product.Slug

	png, err := srv.qrService.GenerateShareQR(shareURL)
	if err != nil {
		srv.log(ctx).Error("Failed to render share QR", slog.String("slug", slug), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render share QR")
	}

	return png, nil
}

package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// ProductSyncService synchronizes the catalog with the storefront
// platform. Products are keyed by (owner, remote id); after each pulled
// product, local variants whose remote id vanished from the fresh remote
// set are pruned.
type ProductSyncService struct {
	companies company.Repository
	products  catalog.Repository
	gateways  storefront.GatewayFactory
	logger    *zap.Logger
}

// NewProductSyncService creates a product sync service.
func NewProductSyncService(
	companies company.Repository,
	products catalog.Repository,
	gateways storefront.GatewayFactory,
	logger *zap.Logger,
) *ProductSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductSyncService{
		companies: companies,
		products:  products,
		gateways:  gateways,
		logger:    logger,
	}
}

// Pull pages through the remote product collection and upserts each
// record for the owning user. Variants are replaced from the remote set.
func (s *ProductSyncService) Pull(ctx context.Context, companyID, ownerUserID uuid.UUID) (*storefront.SyncResult, error) {
	_, gw, err := openGateway(ctx, s.companies, s.gateways, companyID)
	if err != nil {
		return nil, err
	}

	result := &storefront.SyncResult{}
	it := gw.Products(ctx)
	for it.Next(ctx) {
		rec := it.Record()
		s.upsertOne(ctx, ownerUserID, &rec, result)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	result.Finalize()

	s.logger.Info("product pull sync finished",
		zap.String("company_id", companyID.String()),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

// upsertOne maps and stores one remote product with its variants.
func (s *ProductSyncService) upsertOne(ctx context.Context, ownerUserID uuid.UUID, rec *storefront.RemoteProduct, result *storefront.SyncResult) {
	remoteID := StripGlobalID(rec.ID)
	fields, err := MapRemoteProduct(rec)
	if err != nil {
		s.recordFailure(result, remoteID, err)
		return
	}

	existing, err := s.products.FindByRemoteID(ctx, ownerUserID, fields.RemoteID)
	switch {
	case err == nil:
		s.applyRemoteProduct(existing, &fields)
		if err := s.products.Save(ctx, existing); err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		result.Updated++
	case errors.Is(err, shared.ErrNotFound):
		created, err := catalog.NewProduct(ownerUserID, fields.Title)
		if err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		created.RemoteID = fields.RemoteID
		s.applyRemoteProduct(created, &fields)
		if err := s.products.Save(ctx, created); err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		result.Created++
	default:
		s.recordFailure(result, remoteID, err)
	}
}

// applyRemoteProduct overwrites remote-owned product fields and reconciles
// the variant set: remote variants land keyed by remote id, and local
// variants whose remote id is absent from the fresh set are pruned.
func (s *ProductSyncService) applyRemoteProduct(p *catalog.Product, f *ProductFields) {
	p.Title = f.Title
	p.Description = f.Description
	p.Vendor = f.Vendor
	p.ProductType = f.ProductType
	p.Status = f.Status
	p.Tags = f.Tags

	remoteIDs := make(map[string]struct{}, len(f.Variants))
	for i := range f.Variants {
		remoteIDs[f.Variants[i].RemoteID] = struct{}{}
	}
	removed := p.PruneVariantsByRemoteIDs(remoteIDs)
	if len(removed) > 0 {
		s.logger.Info("pruned variants absent from remote set",
			zap.String("product_id", p.ID.String()),
			zap.Int("count", len(removed)))
	}

	// Refresh or append each remote variant by remote id.
	for _, rv := range f.Variants {
		updated := false
		for i := range p.Variants {
			if p.Variants[i].RemoteID == rv.RemoteID {
				p.Variants[i].Title = rv.Title
				p.Variants[i].SKU = rv.SKU
				p.Variants[i].Price = rv.Price
				p.Variants[i].InventoryQuantity = rv.InventoryQuantity
				updated = true
				break
			}
		}
		if !updated {
			nv := rv
			nv.BaseEntity = shared.NewBaseEntity()
			nv.ProductID = p.ID
			p.Variants = append(p.Variants, nv)
		}
	}
}

// recordFailure counts one failed record and keeps its reason.
func (s *ProductSyncService) recordFailure(result *storefront.SyncResult, remoteID string, err error) {
	result.Failed++
	result.Errors = append(result.Errors, storefront.SyncError{
		RemoteID: remoteID,
		Message:  err.Error(),
	})
	s.logger.Warn("product record failed to sync",
		zap.String("remote_id", remoteID),
		zap.Error(err))
}

// Push sends one local product to the platform. Products without a remote
// id are created and the assigned product and variant ids (matched back to
// local rows by SKU) are persisted; products with one are updated in
// place.
func (s *ProductSyncService) Push(ctx context.Context, companyID, ownerUserID, productID uuid.UUID) (*catalog.Product, error) {
	_, gw, err := openGateway(ctx, s.companies, s.gateways, companyID)
	if err != nil {
		return nil, err
	}
	prod, err := s.products.FindByIDForOwner(ctx, ownerUserID, productID)
	if err != nil {
		return nil, err
	}

	if prod.IsRemote() {
		input, err := ProductToInput(prod, true)
		if err != nil {
			return nil, err
		}
		if _, err := gw.UpdateProduct(ctx, input); err != nil {
			return nil, err
		}
	} else {
		input, err := ProductToInput(prod, false)
		if err != nil {
			return nil, err
		}
		remote, err := gw.CreateProduct(ctx, input)
		if err != nil {
			return nil, err
		}
		prod.MarkRemote(StripGlobalID(remote.ID))
		matchVariantIDs(prod, remote)
	}

	if err := s.products.Save(ctx, prod); err != nil {
		return nil, fmt.Errorf("persisting pushed product: %w", err)
	}
	return prod, nil
}

// matchVariantIDs persists remote-assigned variant ids back onto local
// rows, matched by SKU.
func matchVariantIDs(p *catalog.Product, remote *storefront.RemoteProduct) {
	for _, rv := range remote.Variants {
		if rv.SKU == "" {
			continue
		}
		if local := p.VariantBySKU(rv.SKU); local != nil && local.RemoteID == "" {
			local.RemoteID = StripGlobalID(rv.ID)
		}
	}
}

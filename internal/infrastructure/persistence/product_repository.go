package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.Repository using GORM.
// Variant rows are replaced on every save so the stored set always
// mirrors the aggregate.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its variants by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Variants").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a product by ID owned by the given user
func (r *GormProductRepository) FindByIDForOwner(ctx context.Context, ownerUserID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Variants").
		Where("owner_user_id = ? AND id = ?", ownerUserID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRemoteID finds a product by its storefront id for an owner
func (r *GormProductRepository) FindByRemoteID(ctx context.Context, ownerUserID uuid.UUID, remoteID string) (*catalog.Product, error) {
	if remoteID == "" {
		return nil, shared.NewDomainError("INVALID_REMOTE_ID", "Remote product id cannot be empty")
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Variants").
		Where("owner_user_id = ? AND remote_product_id = ?", ownerUserID, remoteID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all products owned by the given user
func (r *GormProductRepository) FindAllForOwner(ctx context.Context, ownerUserID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&models.ProductModel{}).Preload("Variants").
			Where("owner_user_id = ?", ownerUserID),
		filter, productSearchColumns)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// Save creates or updates a product, replacing its variant rows
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductVariantModel{}, "product_id = ?", p.ID).Error; err != nil {
			return err
		}
		return tx.Save(model).Error
	})
}

// DeleteForOwner deletes a product and its variants
func (r *GormProductRepository) DeleteForOwner(ctx context.Context, ownerUserID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductVariantModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "owner_user_id = ? AND id = ?", ownerUserID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var productSearchColumns = []string{"title", "vendor", "product_type"}

var _ catalog.Repository = (*GormProductRepository)(nil)

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/catalog"
	"github.com/backoffice/backend/internal/domain/shared"
)

func TestGormProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("save and find with variants", func(t *testing.T) {
		p, err := catalog.NewProduct(ownerID, "Tea Kettle")
		require.NoError(t, err)
		p.RemoteID = "7"
		p.Status = catalog.ProductStatusActive
		p.Vendor = "Acme"
		p.Variants = []catalog.ProductVariant{
			{
				BaseEntity: shared.NewBaseEntity(),
				ProductID:  p.ID,
				RemoteID:   "70",
				Title:      "1L",
				SKU:        "TK-1",
				Price:      decimal.RequireFromString("25.00"),
			},
		}
		require.NoError(t, repo.Save(ctx, p))

		found, err := repo.FindByIDForOwner(ctx, ownerID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tea Kettle", found.Title)
		assert.Equal(t, catalog.ProductStatusActive, found.Status)
		require.Len(t, found.Variants, 1)
		assert.Equal(t, "TK-1", found.Variants[0].SKU)
		assert.True(t, found.Variants[0].Price.Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("find by remote id scoped to owner", func(t *testing.T) {
		found, err := repo.FindByRemoteID(ctx, ownerID, "7")
		require.NoError(t, err)
		assert.Equal(t, "Tea Kettle", found.Title)

		_, err = repo.FindByRemoteID(ctx, uuid.New(), "7")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save replaces variant rows", func(t *testing.T) {
		found, err := repo.FindByRemoteID(ctx, ownerID, "7")
		require.NoError(t, err)

		found.Variants = []catalog.ProductVariant{
			{
				BaseEntity: shared.NewBaseEntity(),
				ProductID:  found.ID,
				Title:      "2L",
				SKU:        "TK-2",
				Price:      decimal.NewFromInt(35),
			},
		}
		require.NoError(t, repo.Save(ctx, found))

		again, err := repo.FindByRemoteID(ctx, ownerID, "7")
		require.NoError(t, err)
		require.Len(t, again.Variants, 1, "old variant rows must be gone")
		assert.Equal(t, "TK-2", again.Variants[0].SKU)
	})

	t.Run("list scoped to owner", func(t *testing.T) {
		other, err := catalog.NewProduct(uuid.New(), "Someone Else's Pan")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		all, err := repo.FindAllForOwner(ctx, ownerID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete removes product and variants", func(t *testing.T) {
		found, err := repo.FindByRemoteID(ctx, ownerID, "7")
		require.NoError(t, err)

		assert.ErrorIs(t, repo.DeleteForOwner(ctx, uuid.New(), found.ID), shared.ErrNotFound)
		require.NoError(t, repo.DeleteForOwner(ctx, ownerID, found.ID))
		_, err = repo.FindByIDForOwner(ctx, ownerID, found.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCompanyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCompanyRepository(db)
	ctx := context.Background()

	t.Run("save and find", func(t *testing.T) {
		comp := newTestCompany(t)
		require.NoError(t, repo.Save(ctx, comp))

		found, err := repo.FindByID(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, comp.Name, found.Name)

		byOwner, err := repo.FindByOwner(ctx, comp.OwnerUserID)
		require.NoError(t, err)
		assert.Equal(t, comp.ID, byOwner.ID)
	})

	t.Run("credentials round trip", func(t *testing.T) {
		comp := newTestCompany(t)
		require.NoError(t, comp.ConnectStorefront("example.myshopify.com", "shpat_test"))
		require.NoError(t, comp.ConnectShipping("ops@example.com", "api-token"))
		require.NoError(t, repo.Save(ctx, comp))

		found, err := repo.FindByID(ctx, comp.ID)
		require.NoError(t, err)
		assert.True(t, found.StorefrontConnected())
		assert.True(t, found.ShippingConnected())
		assert.Equal(t, "api-token", found.ShippingToken)
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindByOwner(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

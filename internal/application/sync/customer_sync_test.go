package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

func connectedCompany(t *testing.T) *company.Company {
	t.Helper()
	comp, err := company.NewCompany("Acme Traders", uuid.New())
	require.NoError(t, err)
	require.NoError(t, comp.ConnectStorefront("example.myshopify.com", "shpat_test"))
	return comp
}

func remoteCustomerFixture(id, email string) storefront.RemoteCustomer {
	return storefront.RemoteCustomer{
		ID:        "gid://shopify/Customer/" + id,
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     email,
	}
}

func TestCustomerSyncPull(t *testing.T) {
	ctx := context.Background()

	t.Run("creates then updates on rerun", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		gw := &stubGateway{customers: []storefront.RemoteCustomer{
			remoteCustomerFixture("1", "a@example.com"),
			remoteCustomerFixture("2", "b@example.com"),
		}}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		result, err := svc.Pull(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, storefront.SyncStatusSuccess, result.Status)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 0, result.Updated)

		// Second run matches on remote id and updates in place.
		result, err = svc.Pull(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 2, result.Updated)

		n, err := repo.CountForTenant(ctx, comp.ID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("pull keeps locally owned fields", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		existing, err := customer.NewCustomer(comp.ID, "Old", "Name", "a@example.com", "")
		require.NoError(t, err)
		existing.RemoteID = "1"
		existing.CustomerCode = "CUST-001"
		require.NoError(t, repo.Save(ctx, existing))

		gw := &stubGateway{customers: []storefront.RemoteCustomer{
			remoteCustomerFixture("1", "a@example.com"),
		}}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		_, err = svc.Pull(ctx, comp.ID)
		require.NoError(t, err)

		stored, err := repo.FindByRemoteID(ctx, comp.ID, "1")
		require.NoError(t, err)
		assert.Equal(t, "CUST-001", stored.CustomerCode)
		assert.Equal(t, "Asha", stored.FirstName, "remote name overwrites")
	})

	t.Run("bad record counted, run continues", func(t *testing.T) {
		comp := connectedCompany(t)
		bad := remoteCustomerFixture("1", "a@example.com")
		bad.Addresses = []storefront.RemoteAddress{{City: "Pune"}} // incomplete
		gw := &stubGateway{customers: []storefront.RemoteCustomer{
			bad,
			remoteCustomerFixture("2", "b@example.com"),
		}}
		repo := newMemCustomerRepo()
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		result, err := svc.Pull(ctx, comp.ID)
		require.NoError(t, err)
		assert.Equal(t, storefront.SyncStatusPartial, result.Status)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "1", result.Errors[0].RemoteID)
	})

	t.Run("transport failure aborts", func(t *testing.T) {
		comp := connectedCompany(t)
		gw := &stubGateway{iterErr: storefront.ErrRequestFailed}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), newMemCustomerRepo(), &stubGatewayFactory{gateway: gw}, nil)

		_, err := svc.Pull(ctx, comp.ID)
		assert.ErrorIs(t, err, storefront.ErrRequestFailed)
	})

	t.Run("unconnected company rejected", func(t *testing.T) {
		comp, err := company.NewCompany("No Integration", uuid.New())
		require.NoError(t, err)
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), newMemCustomerRepo(), &stubGatewayFactory{gateway: &stubGateway{}}, nil)

		_, err = svc.Pull(ctx, comp.ID)
		assert.ErrorIs(t, err, storefront.ErrMissingCredentials)
	})

	t.Run("unknown company rejected", func(t *testing.T) {
		svc := NewCustomerSyncService(newMemCompanyRepo(), newMemCustomerRepo(), &stubGatewayFactory{gateway: &stubGateway{}}, nil)
		_, err := svc.Pull(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerSyncPush(t *testing.T) {
	ctx := context.Background()

	t.Run("local record created remotely and marked", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{nextRemoteID: "gid://shopify/Customer/77"}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		pushed, err := svc.Push(ctx, comp.ID, local.ID)
		require.NoError(t, err)
		assert.Equal(t, "77", pushed.RemoteID)
		require.Len(t, gw.created, 1)
		assert.Empty(t, gw.created[0].ID)

		stored, err := repo.FindByIDForTenant(ctx, comp.ID, local.ID)
		require.NoError(t, err)
		assert.Equal(t, "77", stored.RemoteID)
	})

	t.Run("remote record updated in place", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		local.RemoteID = "42"
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		_, err = svc.Push(ctx, comp.ID, local.ID)
		require.NoError(t, err)
		require.Len(t, gw.updated, 1)
		assert.Equal(t, "gid://shopify/Customer/42", gw.updated[0].ID)
		assert.Empty(t, gw.created)
	})

	t.Run("corrupt remote id rejected before any call", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		local.RemoteID = "garbage"
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		_, err = svc.Push(ctx, comp.ID, local.ID)
		assert.ErrorIs(t, err, storefront.ErrInvalidRemoteID)
		assert.Empty(t, gw.updated)
	})

	t.Run("tenant mismatch not found", func(t *testing.T) {
		comp := connectedCompany(t)
		other := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(other.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, local))

		svc := NewCustomerSyncService(newMemCompanyRepo(comp, other), repo, &stubGatewayFactory{gateway: &stubGateway{}}, nil)
		_, err = svc.Push(ctx, comp.ID, local.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerSyncDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("remote customer removed remotely then locally", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		local.RemoteID = "42"
		local.CanDelete = true
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		require.NoError(t, svc.Delete(ctx, comp.ID, local.ID))
		assert.Equal(t, []string{"gid://shopify/Customer/42"}, gw.deleted)
		_, err = repo.FindByIDForTenant(ctx, comp.ID, local.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("local-only customer skips the gateway", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		local.CanDelete = true
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		require.NoError(t, svc.Delete(ctx, comp.ID, local.ID))
		assert.Empty(t, gw.deleted)
	})

	t.Run("deletion gate enforced", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, local))

		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: &stubGateway{}}, nil)
		err = svc.Delete(ctx, comp.ID, local.ID)
		assert.ErrorIs(t, err, shared.ErrDeletionNotAllowed)
	})

	t.Run("remote failure keeps the local record", func(t *testing.T) {
		comp := connectedCompany(t)
		repo := newMemCustomerRepo()
		local, err := customer.NewCustomer(comp.ID, "Asha", "Rao", "a@example.com", "")
		require.NoError(t, err)
		local.RemoteID = "42"
		local.CanDelete = true
		require.NoError(t, repo.Save(ctx, local))

		gw := &stubGateway{deleteErr: errors.New("remote rejected")}
		svc := NewCustomerSyncService(newMemCompanyRepo(comp), repo, &stubGatewayFactory{gateway: gw}, nil)

		require.Error(t, svc.Delete(ctx, comp.ID, local.ID))
		_, err = repo.FindByIDForTenant(ctx, comp.ID, local.ID)
		assert.NoError(t, err, "local record must survive a failed remote delete")
	})
}

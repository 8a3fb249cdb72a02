package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/company"
	"github.com/backoffice/backend/internal/domain/customer"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/storefront"
)

// CustomerSyncService synchronizes customers between local storage and the
// storefront platform. Pull walks the remote collection and upserts;
// Push sends one local record back. Each call opens a fresh gateway scoped
// to the company's credentials.
type CustomerSyncService struct {
	companies company.Repository
	customers customer.Repository
	gateways  storefront.GatewayFactory
	logger    *zap.Logger
}

// NewCustomerSyncService creates a customer sync service.
func NewCustomerSyncService(
	companies company.Repository,
	customers customer.Repository,
	gateways storefront.GatewayFactory,
	logger *zap.Logger,
) *CustomerSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerSyncService{
		companies: companies,
		customers: customers,
		gateways:  gateways,
		logger:    logger,
	}
}

// openGateway loads the company and opens a gateway for its credentials.
func openGateway(ctx context.Context, companies company.Repository, gateways storefront.GatewayFactory, companyID uuid.UUID) (*company.Company, storefront.Gateway, error) {
	comp, err := companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	gw, err := gateways.New(storefront.Credentials{
		Domain:      comp.CatalogDomain,
		AccessToken: comp.CatalogAccessToken,
	})
	if err != nil {
		return nil, nil, err
	}
	return comp, gw, nil
}

// Pull pages through the remote customer collection and upserts each
// record keyed by (company, remote id). Per-record failures are counted
// and collected; a transport failure aborts the run.
func (s *CustomerSyncService) Pull(ctx context.Context, companyID uuid.UUID) (*storefront.SyncResult, error) {
	_, gw, err := openGateway(ctx, s.companies, s.gateways, companyID)
	if err != nil {
		return nil, err
	}

	result := &storefront.SyncResult{}
	it := gw.Customers(ctx)
	for it.Next(ctx) {
		rec := it.Record()
		s.upsertOne(ctx, companyID, &rec, result)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	result.Finalize()

	s.logger.Info("customer pull sync finished",
		zap.String("company_id", companyID.String()),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

// upsertOne maps and stores one remote customer. Failures land in the
// result, never abort the page loop; pull-sync commits per record.
func (s *CustomerSyncService) upsertOne(ctx context.Context, companyID uuid.UUID, rec *storefront.RemoteCustomer, result *storefront.SyncResult) {
	remoteID := StripGlobalID(rec.ID)
	fields, err := MapRemoteCustomer(rec)
	if err != nil {
		s.recordFailure(result, remoteID, err)
		return
	}

	existing, err := s.customers.FindByRemoteID(ctx, companyID, fields.RemoteID)
	switch {
	case err == nil:
		MergeRemoteCustomer(existing, &fields)
		if err := s.customers.Save(ctx, existing); err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		result.Updated++
	case errors.Is(err, shared.ErrNotFound):
		created, err := NewCustomerFromFields(companyID, &fields)
		if err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		if err := s.customers.Save(ctx, created); err != nil {
			s.recordFailure(result, remoteID, err)
			return
		}
		result.Created++
	default:
		s.recordFailure(result, remoteID, err)
	}
}

// recordFailure counts one failed record and keeps its reason.
func (s *CustomerSyncService) recordFailure(result *storefront.SyncResult, remoteID string, err error) {
	result.Failed++
	result.Errors = append(result.Errors, storefront.SyncError{
		RemoteID: remoteID,
		Message:  err.Error(),
	})
	s.logger.Warn("customer record failed to sync",
		zap.String("remote_id", remoteID),
		zap.Error(err))
}

// Push sends one local customer to the platform. A record carrying a
// remote id updates the remote record; one without is created remotely
// and the assigned id is persisted back. Corrupt remote ids are rejected
// before any remote call.
func (s *CustomerSyncService) Push(ctx context.Context, companyID, customerID uuid.UUID) (*customer.Customer, error) {
	_, gw, err := openGateway(ctx, s.companies, s.gateways, companyID)
	if err != nil {
		return nil, err
	}
	cust, err := s.customers.FindByIDForTenant(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}

	if cust.IsRemote() {
		input, err := CustomerToInput(cust, true)
		if err != nil {
			return nil, err
		}
		if _, err := gw.UpdateCustomer(ctx, input); err != nil {
			return nil, err
		}
	} else {
		input, err := CustomerToInput(cust, false)
		if err != nil {
			return nil, err
		}
		remote, err := gw.CreateCustomer(ctx, input)
		if err != nil {
			return nil, err
		}
		cust.MarkRemote(StripGlobalID(remote.ID))
	}

	cust.RefreshDerived()
	if err := s.customers.Save(ctx, cust); err != nil {
		return nil, fmt.Errorf("persisting pushed customer: %w", err)
	}
	return cust, nil
}

// Delete removes a customer locally and, when it mirrors a platform
// record, remotely as well. Deletion is gated by the CanDelete flag.
func (s *CustomerSyncService) Delete(ctx context.Context, companyID, customerID uuid.UUID) error {
	cust, err := s.customers.FindByIDForTenant(ctx, companyID, customerID)
	if err != nil {
		return err
	}
	if err := cust.EnsureDeletable(); err != nil {
		return err
	}

	if cust.IsRemote() {
		_, gw, err := openGateway(ctx, s.companies, s.gateways, companyID)
		if err != nil {
			return err
		}
		if err := gw.DeleteCustomer(ctx, WrapGlobalID("Customer", cust.RemoteID)); err != nil {
			return err
		}
	}
	return s.customers.DeleteForTenant(ctx, companyID, customerID)
}

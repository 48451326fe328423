package partner

import (
	"context"

	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Code, partner.CustomerDetails{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		TaxID:    req.TaxID,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}

	if customer.Code != "" {
		exists, err := s.customerRepo.ExistsByCode(ctx, customer.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflict("customer code %s already exists", customer.Code)
		}
	}

	if err := s.checkTaxID(ctx, customer.TaxID, ""); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Exists reports whether a customer with the code exists
func (s *CustomerService) Exists(ctx context.Context, code string) (bool, error) {
	return s.customerRepo.ExistsByCode(ctx, code)
}

// List retrieves a page of customers
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CustomerResponse], error) {
	filter = filter.Normalize()
	customers, total, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	return shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize), nil
}

// Search matches keyword against name, address and tax id
func (s *CustomerService) Search(ctx context.Context, keyword string, filter shared.Filter) (shared.Paginated[CustomerResponse], error) {
	filter = filter.Normalize()
	customers, total, err := s.customerRepo.Search(ctx, keyword, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	return shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize), nil
}

// Update replaces the mutable attributes of a customer
func (s *CustomerService) Update(ctx context.Context, code string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.details()); err != nil {
		return nil, err
	}

	if err := s.checkTaxID(ctx, customer.TaxID, customer.Code); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer that no document references
func (s *CustomerService) Delete(ctx context.Context, code string) error {
	if _, err := s.customerRepo.FindByCode(ctx, code); err != nil {
		return err
	}

	used, err := s.customerRepo.HasDocuments(ctx, code)
	if err != nil {
		return err
	}
	if used {
		return shared.NewConflict("customer %s is referenced by invoices or credit notes", code)
	}

	return s.customerRepo.Delete(ctx, code)
}

// TaxIDExists reports whether another customer already uses taxID
func (s *CustomerService) TaxIDExists(ctx context.Context, taxID, excludeCode string) (bool, error) {
	return s.customerRepo.ExistsByTaxID(ctx, taxID, excludeCode)
}

// NextCode previews the next generated customer code
func (s *CustomerService) NextCode(ctx context.Context) (string, error) {
	return s.customerRepo.NextCode(ctx)
}

func (s *CustomerService) checkTaxID(ctx context.Context, taxID, excludeCode string) error {
	if taxID == "" {
		return nil
	}
	exists, err := s.customerRepo.ExistsByTaxID(ctx, taxID, excludeCode)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflict("tax id %s is already registered", taxID)
	}
	return nil
}

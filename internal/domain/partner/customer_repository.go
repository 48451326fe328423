package partner

import (
	"context"

	"github.com/erp/accounting/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByCode finds a customer by its code
	FindByCode(ctx context.Context, code string) (*Customer, error)

	// FindAll lists customers page by page
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)

	// Search matches keyword against name, address and tax id
	Search(ctx context.Context, keyword string, filter shared.Filter) ([]Customer, int64, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByTaxID checks tax id uniqueness, ignoring the customer identified by excludeCode
	ExistsByTaxID(ctx context.Context, taxID, excludeCode string) (bool, error)

	// Create inserts the customer, assigning the next generated code when Code is empty
	Create(ctx context.Context, customer *Customer) error

	Update(ctx context.Context, customer *Customer) error

	Delete(ctx context.Context, code string) error

	// HasDocuments reports whether any invoice or credit note references the customer
	HasDocuments(ctx context.Context, code string) (bool, error)

	// NextCode previews the code the next generated customer would receive
	NextCode(ctx context.Context) (string, error)
}

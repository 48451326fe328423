package billing

import (
	"context"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/printing"
)

// checkAccounts fails with NotFound for the first code missing from the chart of accounts
func checkAccounts(ctx context.Context, accounts AccountFinder, codes []string) error {
	found, err := accounts.FindByCodes(ctx, codes)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(found))
	for _, a := range found {
		known[a.Code] = struct{}{}
	}
	for _, code := range codes {
		if _, ok := known[code]; !ok {
			return shared.NewMissingReference("account %s not found", code)
		}
	}
	return nil
}

// productNames maps codes to names for responses and printing
func productNames(products map[string]catalog.Product) map[string]string {
	names := make(map[string]string, len(products))
	for code, p := range products {
		names[code] = p.Name
	}
	return names
}

func lookupNames(ctx context.Context, products ProductCatalog, lines []billing.Line) (map[string]string, error) {
	found, err := products.FindByCodes(ctx, billing.ProductCodes(lines))
	if err != nil {
		return nil, err
	}
	return productNames(found), nil
}

func printLines(lines []billing.Line, names map[string]string) []printing.LineData {
	out := make([]printing.LineData, len(lines))
	for i, l := range lines {
		out[i] = printing.LineData{
			Index:       i + 1,
			ProductCode: l.ProductCode,
			ProductName: names[l.ProductCode],
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Total(),
		}
	}
	return out
}

func pageOf[T, R any](items []T, total int64, filter shared.Filter, convert func([]T) []R) shared.Paginated[R] {
	return shared.NewPaginated(convert(items), total, filter.Page, filter.PageSize)
}

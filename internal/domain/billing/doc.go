// Package billing provides the document model of the accounting back office.
//
// This package implements the billing bounded context, which is responsible for:
//   - Invoices (HD numbers) issued to customers, with discount and tax computed from their lines
//   - Credit notes (PH numbers) that reduce an invoice for products it actually contained
//   - The financial calculator shared by both document types
//   - Search criteria precedence and the shapes of revenue statistics
//
// Key Aggregates:
//   - Invoice: header plus owned lines, at most one line per product
//   - CreditNote: header plus owned lines, bound to one source invoice
//
// The billing domain integrates with:
//   - Partner domain: every document belongs to a customer
//   - Catalog domain: lines reference products, invoice prices resolve from the price list
//   - Ledger domain: headers post to chart-of-accounts entries
package billing

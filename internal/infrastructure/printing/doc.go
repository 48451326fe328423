// Package printing renders invoices and credit notes to PDF with maroto.
//
// Example usage:
//
//	renderer := NewMarotoRenderer(DefaultRenderConfig())
//	result, err := renderer.Render(ctx, &DocumentData{
//	    Meta:     DocumentMeta{DocType: DocTypeInvoice, DocNo: "HD0001"},
//	    Company:  CompanyInfo{Name: "ACME"},
//	    Document: invoiceData,
//	})
package printing

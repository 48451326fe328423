package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// RenderConfig holds layout options for the maroto renderer
type RenderConfig struct {
	PageNumberPattern string
	DateLayout        string
}

// DefaultRenderConfig returns the default layout options
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PageNumberPattern: "Page {current} of {total}",
		DateLayout:        "02/01/2006",
	}
}

// MarotoRenderer renders documents with maroto
type MarotoRenderer struct {
	config RenderConfig
}

// NewMarotoRenderer creates a new MarotoRenderer
func NewMarotoRenderer(cfg RenderConfig) *MarotoRenderer {
	if cfg.PageNumberPattern == "" {
		cfg.PageNumberPattern = DefaultRenderConfig().PageNumberPattern
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultRenderConfig().DateLayout
	}
	return &MarotoRenderer{config: cfg}
}

var (
	labelStyle  = props.Text{Size: 9, Style: fontstyle.Bold}
	cellStyle   = props.Text{Size: 9}
	amountStyle = props.Text{Size: 9, Align: align.Right}
	headerStyle = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
)

// Render implements PDFRenderer
func (r *MarotoRenderer) Render(ctx context.Context, data *DocumentData) (*RenderResult, error) {
	if data == nil {
		return nil, NewRenderError(ErrCodeInvalidDocument, "document data is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "rendering cancelled", err)
	}

	start := time.Now()
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: r.config.PageNumberPattern,
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	r.addHeading(m, data)

	switch doc := data.Document.(type) {
	case *InvoiceData:
		r.addInvoice(m, doc)
	case *CreditNoteData:
		r.addCreditNote(m, doc)
	default:
		return nil, NewRenderError(ErrCodeInvalidDocument, fmt.Sprintf("unsupported document %T", data.Document), nil)
	}

	if data.Meta.Remark != "" {
		m.AddRow(12, text.NewCol(12, data.Meta.Remark, props.Text{Size: 9, Top: 4}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to generate PDF", err)
	}

	return &RenderResult{
		PDFData:        doc.GetBytes(),
		RenderDuration: time.Since(start),
	}, nil
}

func (r *MarotoRenderer) addHeading(m core.Maroto, data *DocumentData) {
	m.AddRow(20,
		text.NewCol(6, data.Company.Name, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(6, data.Meta.DocType.Title(), props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(16,
		col.New(6).Add(
			text.New(data.Company.Address, props.Text{Size: 9}),
			text.New(joinNonEmpty("Tax ID: ", data.Company.TaxID), props.Text{Size: 9, Top: 4}),
			text.New(joinNonEmpty("Phone: ", data.Company.Phone), props.Text{Size: 9, Top: 8}),
		),
		col.New(6).Add(
			text.New("No. "+data.Meta.DocNo, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Date: "+data.Meta.IssueDate.Format(r.config.DateLayout), props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)
}

func addCustomer(m core.Maroto, c CustomerInfo, extra ...string) {
	column := col.New(12).Add(
		text.New("Customer: "+c.Name+" ("+c.Code+")", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.New(c.Address, props.Text{Size: 9, Top: 5}),
		text.New(joinNonEmpty("Tax ID: ", c.TaxID), props.Text{Size: 9, Top: 9}),
	)
	for i, e := range extra {
		column.Add(text.New(e, props.Text{Size: 9, Top: float64(13 + 4*i)}))
	}
	m.AddRow(float64(20+4*len(extra)), column)
}

func addLines(m core.Maroto, lines []LineData) {
	m.AddRow(10,
		text.NewCol(1, "#", labelStyle),
		text.NewCol(4, "Product", labelStyle),
		text.NewCol(1, "Unit", labelStyle),
		text.NewCol(2, "Quantity", headerStyle),
		text.NewCol(2, "Unit price", headerStyle),
		text.NewCol(2, "Amount", headerStyle),
	)
	for _, l := range lines {
		m.AddRow(8,
			text.NewCol(1, fmt.Sprintf("%d", l.Index), cellStyle),
			text.NewCol(4, l.ProductCode+" "+l.ProductName, cellStyle),
			text.NewCol(1, l.Unit, cellStyle),
			text.NewCol(2, formatAmount(l.Quantity), amountStyle),
			text.NewCol(2, formatAmount(l.UnitPrice), amountStyle),
			text.NewCol(2, formatAmount(l.Amount), amountStyle),
		)
	}
}

func addTotal(m core.Maroto, label string, amount decimal.Decimal, bold bool) {
	style := amountStyle
	if bold {
		style.Style = fontstyle.Bold
	}
	m.AddRow(7,
		col.New(7),
		text.NewCol(3, label, labelStyle),
		text.NewCol(2, formatAmount(amount), style),
	)
}

func (r *MarotoRenderer) addInvoice(m core.Maroto, inv *InvoiceData) {
	var extra []string
	if inv.PaymentMethod != "" {
		extra = append(extra, "Payment method: "+inv.PaymentMethod)
	}
	addCustomer(m, inv.Customer, extra...)
	addLines(m, inv.Lines)

	addTotal(m, "Gross amount", inv.GrossAmount, false)
	if inv.DiscountRate != "" {
		addTotal(m, "Discount ("+inv.DiscountRate+")", inv.DiscountAmount, false)
	}
	addTotal(m, "Net amount", inv.NetAmount, false)
	if inv.TaxRate != "" {
		addTotal(m, "Tax ("+inv.TaxRate+")", inv.TaxAmount, false)
	}
	addTotal(m, "Total payable", inv.TotalAmount, true)
}

func (r *MarotoRenderer) addCreditNote(m core.Maroto, cn *CreditNoteData) {
	addCustomer(m, cn.Customer, "Reduces invoice: "+cn.InvoiceNumber)
	addLines(m, cn.Lines)

	addTotal(m, "Net amount", cn.NetAmount, false)
	if cn.TaxRate != "" {
		addTotal(m, "Tax ("+cn.TaxRate+")", cn.TaxAmount, false)
	}
	addTotal(m, "Total", cn.TotalAmount, true)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func joinNonEmpty(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

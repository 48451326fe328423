package models

import (
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the header row of an invoice. Optional accounts are NULL when absent.
type InvoiceModel struct {
	Number          string             `gorm:"type:varchar(10);primaryKey"`
	IssueDate       time.Time          `gorm:"not null;index"`
	CustomerCode    string             `gorm:"type:varchar(10);not null;index"`
	CustomerName    string             `gorm:"type:varchar(100);not null"`
	PaymentMethod   string             `gorm:"type:varchar(50);index"`
	DebitAccount    string             `gorm:"type:varchar(10);not null"`
	RevenueAccount  string             `gorm:"type:varchar(10);not null"`
	TaxAccount      *string            `gorm:"type:varchar(10)"`
	TaxRate         string             `gorm:"type:varchar(10)"`
	TaxAmount       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountRate    string             `gorm:"type:varchar(10)"`
	DiscountAccount *string            `gorm:"type:varchar(10)"`
	DiscountAmount  decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	NetAmount       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Description     string             `gorm:"type:varchar(150)"`
	Lines           []InvoiceLineModel `gorm:"foreignKey:InvoiceNumber;references:Number;constraint:OnDelete:CASCADE"`
	Timestamps
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceLineModel is one product row of an invoice, keyed by (invoice, product)
type InvoiceLineModel struct {
	InvoiceNumber string          `gorm:"type:varchar(10);primaryKey"`
	ProductCode   string          `gorm:"type:varchar(10);primaryKey;index"`
	Position      int             `gorm:"not null;default:0"`
	Unit          string          `gorm:"type:varchar(10)"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the header and its loaded lines to a domain Invoice.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		Number:          m.Number,
		IssueDate:       m.IssueDate,
		CustomerCode:    m.CustomerCode,
		CustomerName:    m.CustomerName,
		PaymentMethod:   m.PaymentMethod,
		DebitAccount:    m.DebitAccount,
		RevenueAccount:  m.RevenueAccount,
		TaxAccount:      deref(m.TaxAccount),
		TaxRate:         m.TaxRate,
		TaxAmount:       m.TaxAmount,
		DiscountRate:    m.DiscountRate,
		DiscountAccount: deref(m.DiscountAccount),
		DiscountAmount:  m.DiscountAmount,
		NetAmount:       m.NetAmount,
		TotalAmount:     m.TotalAmount,
		Description:     m.Description,
		Lines:           make([]billing.Line, len(m.Lines)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for i, l := range m.Lines {
		inv.Lines[i] = billing.Line{
			ProductCode: l.ProductCode,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return inv
}

// InvoiceModelFromDomain flattens an invoice into its header row. Lines are built separately.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	return &InvoiceModel{
		Number:          inv.Number,
		IssueDate:       inv.IssueDate,
		CustomerCode:    inv.CustomerCode,
		CustomerName:    inv.CustomerName,
		PaymentMethod:   inv.PaymentMethod,
		DebitAccount:    inv.DebitAccount,
		RevenueAccount:  inv.RevenueAccount,
		TaxAccount:      nullable(inv.TaxAccount),
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		DiscountRate:    inv.DiscountRate,
		DiscountAccount: nullable(inv.DiscountAccount),
		DiscountAmount:  inv.DiscountAmount,
		NetAmount:       inv.NetAmount,
		TotalAmount:     inv.TotalAmount,
		Description:     inv.Description,
		Timestamps: Timestamps{
			CreatedAt: inv.CreatedAt,
			UpdatedAt: inv.UpdatedAt,
		},
	}
}

// InvoiceLineModels builds the line rows of an invoice in document order
func InvoiceLineModels(inv *billing.Invoice) []InvoiceLineModel {
	rows := make([]InvoiceLineModel, len(inv.Lines))
	for i, l := range inv.Lines {
		rows[i] = InvoiceLineModel{
			InvoiceNumber: inv.Number,
			ProductCode:   l.ProductCode,
			Position:      i + 1,
			Unit:          l.Unit,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
		}
	}
	return rows
}

// CreditNoteModel is the header row of a credit note
type CreditNoteModel struct {
	Number            string                `gorm:"type:varchar(10);primaryKey"`
	IssueDate         time.Time             `gorm:"not null;index"`
	CustomerCode      string                `gorm:"type:varchar(10);not null;index"`
	InvoiceNumber     string                `gorm:"type:varchar(10);not null;index"`
	Description       string                `gorm:"type:varchar(150)"`
	ReductionAccount  string                `gorm:"type:varchar(10);not null"`
	SettlementAccount string                `gorm:"type:varchar(10);not null"`
	TaxAccount        *string               `gorm:"type:varchar(10)"`
	TaxRate           string                `gorm:"type:varchar(10)"`
	TaxAmount         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	NetAmount         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount       decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Lines             []CreditNoteLineModel `gorm:"foreignKey:CreditNoteNumber;references:Number;constraint:OnDelete:CASCADE"`
	Timestamps
}

// TableName returns the table name for GORM
func (CreditNoteModel) TableName() string {
	return "credit_notes"
}

// CreditNoteLineModel is one product row of a credit note, keyed by (credit note, product)
type CreditNoteLineModel struct {
	CreditNoteNumber string          `gorm:"type:varchar(10);primaryKey"`
	ProductCode      string          `gorm:"type:varchar(10);primaryKey;index"`
	Position         int             `gorm:"not null;default:0"`
	Unit             string          `gorm:"type:varchar(10)"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (CreditNoteLineModel) TableName() string {
	return "credit_note_lines"
}

// ToDomain converts the header and its loaded lines to a domain CreditNote.
func (m *CreditNoteModel) ToDomain() *billing.CreditNote {
	cn := &billing.CreditNote{
		Number:            m.Number,
		IssueDate:         m.IssueDate,
		CustomerCode:      m.CustomerCode,
		InvoiceNumber:     m.InvoiceNumber,
		Description:       m.Description,
		ReductionAccount:  m.ReductionAccount,
		SettlementAccount: m.SettlementAccount,
		TaxAccount:        deref(m.TaxAccount),
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		NetAmount:         m.NetAmount,
		TotalAmount:       m.TotalAmount,
		Lines:             make([]billing.Line, len(m.Lines)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for i, l := range m.Lines {
		cn.Lines[i] = billing.Line{
			ProductCode: l.ProductCode,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
	}
	return cn
}

// CreditNoteModelFromDomain flattens a credit note into its header row.
func CreditNoteModelFromDomain(cn *billing.CreditNote) *CreditNoteModel {
	return &CreditNoteModel{
		Number:            cn.Number,
		IssueDate:         cn.IssueDate,
		CustomerCode:      cn.CustomerCode,
		InvoiceNumber:     cn.InvoiceNumber,
		Description:       cn.Description,
		ReductionAccount:  cn.ReductionAccount,
		SettlementAccount: cn.SettlementAccount,
		TaxAccount:        nullable(cn.TaxAccount),
		TaxRate:           cn.TaxRate,
		TaxAmount:         cn.TaxAmount,
		NetAmount:         cn.NetAmount,
		TotalAmount:       cn.TotalAmount,
		Timestamps: Timestamps{
			CreatedAt: cn.CreatedAt,
			UpdatedAt: cn.UpdatedAt,
		},
	}
}

// CreditNoteLineModels builds the line rows of a credit note in document order
func CreditNoteLineModels(cn *billing.CreditNote) []CreditNoteLineModel {
	rows := make([]CreditNoteLineModel, len(cn.Lines))
	for i, l := range cn.Lines {
		rows[i] = CreditNoteLineModel{
			CreditNoteNumber: cn.Number,
			ProductCode:      l.ProductCode,
			Position:         i + 1,
			Unit:             l.Unit,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
		}
	}
	return rows
}

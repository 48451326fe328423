package partner

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
)

// CustomerCodes is the numbering scheme for generated customer codes
var CustomerCodes = shared.Sequence{Prefix: "KH", Width: 4}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	taxIDPattern = regexp.MustCompile(`^[0-9]{10,13}$`)
)

// Customer is a buyer referenced by invoices and credit notes
type Customer struct {
	Code      string
	Name      string
	Address   string
	Phone     string
	Email     string
	TaxID     string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerDetails holds the mutable attributes of a customer
type CustomerDetails struct {
	Name     string
	Address  string
	Phone    string
	Email    string
	TaxID    string
	Category string
}

// NewCustomer creates a customer. An empty code is assigned at persistence time.
func NewCustomer(code string, details CustomerDetails) (*Customer, error) {
	code = strings.TrimSpace(code)
	if utf8.RuneCountInString(code) > 10 {
		return nil, shared.NewInvalidInput("customer code cannot exceed 10 characters")
	}
	c := &Customer{Code: code}
	if err := c.apply(details); err != nil {
		return nil, err
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// Update replaces the mutable attributes. The code never changes.
func (c *Customer) Update(details CustomerDetails) error {
	if err := c.apply(details); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	return nil
}

// IsValidPhone reports whether s is a ten digit phone number
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidTaxID reports whether s is a tax id of 10 to 13 digits
func IsValidTaxID(s string) bool {
	return taxIDPattern.MatchString(s)
}

// HasTaxID reports whether a tax identification number is recorded
func (c *Customer) HasTaxID() bool {
	return c.TaxID != ""
}

func (c *Customer) apply(d CustomerDetails) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.TaxID = strings.TrimSpace(d.TaxID)
	d.Category = strings.TrimSpace(d.Category)

	if d.Name == "" {
		return shared.NewInvalidInput("customer name cannot be empty")
	}
	if utf8.RuneCountInString(d.Name) > 100 {
		return shared.NewInvalidInput("customer name cannot exceed 100 characters")
	}
	if d.Address == "" {
		return shared.NewInvalidInput("customer address cannot be empty")
	}
	if utf8.RuneCountInString(d.Address) > 150 {
		return shared.NewInvalidInput("customer address cannot exceed 150 characters")
	}
	if d.Phone != "" && !phonePattern.MatchString(d.Phone) {
		return shared.NewInvalidInput("phone number must have exactly 10 digits")
	}
	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			return shared.NewInvalidInput("email is not valid")
		}
	}
	if d.TaxID != "" && !taxIDPattern.MatchString(d.TaxID) {
		return shared.NewInvalidInput("tax id must have 10 to 13 digits")
	}
	if utf8.RuneCountInString(d.Category) > 50 {
		return shared.NewInvalidInput("customer category cannot exceed 50 characters")
	}

	c.Name = d.Name
	c.Address = d.Address
	c.Phone = d.Phone
	c.Email = d.Email
	c.TaxID = d.TaxID
	c.Category = d.Category
	return nil
}

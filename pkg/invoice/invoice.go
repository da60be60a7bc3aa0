// pkg/invoice/invoice.go

package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Instance represents a party on the invoice, used for both sender and receiver.
type Instance struct {
	Name       string `yaml:"name" json:"name"`
	Street     string `yaml:"street" json:"street"`
	PostalCode string `yaml:"postal_code,omitempty" json:"postal_code,omitempty"`
	City       string `yaml:"city" json:"city"`
}

// Lines returns the address block in print order: name, street, postal code and city.
func (i Instance) Lines() []string {
	lines := make([]string, 0, 3)
	if i.Name != "" {
		lines = append(lines, i.Name)
	}
	if i.Street != "" {
		lines = append(lines, i.Street)
	}
	if loc := strings.TrimSpace(i.PostalCode + " " + i.City); loc != "" {
		lines = append(lines, loc)
	}
	return lines
}

func (i Instance) String() string {
	return i.Name
}

// Position represents a single billable line of the invoice.
type Position struct {
	Name      string  `yaml:"name" json:"name"`
	Quantity  float64 `yaml:"quantity" json:"quantity"`
	UnitPrice float64 `yaml:"unit_price" json:"unit_price"`
}

// FullPrice is quantity times unit price.
func (p Position) FullPrice() float64 {
	return p.Quantity * p.UnitPrice
}

// Invoice represents the invoice data model.
type Invoice struct {
	Sender      Instance
	Receiver    Instance
	ID          int
	InvoiceDate time.Time
	OutputDate  time.Time
	Positions   []Position
}

// Total sums the full prices of all positions in order.
func (inv Invoice) Total() float64 {
	var total float64
	for _, p := range inv.Positions {
		total += p.FullPrice()
	}
	return total
}

// FormatAmount renders a money value with two decimals, rounding half away from zero.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

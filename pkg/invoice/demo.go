package invoice

import "time"

// Demo returns the built-in sample invoice: one company billing itself for a book.
func Demo() Invoice {
	company := Instance{
		Name:       "Company GmbH",
		Street:     "Companystreet 1",
		PostalCode: "12345",
		City:       "Companycity",
	}
	return Invoice{
		Sender:      company,
		Receiver:    company,
		ID:          1,
		InvoiceDate: time.Date(2022, time.November, 22, 0, 0, 0, 0, time.UTC),
		OutputDate:  time.Date(2022, time.December, 6, 0, 0, 0, 0, time.UTC),
		Positions: []Position{
			{Name: "Book", Quantity: 1, UnitPrice: 10},
		},
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicing-pdf/pkg/invoice"
	"github.com/invoicing-pdf/pkg/render"
)

const sampleDocument = `
title: Rechnung
sender:
  name: Company GmbH
  street: Companystreet 1
  postal_code: "12345"
  city: Companycity
receiver:
  name: Customer AG
  street: Customerway 7
  city: Customertown
id: 42
invoice_date: "2023-03-01"
output_date: "2023-03-15"
positions:
  - name: Book
    quantity: 2
    unit_price: 12.5
  - name: Shipping
    quantity: 1
    unit_price: 4.9
font:
  family: Times
margin: 15
page_size: Letter
layout: table
currency: USD
output: out/rechnung.pdf
`

func TestParseDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	inv, err := doc.Invoice()
	require.NoError(t, err)

	want := invoice.Invoice{
		Sender:      invoice.Instance{Name: "Company GmbH", Street: "Companystreet 1", PostalCode: "12345", City: "Companycity"},
		Receiver:    invoice.Instance{Name: "Customer AG", Street: "Customerway 7", City: "Customertown"},
		ID:          42,
		InvoiceDate: time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		OutputDate:  time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC),
		Positions: []invoice.Position{
			{Name: "Book", Quantity: 2, UnitPrice: 12.5},
			{Name: "Shipping", Quantity: 1, UnitPrice: 4.9},
		},
	}
	if diff := cmp.Diff(want, inv); diff != "" {
		t.Errorf("invoice mismatch (-want +got):\n%s", diff)
	}

	opts, err := doc.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, "Rechnung", opts.Title)
	assert.Equal(t, render.FontConfig{Family: "Times"}, opts.Font)
	assert.Equal(t, 15.0, opts.Margin)
	assert.Equal(t, render.Letter, opts.PageSize)
	assert.Equal(t, render.TableLayout, opts.Layout)
	assert.Equal(t, "USD", opts.Currency)
	assert.Equal(t, "out/rechnung.pdf", doc.OutputPath())
}

func TestParseKeepsDefaults(t *testing.T) {
	doc, err := Parse([]byte("sender: {name: Solo}\nid: 3\n"))
	require.NoError(t, err)

	inv, err := doc.Invoice()
	require.NoError(t, err)
	assert.Equal(t, inv.Sender, inv.Receiver)
	assert.Empty(t, inv.Positions)

	opts, err := doc.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultOptions(), opts)
	assert.Equal(t, DefaultOutput, doc.OutputPath())
}

func TestParseLayoutSections(t *testing.T) {
	doc, err := Parse([]byte("layout:\n  sections: [addresses, summary]\n"))
	require.NoError(t, err)

	opts, err := doc.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.Layout{Addresses: true, Summary: true}, opts.Layout)
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"sender": {"name": "Json Ltd"}, "id": 7, "layout": "classic", "font": {"family": "Courier"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Json Ltd", doc.Sender.Name)
	assert.Equal(t, 7, doc.ID)

	opts, err := doc.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.ClassicLayout, opts.Layout)
}

func TestDocumentErrors(t *testing.T) {
	_, err := Parse([]byte("positions: [1, 2"))
	assert.Error(t, err)

	doc := Default()
	doc.InvoiceDate = "22.11.2022"
	_, err = doc.Invoice()
	assert.ErrorContains(t, err, "invoice_date")

	doc = Default()
	doc.Layout = Layout{Preset: "fancy"}
	_, err = doc.RenderOptions()
	assert.Error(t, err)

	doc = Default()
	doc.PageSize = "A0"
	_, err = doc.RenderOptions()
	assert.Error(t, err)
}

func TestRenderOptionsMargin(t *testing.T) {
	doc, err := Parse([]byte("margin: 105\n"))
	require.NoError(t, err)
	_, err = doc.RenderOptions()
	assert.ErrorContains(t, err, "margin")

	doc, err = Parse([]byte("margin: 500\npage_size: Letter\n"))
	require.NoError(t, err)
	_, err = doc.RenderOptions()
	assert.Error(t, err)

	doc, err = Parse([]byte("margin: 104\n"))
	require.NoError(t, err)
	opts, err := doc.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, 104.0, opts.Margin)
}

func TestDefaultFontDir(t *testing.T) {
	doc := Default()
	require.NotNil(t, doc.Font)
	assert.Equal(t, Font{Dir: "data/fonts/Cabin", Family: "Cabin"}, *doc.Font)
}

func TestDefaultMatchesDemo(t *testing.T) {
	inv, err := Default().Invoice()
	require.NoError(t, err)
	if diff := cmp.Diff(invoice.Demo(), inv); diff != "" {
		t.Errorf("default document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, doc.ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("S3_BUCKET=from-file\nLISTEN_ADDR=:9000\n"), 0o644))

	t.Setenv("S3_BUCKET", "")
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("S3_PREFIX", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/invoices")
	require.NoError(t, os.Unsetenv("S3_BUCKET"))

	env, err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-file", env.S3Bucket)
	assert.Equal(t, ":7000", env.ListenAddr)
	assert.Equal(t, "postgres://localhost/invoices", env.DatabaseURL)
	assert.Equal(t, "invoices", env.S3Prefix)
}

// Package render lays an invoice out on a PDF page using gofpdf.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoicing-pdf/pkg/invoice"
)

const (
	headingSize    = 18
	bodySize       = 11
	lineHeight     = 6
	addressPadding = 10
	dateLayout     = "02.01.2006"
)

// Renderer turns invoices into PDF documents.
type Renderer struct {
	opts Options
}

// NewRenderer returns a Renderer using opts, with zero fields filled from the defaults.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render writes the PDF for inv to w.
func (r *Renderer) Render(w io.Writer, inv invoice.Invoice) error {
	if err := r.opts.Validate(); err != nil {
		return err
	}
	pdf, family, tr, err := newDocument(r.opts)
	if err != nil {
		return err
	}

	m := r.opts.Margin
	pdf.SetMargins(m, m, m)
	pdf.SetAutoPageBreak(true, m)
	pdf.SetTitle(r.opts.Title, true)
	pdf.SetAuthor(inv.Sender.Name, true)
	pdf.SetCreator("invoicegen", true)
	pdf.AddPage()

	if r.opts.Logo != "" {
		if err := placeLogo(pdf, r.opts.Logo, m); err != nil {
			return err
		}
		pdf.SetXY(m, m)
	}

	p := &page{pdf: pdf, family: family, tr: tr, currency: r.opts.Currency}
	p.heading(r.opts.Title)
	if r.opts.Layout.Addresses {
		p.address(inv.Sender)
		p.address(inv.Receiver)
	}
	if r.opts.Layout.Details {
		p.details(inv)
	}
	if r.opts.Layout.Items {
		p.items(inv.Positions)
	}
	if r.opts.Layout.Summary {
		p.summary(inv.Total())
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("lay out invoice %d: %w", inv.ID, err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write invoice %d: %w", inv.ID, err)
	}
	return nil
}

// RenderBytes returns the PDF for inv.
func (r *Renderer) RenderBytes(inv invoice.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, inv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderFile writes the PDF for inv to path, creating parent directories.
// Nothing is written when rendering fails.
func (r *Renderer) RenderFile(path string, inv invoice.Invoice) error {
	data, err := r.RenderBytes(inv)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile stores a rendered PDF at path, creating parent directories.
func WriteFile(path string, pdf []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// page holds the state shared by the section writers.
type page struct {
	pdf      *gofpdf.Fpdf
	family   string
	tr       func(string) string
	currency string
}

func (p *page) line(text, align string) {
	p.pdf.CellFormat(0, lineHeight, p.tr(text), "", 1, align, false, 0, "")
}

func (p *page) heading(title string) {
	p.pdf.SetFont(p.family, "B", headingSize)
	p.pdf.CellFormat(0, 10, p.tr(title), "", 1, "L", false, 0, "")
	p.pdf.SetFont(p.family, "", bodySize)
}

func (p *page) address(party invoice.Instance) {
	p.pdf.Ln(addressPadding)
	for _, l := range party.Lines() {
		p.line(l, "L")
	}
	p.pdf.Ln(addressPadding)
}

func (p *page) details(inv invoice.Invoice) {
	p.line(fmt.Sprintf("Invoice No.: %d", inv.ID), "L")
	if !inv.InvoiceDate.IsZero() {
		p.line("Invoice date: "+inv.InvoiceDate.Format(dateLayout), "L")
	}
	if !inv.OutputDate.IsZero() {
		p.line("Output date: "+inv.OutputDate.Format(dateLayout), "L")
	}
	p.pdf.Ln(lineHeight)
}

// column widths as fractions of the printable width
var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Pos.", 0.08, "C"},
	{"Description", 0.44, "L"},
	{"Quantity", 0.14, "R"},
	{"Unit price", 0.17, "R"},
	{"Amount", 0.17, "R"},
}

func (p *page) printableWidth() float64 {
	pageW, _ := p.pdf.GetPageSize()
	left, _, right, _ := p.pdf.GetMargins()
	return pageW - left - right
}

func (p *page) items(positions []invoice.Position) {
	width := p.printableWidth()

	p.pdf.SetFont(p.family, "B", bodySize)
	p.pdf.SetFillColor(230, 230, 230)
	for _, c := range itemColumns {
		p.pdf.CellFormat(width*c.width, lineHeight+1, p.tr(c.title), "1", 0, c.align, true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(p.family, "", bodySize)
	for i, pos := range positions {
		cells := []string{
			strconv.Itoa(i + 1),
			pos.Name,
			strconv.FormatFloat(pos.Quantity, 'f', -1, 64),
			p.amount(pos.UnitPrice),
			p.amount(pos.FullPrice()),
		}
		for j, c := range itemColumns {
			p.pdf.CellFormat(width*c.width, lineHeight, p.tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
}

func (p *page) summary(total float64) {
	width := p.printableWidth()
	labelW := width * (1 - itemColumns[len(itemColumns)-1].width)

	p.pdf.SetFont(p.family, "B", bodySize)
	p.pdf.CellFormat(labelW, lineHeight+1, p.tr("Total"), "", 0, "R", false, 0, "")
	p.pdf.CellFormat(width-labelW, lineHeight+1, p.tr(p.amount(total)), "T", 1, "R", false, 0, "")
	p.pdf.SetFont(p.family, "", bodySize)
}

func (p *page) amount(v float64) string {
	s := invoice.FormatAmount(v)
	if p.currency == "" {
		return s
	}
	return s + " " + p.currency
}

// Package config loads invoice documents and the runtime environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/invoicing-pdf/pkg/invoice"
	"github.com/invoicing-pdf/pkg/render"
)

// DateLayout is the date format used in invoice documents.
const DateLayout = "2006-01-02"

// DefaultOutput is where the CLI writes the invoice unless told otherwise.
const DefaultOutput = "target/invoice.pdf"

// Font selects a TrueType family from a directory. An empty Dir selects a core PDF font.
type Font struct {
	Dir    string `yaml:"dir" json:"dir"`
	Family string `yaml:"family" json:"family"`
}

// Layout is either a preset name or an explicit list of sections.
type Layout struct {
	Preset   string   `yaml:"preset,omitempty" json:"preset,omitempty"`
	Sections []string `yaml:"sections,omitempty" json:"sections,omitempty"`
}

// UnmarshalYAML accepts both `layout: classic` and the mapping form.
func (l *Layout) UnmarshalYAML(node *yaml.Node) error {
	*l = Layout{}
	if node.Kind == yaml.ScalarNode {
		l.Preset = node.Value
		return nil
	}
	type plain Layout
	return node.Decode((*plain)(l))
}

// Document describes one invoice together with how to render it.
type Document struct {
	Title       string             `yaml:"title" json:"title"`
	Sender      invoice.Instance   `yaml:"sender" json:"sender"`
	Receiver    *invoice.Instance  `yaml:"receiver,omitempty" json:"receiver,omitempty"` // defaults to the sender
	ID          int                `yaml:"id" json:"id"`
	InvoiceDate string             `yaml:"invoice_date" json:"invoice_date"`
	OutputDate  string             `yaml:"output_date" json:"output_date"`
	Positions   []invoice.Position `yaml:"positions" json:"positions"`
	Font        *Font              `yaml:"font,omitempty" json:"font,omitempty"`
	Margin      *float64           `yaml:"margin,omitempty" json:"margin,omitempty"`
	PageSize    string             `yaml:"page_size,omitempty" json:"page_size,omitempty"`
	Layout      Layout             `yaml:"layout,omitempty" json:"layout,omitempty"`
	Logo        string             `yaml:"logo,omitempty" json:"logo,omitempty"`
	Currency    string             `yaml:"currency,omitempty" json:"currency,omitempty"`
	Output      string             `yaml:"output,omitempty" json:"output,omitempty"`
}

// Default returns the document for the built-in demo invoice.
func Default() Document {
	demo := invoice.Demo()
	receiver := demo.Receiver
	opts := render.DefaultOptions()
	margin := opts.Margin
	return Document{
		Title:       opts.Title,
		Sender:      demo.Sender,
		Receiver:    &receiver,
		ID:          demo.ID,
		InvoiceDate: demo.InvoiceDate.Format(DateLayout),
		OutputDate:  demo.OutputDate.Format(DateLayout),
		Positions:   demo.Positions,
		Font:        &Font{Dir: opts.Font.Dir, Family: opts.Font.Family},
		Margin:      &margin,
		PageSize:    opts.PageSize.Name,
		Layout:      Layout{Preset: "complete"},
		Currency:    opts.Currency,
		Output:      DefaultOutput,
	}
}

// Load reads a YAML invoice document. Presentation fields missing from the file keep the
// values of Default; the invoice content starts empty.
func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes a YAML (or JSON) invoice document.
func Parse(b []byte) (Document, error) {
	doc := Default()
	doc.Sender = invoice.Instance{}
	doc.Receiver = nil
	doc.ID = 0
	doc.InvoiceDate, doc.OutputDate = "", ""
	doc.Positions = nil
	doc.Font = nil
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("decode invoice document: %w", err)
	}
	if doc.Font == nil {
		doc.Font = Default().Font
	}
	return doc, nil
}

// Invoice converts the document into the invoice model.
func (d Document) Invoice() (invoice.Invoice, error) {
	invoiceDate, err := parseDate("invoice_date", d.InvoiceDate)
	if err != nil {
		return invoice.Invoice{}, err
	}
	outputDate, err := parseDate("output_date", d.OutputDate)
	if err != nil {
		return invoice.Invoice{}, err
	}
	receiver := d.Sender
	if d.Receiver != nil {
		receiver = *d.Receiver
	}
	return invoice.Invoice{
		Sender:      d.Sender,
		Receiver:    receiver,
		ID:          d.ID,
		InvoiceDate: invoiceDate,
		OutputDate:  outputDate,
		Positions:   append([]invoice.Position(nil), d.Positions...),
	}, nil
}

// RenderOptions converts the document's presentation settings.
func (d Document) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	if d.Title != "" {
		opts.Title = d.Title
	}
	if d.Font != nil {
		opts.Font = render.FontConfig{Dir: d.Font.Dir, Family: d.Font.Family}
	}
	if d.Margin != nil {
		opts.Margin = *d.Margin
	}
	size, err := render.PageSizeByName(d.PageSize)
	if err != nil {
		return render.Options{}, err
	}
	opts.PageSize = size
	if len(d.Layout.Sections) > 0 {
		opts.Layout, err = render.LayoutFromSections(d.Layout.Sections)
	} else {
		opts.Layout, err = render.LayoutByName(d.Layout.Preset)
	}
	if err != nil {
		return render.Options{}, err
	}
	opts.Logo = d.Logo
	opts.Currency = d.Currency
	if err := opts.Validate(); err != nil {
		return render.Options{}, err
	}
	return opts, nil
}

// OutputPath returns the configured output file, or DefaultOutput.
func (d Document) OutputPath() string {
	if d.Output == "" {
		return DefaultOutput
	}
	return d.Output
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

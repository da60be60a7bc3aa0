package render

import (
	"fmt"
	"math"
	"strings"
)

// Layout selects which sections are pushed onto the page after the heading.
type Layout struct {
	Addresses bool // sender and receiver address blocks
	Details   bool // invoice number and dates
	Items     bool // line item table
	Summary   bool // total row
}

// Layout presets.
var (
	ClassicLayout  = Layout{Addresses: true}
	TableLayout    = Layout{Details: true, Items: true, Summary: true}
	CompleteLayout = Layout{Addresses: true, Details: true, Items: true, Summary: true}
)

var presets = map[string]Layout{
	"classic":  ClassicLayout,
	"table":    TableLayout,
	"complete": CompleteLayout,
}

// LayoutByName resolves a preset name. The empty name yields CompleteLayout.
func LayoutByName(name string) (Layout, error) {
	if name == "" {
		return CompleteLayout, nil
	}
	l, ok := presets[strings.ToLower(name)]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout %q", name)
	}
	return l, nil
}

// LayoutFromSections builds a layout from section names (addresses, details, items, summary).
func LayoutFromSections(sections []string) (Layout, error) {
	var l Layout
	for _, s := range sections {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "addresses":
			l.Addresses = true
		case "details":
			l.Details = true
		case "items":
			l.Items = true
		case "summary":
			l.Summary = true
		default:
			return Layout{}, fmt.Errorf("unknown layout section %q", s)
		}
	}
	return l, nil
}

// FontConfig names the font family and the directory holding its TrueType files.
// An empty Dir selects a built-in PDF core font.
type FontConfig struct {
	Dir    string
	Family string
}

// PageSize is a paper format in millimetres.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	A4     = PageSize{Name: "A4", Width: 210, Height: 297}
	Letter = PageSize{Name: "Letter", Width: 215.9, Height: 279.4}
)

// PageSizeByName resolves "A4" or "Letter". The empty name yields A4.
func PageSizeByName(name string) (PageSize, error) {
	switch strings.ToLower(name) {
	case "", "a4":
		return A4, nil
	case "letter":
		return Letter, nil
	}
	return PageSize{}, fmt.Errorf("unknown page size %q", name)
}

// Options configures a Renderer.
type Options struct {
	Title    string
	Font     FontConfig
	Margin   float64 // mm, applied on all four sides
	PageSize PageSize
	Layout   Layout
	Logo     string // optional path to a PNG/JPEG logo
	Currency string
}

// DefaultOptions matches the built-in demo: Cabin from data/fonts/Cabin, 10mm margins.
func DefaultOptions() Options {
	return Options{
		Title:    "Invoice",
		Font:     FontConfig{Dir: "data/fonts/Cabin", Family: "Cabin"},
		Margin:   10,
		PageSize: A4,
		Layout:   CompleteLayout,
		Currency: "EUR",
	}
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "Invoice"
	}
	if o.PageSize.Width == 0 || o.PageSize.Height == 0 {
		o.PageSize = A4
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}

// Validate rejects margins that leave no printable area: a margin must stay below half of
// the shorter page side.
func (o Options) Validate() error {
	o = o.withDefaults()
	limit := math.Min(o.PageSize.Width, o.PageSize.Height) / 2
	if o.Margin >= limit {
		return fmt.Errorf("margin %gmm leaves no printable area on %s paper (must be below %gmm)", o.Margin, o.PageSize.Name, limit)
	}
	return nil
}

// Package generator runs the single invoice pipeline: render, publish, record.
package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/invoicing-pdf/pkg/invoice"
	"github.com/invoicing-pdf/pkg/render"
	"github.com/invoicing-pdf/pkg/store"
)

// Recorder stores ledger entries for generated invoices.
type Recorder interface {
	Record(ctx context.Context, e store.Entry) (int64, error)
}

// Publisher uploads a rendered PDF and returns where it can be fetched.
type Publisher interface {
	Publish(ctx context.Context, invoiceID int, pdf []byte) (string, error)
}

// Result describes one generated invoice.
type Result struct {
	Path     string // local file, empty for in-memory renders
	Location string // published URL, empty without a publisher
	LedgerID int64  // zero without a recorder
	PDF      []byte
}

// Generator renders invoices and hands the result to the optional recorder and publisher.
type Generator struct {
	renderer  *render.Renderer
	recorder  Recorder
	publisher Publisher
	log       zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder stores a ledger entry for every generated invoice.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithPublisher uploads every generated PDF before it is recorded.
func WithPublisher(p Publisher) Option {
	return func(g *Generator) { g.publisher = p }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a Generator using r.
func New(r *render.Renderer, opts ...Option) *Generator {
	g := &Generator{renderer: r, log: zerolog.Nop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// WithRenderer returns a copy of g that renders with r.
func (g *Generator) WithRenderer(r *render.Renderer) *Generator {
	c := *g
	c.renderer = r
	return &c
}

// Renderer returns the renderer in use.
func (g *Generator) Renderer() *render.Renderer {
	return g.renderer
}

// Generate renders inv to path and then publishes and records it.
func (g *Generator) Generate(ctx context.Context, inv invoice.Invoice, path string) (Result, error) {
	res, err := g.render(inv)
	if err != nil {
		return Result{}, err
	}
	if err := render.WriteFile(path, res.PDF); err != nil {
		return Result{}, err
	}
	res.Path = path
	g.log.Info().Int("invoice", inv.ID).Str("path", path).Int("bytes", len(res.PDF)).Msg("invoice written")

	return g.finish(ctx, inv, res)
}

// GenerateBytes renders inv in memory and then publishes and records it.
func (g *Generator) GenerateBytes(ctx context.Context, inv invoice.Invoice) (Result, error) {
	res, err := g.render(inv)
	if err != nil {
		return Result{}, err
	}
	return g.finish(ctx, inv, res)
}

func (g *Generator) render(inv invoice.Invoice) (Result, error) {
	pdf, err := g.renderer.RenderBytes(inv)
	if err != nil {
		return Result{}, fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}
	g.log.Debug().Int("invoice", inv.ID).Int("positions", len(inv.Positions)).
		Str("total", invoice.FormatAmount(inv.Total())).Msg("invoice rendered")
	return Result{PDF: pdf}, nil
}

func (g *Generator) finish(ctx context.Context, inv invoice.Invoice, res Result) (Result, error) {
	if g.publisher != nil {
		loc, err := g.publisher.Publish(ctx, inv.ID, res.PDF)
		if err != nil {
			return Result{}, fmt.Errorf("publish invoice %d: %w", inv.ID, err)
		}
		res.Location = loc
		g.log.Info().Int("invoice", inv.ID).Str("location", loc).Msg("invoice published")
	}

	if g.recorder != nil {
		location := res.Location
		if location == "" {
			location = res.Path
		}
		id, err := g.recorder.Record(ctx, store.Entry{
			InvoiceID:   inv.ID,
			Sender:      inv.Sender.String(),
			Receiver:    inv.Receiver.String(),
			InvoiceDate: inv.InvoiceDate,
			OutputDate:  inv.OutputDate,
			Total:       inv.Total(),
			Location:    location,
			Size:        len(res.PDF),
		})
		if err != nil {
			return Result{}, fmt.Errorf("record invoice %d: %w", inv.ID, err)
		}
		res.LedgerID = id
		g.log.Debug().Int("invoice", inv.ID).Int64("ledger_id", id).Msg("invoice recorded")
	}
	return res, nil
}

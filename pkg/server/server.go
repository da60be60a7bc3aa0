// Package server exposes invoice rendering over HTTP.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/invoicing-pdf/docs" // registers the swagger document
	"github.com/invoicing-pdf/pkg/config"
	"github.com/invoicing-pdf/pkg/generator"
	"github.com/invoicing-pdf/pkg/invoice"
	"github.com/invoicing-pdf/pkg/render"
	"github.com/invoicing-pdf/pkg/store"
)

const maxBodyBytes = 1 << 20

//go:embed templates/index.html
var templates embed.FS

// Ledger lists recorded invoices.
type Ledger interface {
	Recent(ctx context.Context, limit int) ([]store.Entry, error)
}

// Server serves the invoice API.
type Server struct {
	gen    *generator.Generator
	base   render.Options
	ledger Ledger
	log    zerolog.Logger
	index  *template.Template
	router *mux.Router
}

// New builds the router. base supplies the font and logo for every request; the request
// document may change title, layout, margin, page size and currency.
func New(gen *generator.Generator, base render.Options, ledger Ledger, log zerolog.Logger) *Server {
	s := &Server{
		gen:    gen,
		base:   base,
		ledger: ledger,
		log:    log,
		index:  template.Must(template.ParseFS(templates, "templates/index.html")),
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/", s.indexHandler).Methods("GET")
	r.HandleFunc("/healthz", s.healthHandler).Methods("GET")
	r.HandleFunc("/invoices", s.generateInvoiceHandler).Methods("POST")
	r.HandleFunc("/invoices", s.listInvoicesHandler).Methods("GET")
	r.HandleFunc("/invoices/demo", s.demoInvoiceHandler).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("invoice server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type indexPage struct {
	Layouts []string
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, indexPage{Layouts: []string{"classic", "table", "complete"}}); err != nil {
		s.log.Error().Err(err).Msg("render index")
	}
}

// healthHandler godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Router       /healthz [get]
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "ok")
}

// generateInvoiceHandler godoc
// @Summary      Render an invoice
// @Description  Renders the posted invoice document (JSON or YAML) to a PDF.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        layout    query  string           false  "layout preset"  Enums(classic, table, complete)
// @Param        document  body   config.Document  true   "invoice document"
// @Success      200  {file}    file
// @Failure      400  {string}  string
// @Failure      500  {string}  string
// @Router       /invoices [post]
func (s *Server) generateInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Error reading the invoice document", http.StatusBadRequest)
		return
	}
	doc, err := config.Parse(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	inv, err := doc.Invoice()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := doc.RenderOptions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts.Font = s.base.Font
	opts.Logo = s.base.Logo
	if name := r.URL.Query().Get("layout"); name != "" {
		if opts.Layout, err = render.LayoutByName(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.respondPDF(w, r, render.NewRenderer(opts), inv)
}

// demoInvoiceHandler godoc
// @Summary      Render the demo invoice
// @Tags         invoices
// @Produce      application/pdf
// @Param        layout  query  string  false  "layout preset"  Enums(classic, table, complete)
// @Success      200  {file}    file
// @Failure      400  {string}  string
// @Router       /invoices/demo [get]
func (s *Server) demoInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	opts := s.base
	if name := r.URL.Query().Get("layout"); name != "" {
		var err error
		if opts.Layout, err = render.LayoutByName(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.respondPDF(w, r, render.NewRenderer(opts), invoice.Demo())
}

// listInvoicesHandler godoc
// @Summary      Recently generated invoices
// @Tags         invoices
// @Produce      json
// @Param        limit  query  int  false  "maximum number of entries"  default(20)
// @Success      200  {array}   store.Entry
// @Failure      501  {string}  string
// @Router       /invoices [get]
func (s *Server) listInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		http.Error(w, "Invoice ledger is not configured", http.StatusNotImplemented)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := s.ledger.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("list invoices")
		http.Error(w, "Error reading invoices from the database", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (s *Server) respondPDF(w http.ResponseWriter, r *http.Request, rr *render.Renderer, inv invoice.Invoice) {
	res, err := s.gen.WithRenderer(rr).GenerateBytes(r.Context(), inv)
	if err != nil {
		s.log.Error().Err(err).Int("invoice", inv.ID).Msg("generate invoice")
		http.Error(w, "Error generating the invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%d.pdf", inv.ID))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	if res.Location != "" {
		w.Header().Set("X-Invoice-Location", res.Location)
	}
	w.Write(res.PDF)
}

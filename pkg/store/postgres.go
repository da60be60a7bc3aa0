// Package store keeps a ledger of generated invoices in PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import the PostgreSQL driver
)

// Entry is one generated invoice.
type Entry struct {
	ID          int64     `json:"id"`
	InvoiceID   int       `json:"invoice_id"`
	Sender      string    `json:"sender"`
	Receiver    string    `json:"receiver"`
	InvoiceDate time.Time `json:"invoice_date"`
	OutputDate  time.Time `json:"output_date"`
	Total       float64   `json:"total"`
	Location    string    `json:"location"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id           BIGSERIAL PRIMARY KEY,
	invoice_id   INTEGER NOT NULL,
	sender       TEXT NOT NULL,
	receiver     TEXT NOT NULL,
	invoice_date DATE,
	output_date  DATE,
	total        NUMERIC(14, 2) NOT NULL,
	location     TEXT NOT NULL DEFAULT '',
	size         INTEGER NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres is the invoice ledger backed by a PostgreSQL database.
type Postgres struct {
	db *sql.DB
}

// Open connects to the database at dsn and checks the connection.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Migrate creates the invoices table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate invoices table: %w", err)
	}
	return nil
}

// Record inserts e and returns its ledger id.
func (p *Postgres) Record(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO invoices (invoice_id, sender, receiver, invoice_date, output_date, total, location, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		e.InvoiceID, e.Sender, e.Receiver, nullDate(e.InvoiceDate), nullDate(e.OutputDate), e.Total, e.Location, e.Size,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert invoice %d: %w", e.InvoiceID, err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, invoice_id, sender, receiver, invoice_date, output_date, total, location, size, created_at
		FROM invoices ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                       Entry
			invoiceDate, outputDate sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.InvoiceID, &e.Sender, &e.Receiver, &invoiceDate, &outputDate,
			&e.Total, &e.Location, &e.Size, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		e.InvoiceDate = invoiceDate.Time
		e.OutputDate = outputDate.Time
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

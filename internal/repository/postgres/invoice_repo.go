package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lekha/internal/domain"
	"lekha/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, entry *domain.TrackerEntry) error {
	now := time.Now().UTC()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query := `INSERT INTO invoices (
		id, invoice_number, client_name, client_email, grand_total,
		invoice_date, due_date, status, followup_value, followup_unit,
		last_followup_at, next_followup_at, notes, document_url,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10,
		$11, $12, $13, $14,
		$15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.InvoiceNumber, entry.ClientName, entry.ClientEmail, entry.GrandTotal,
		entry.InvoiceDate, entry.DueDate, entry.Status, entry.FollowUpValue, entry.FollowUpUnit,
		entry.LastFollowUpAt, entry.NextFollowUpAt, entry.Notes, entry.DocumentURL,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	var entry domain.TrackerEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM invoices WHERE invoice_number = $1", invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &entry, nil
}

func (r *invoiceRepo) List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices")
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var entries []domain.TrackerEntry
	err = r.db.SelectContext(ctx, &entries,
		"SELECT * FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *invoiceRepo) ListDue(ctx context.Context, now time.Time) ([]domain.TrackerEntry, error) {
	var entries []domain.TrackerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM invoices
		 WHERE status = $1 AND next_followup_at IS NOT NULL AND next_followup_at <= $2
		 ORDER BY next_followup_at ASC`,
		domain.StatusSent, now)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListDue: %w", err)
	}
	return entries, nil
}

func (r *invoiceRepo) SetStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $2, notes = $3, updated_at = $4 WHERE invoice_number = $1",
		invoiceNumber, status, notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.SetStatus: %w", err)
	}
	return requireRow(res, "invoiceRepo.SetStatus")
}

func (r *invoiceRepo) Freeze(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $2, notes = $3, next_followup_at = NULL, updated_at = $4
		 WHERE invoice_number = $1`,
		invoiceNumber, status, notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.Freeze: %w", err)
	}
	return requireRow(res, "invoiceRepo.Freeze")
}

func (r *invoiceRepo) MarkSent(ctx context.Context, invoiceNumber string, sentAt, nextDueAt time.Time, notes, documentURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices
		 SET status = $2, last_followup_at = $3, next_followup_at = $4, notes = $5,
		     document_url = $6, updated_at = $3
		 WHERE invoice_number = $1`,
		invoiceNumber, domain.StatusSent, sentAt, nextDueAt, notes, documentURL)
	if err != nil {
		return fmt.Errorf("invoiceRepo.MarkSent: %w", err)
	}
	return requireRow(res, "invoiceRepo.MarkSent")
}

func (r *invoiceRepo) AdvanceReminder(ctx context.Context, invoiceNumber string, now, nextDueAt time.Time, notes string) (bool, error) {
	// The WHERE clause is the concurrency guard: the claim only wins while
	// the row is still Sent and still due as of now, so a duplicate sweep
	// converging on the same row after the first has advanced
	// next_followup_at sees it no longer due.
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices
		 SET last_followup_at = $2, next_followup_at = $3, notes = $4, updated_at = $2
		 WHERE invoice_number = $1 AND status = $5
		   AND next_followup_at IS NOT NULL AND next_followup_at <= $2`,
		invoiceNumber, now, nextDueAt, notes, domain.StatusSent)
	if err != nil {
		return false, fmt.Errorf("invoiceRepo.AdvanceReminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("invoiceRepo.AdvanceReminder rows: %w", err)
	}
	return affected == 1, nil
}

func (r *invoiceRepo) NextInvoiceNumber(ctx context.Context, prefix string) (string, error) {
	var maxSeq int
	err := r.db.GetContext(ctx, &maxSeq,
		`SELECT COALESCE(MAX(CAST(SPLIT_PART(invoice_number, '-', 2) AS INTEGER)), 0)
		 FROM invoices
		 WHERE invoice_number ~ $1`,
		sequencePattern(prefix))
	if err != nil {
		return "", fmt.Errorf("invoiceRepo.NextInvoiceNumber: %w", err)
	}
	return fmt.Sprintf("%s-%03d", prefix, maxSeq+1), nil
}

// sequencePattern matches only numbers issued under prefix. Anchored at both
// ends so prefix INV never counts XINV rows, with the prefix quoted since it
// lands inside the regex.
func sequencePattern(prefix string) string {
	return "^" + regexp.QuoteMeta(prefix) + "-[0-9]+$"
}

func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

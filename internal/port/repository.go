package port

import (
	"context"
	"time"

	"lekha/internal/domain"
)

// InvoiceRepository persists invoice tracker rows. The tracker is the
// authoritative record of status and follow-up scheduling.
type InvoiceRepository interface {
	Create(ctx context.Context, entry *domain.TrackerEntry) error
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error)
	List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error)
	// ListDue returns rows with status Sent and next_followup_at <= now.
	ListDue(ctx context.Context, now time.Time) ([]domain.TrackerEntry, error)
	// SetStatus overwrites status and notes without touching scheduling.
	SetStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error
	// Freeze moves a row to a terminal status and clears next_followup_at.
	Freeze(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus, notes string) error
	// MarkSent records a successful dispatch: status Sent, last/next
	// follow-up timestamps, notes and the stored document location.
	MarkSent(ctx context.Context, invoiceNumber string, sentAt, nextDueAt time.Time, notes, documentURL string) error
	// AdvanceReminder atomically claims a due reminder: it updates the
	// follow-up timestamps only while the row is still Sent and due as of
	// now, and reports whether the claim won. A false return means another
	// invocation already advanced the row past now.
	AdvanceReminder(ctx context.Context, invoiceNumber string, now, nextDueAt time.Time, notes string) (bool, error)
	// NextInvoiceNumber returns the next "PREFIX-NNN" number for a prefix.
	NextInvoiceNumber(ctx context.Context, prefix string) (string, error)
}

// ItemArchiveRepository stores composed line items append-only, keyed by
// invoice number. Readers never mutate archive rows.
type ItemArchiveRepository interface {
	Append(ctx context.Context, items []domain.ArchivedItem) error
	ListByInvoice(ctx context.Context, invoiceNumber string) ([]domain.ArchivedItem, error)
}

// ClientRepository reads and writes the client master.
type ClientRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
}

// ProductRepository reads and writes the product master.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

// SellerProfileRepository loads the single-row company profile.
type SellerProfileRepository interface {
	Get(ctx context.Context) (*domain.SellerProfile, error)
	Upsert(ctx context.Context, profile *domain.SellerProfile) error
}

// StatsRepository aggregates tracker rows for the dashboard.
type StatsRepository interface {
	GetStats(ctx context.Context, now time.Time) (*domain.Stats, error)
}

// AuditRepository appends to the audit log.
type AuditRepository interface {
	Append(ctx context.Context, action, detail string) error
	List(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

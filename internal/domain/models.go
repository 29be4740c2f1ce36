package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Party identifies one side of an invoice (the seller or the buyer).
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// LineItem is a single priced line on an invoice. Exactly one of
// (CGST+SGST) or IGST is non-zero, depending on the place of supply.
type LineItem struct {
	Serial      int             `json:"serial"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	Taxable     decimal.Decimal `json:"taxable"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceTotals holds the column-wise sums across line items.
type InvoiceTotals struct {
	Taxable       decimal.Decimal `json:"taxable"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountInWords string          `json:"amount_in_words"`
}

// Invoice is the fully composed, render-ready invoice document.
type Invoice struct {
	Number  string        `json:"number"`
	Date    time.Time     `json:"date"`
	DueDate time.Time     `json:"due_date"`
	Seller  Party         `json:"seller"`
	Buyer   Party         `json:"buyer"`
	Items   []LineItem    `json:"items"`
	Totals  InvoiceTotals `json:"totals"`
}

// TrackerEntry is the persisted lifecycle row for an invoice. It is the
// single source of truth for status and follow-up scheduling across sweeps.
type TrackerEntry struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	ClientName     string          `db:"client_name" json:"client_name"`
	ClientEmail    string          `db:"client_email" json:"client_email"`
	GrandTotal     decimal.Decimal `db:"grand_total" json:"grand_total"`
	InvoiceDate    time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	Status         InvoiceStatus   `db:"status" json:"status"`
	FollowUpValue  int             `db:"followup_value" json:"followup_value"`
	FollowUpUnit   FollowUpUnit    `db:"followup_unit" json:"followup_unit"`
	LastFollowUpAt *time.Time      `db:"last_followup_at" json:"last_followup_at"`
	NextFollowUpAt *time.Time      `db:"next_followup_at" json:"next_followup_at"`
	Notes          string          `db:"notes" json:"notes"`
	DocumentURL    string          `db:"document_url" json:"document_url"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// ArchivedItem is an append-only copy of a composed line item, keyed by
// invoice number so the invoice can be reconstructed later.
type ArchivedItem struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	Serial        int             `db:"serial" json:"serial"`
	ItemName      string          `db:"item_name" json:"item_name"`
	HSNCode       string          `db:"hsn_code" json:"hsn_code"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	Rate          decimal.Decimal `db:"rate" json:"rate"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Taxable       decimal.Decimal `db:"taxable" json:"taxable"`
	GSTRate       decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	LineTotal     decimal.Decimal `db:"line_total" json:"line_total"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Client is a row in the client master.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Address   string    `db:"address" json:"address"`
	State     string    `db:"state" json:"state"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product is a row in the product master, supplying line-item defaults.
type Product struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	HSNCode     string          `db:"hsn_code" json:"hsn_code"`
	Rate        decimal.Decimal `db:"rate" json:"rate"`
	GSTRate     decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// SellerProfile is the single-row company profile used as the seller party
// on every invoice. It is loaded once per operation, never mid-algorithm.
type SellerProfile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	Address     string    `db:"address" json:"address"`
	GSTIN       string    `db:"gstin" json:"gstin"`
	Email       string    `db:"email" json:"email"`
	State       string    `db:"state" json:"state"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Party returns the profile as an invoice Party.
func (p *SellerProfile) Party() Party {
	return Party{
		Name:    p.CompanyName,
		Email:   p.Email,
		GSTIN:   p.GSTIN,
		Address: p.Address,
		State:   p.State,
	}
}

// AuditEntry is an append-only audit log row. Sweep failures are visible
// only here, never interactively.
type AuditEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Action    string    `db:"action" json:"action"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Stats holds the dashboard aggregates over the invoice tracker.
type Stats struct {
	TotalInvoiced  decimal.Decimal `db:"total_invoiced" json:"total_invoiced"`
	TotalCollected decimal.Decimal `db:"total_collected" json:"total_collected"`
	Outstanding    decimal.Decimal `db:"outstanding" json:"outstanding"`
	OverdueCount   int             `db:"overdue_count" json:"overdue_count"`
}

// Package compose turns raw line-item input into a normalized, tax-correct
// invoice. Composition is pure: the catalog lookup is the only side channel
// and nothing here persists state.
package compose

import (
	"time"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/tax"
	"lekha/internal/words"
)

// Header carries the form-level invoice fields.
type Header struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	Buyer         domain.Party
}

// RawLine is one unprocessed input row. Name is required; HSNCode, Rate and
// GSTRate fall back to the product catalog when left empty.
type RawLine struct {
	Name     string
	HSNCode  string
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	Discount decimal.Decimal
	GSTRate  decimal.Decimal
}

// Catalog is an in-memory product lookup keyed by exact item name.
type Catalog map[string]domain.Product

// NewCatalog builds a Catalog from product rows with first-match-wins
// semantics for duplicate names.
func NewCatalog(products []domain.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		if _, exists := c[p.Name]; !exists {
			c[p.Name] = p
		}
	}
	return c
}

// Compose builds a normalized Invoice from header and raw lines. Lines with
// an empty item name are skipped. It fails with a ValidationError when the
// buyer name is blank or no usable lines remain; a missing catalog entry is
// not an error and simply yields empty defaults.
func Compose(header Header, lines []RawLine, catalog Catalog, seller domain.Party) (*domain.Invoice, error) {
	if header.Buyer.Name == "" {
		return nil, domain.NewValidationError("client_name", "client name is required")
	}

	inv := &domain.Invoice{
		Number:  header.InvoiceNumber,
		Date:    header.InvoiceDate,
		DueDate: header.DueDate,
		Seller:  seller,
		Buyer:   header.Buyer,
	}

	serial := 0
	for _, raw := range lines {
		if raw.Name == "" {
			continue
		}
		serial++

		product, known := catalog[raw.Name]

		item := domain.LineItem{
			Serial:   serial,
			Name:     raw.Name,
			HSNCode:  raw.HSNCode,
			Quantity: raw.Quantity,
			Rate:     raw.Rate,
			Discount: raw.Discount,
			GSTRate:  raw.GSTRate,
		}
		if known {
			item.Description = product.Description
			if item.HSNCode == "" {
				item.HSNCode = product.HSNCode
			}
			if item.Rate.IsZero() {
				item.Rate = product.Rate
			}
			if item.GSTRate.IsZero() {
				item.GSTRate = product.GSTRate
			}
		}

		item.Taxable = item.Quantity.Mul(item.Rate).Sub(item.Discount).Round(2)
		split := tax.Resolve(item.Taxable, item.GSTRate, inv.Buyer.State, inv.Seller.State)
		item.CGST, item.SGST, item.IGST = split.CGST, split.SGST, split.IGST
		item.LineTotal = item.Taxable.Add(item.CGST).Add(item.SGST).Add(item.IGST)

		inv.Items = append(inv.Items, item)
	}

	if len(inv.Items) == 0 {
		return nil, domain.NewValidationError("items", "at least one line item is required")
	}

	inv.Totals = sumTotals(inv.Items)
	return inv, nil
}

// FromArchive rebuilds an Invoice from previously archived line items.
// Computed amounts are taken from the archive as-is; only the description
// is re-fetched from the catalog, matching the original composition.
func FromArchive(header Header, archived []domain.ArchivedItem, catalog Catalog, seller domain.Party) *domain.Invoice {
	inv := &domain.Invoice{
		Number:  header.InvoiceNumber,
		Date:    header.InvoiceDate,
		DueDate: header.DueDate,
		Seller:  seller,
		Buyer:   header.Buyer,
	}

	for _, a := range archived {
		item := domain.LineItem{
			Serial:    a.Serial,
			Name:      a.ItemName,
			HSNCode:   a.HSNCode,
			Quantity:  a.Quantity,
			Rate:      a.Rate,
			Discount:  a.Discount,
			Taxable:   a.Taxable,
			GSTRate:   a.GSTRate,
			CGST:      a.CGST,
			SGST:      a.SGST,
			IGST:      a.IGST,
			LineTotal: a.LineTotal,
		}
		if product, ok := catalog[a.ItemName]; ok {
			item.Description = product.Description
		}
		inv.Items = append(inv.Items, item)
	}

	inv.Totals = sumTotals(inv.Items)
	return inv
}

func sumTotals(items []domain.LineItem) domain.InvoiceTotals {
	t := domain.InvoiceTotals{
		Taxable: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero,
	}
	for _, item := range items {
		t.Taxable = t.Taxable.Add(item.Taxable)
		t.CGST = t.CGST.Add(item.CGST)
		t.SGST = t.SGST.Add(item.SGST)
		t.IGST = t.IGST.Add(item.IGST)
	}
	t.GrandTotal = t.Taxable.Add(t.CGST).Add(t.SGST).Add(t.IGST)
	t.AmountInWords = words.ToWords(t.GrandTotal.Round(0).IntPart())
	return t
}

// Package tax decides how GST on a taxable value splits between the
// central, state and integrated components.
package tax

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// Split is the resolved tax breakup for a single taxable value. Either
// CGST+SGST or IGST is populated, never both.
type Split struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Resolve splits tax on taxable at gstRate (a fraction, e.g. 0.18).
// Intra-state supply (buyer and seller in the same state) levies CGST and
// SGST at half the rate each; inter-state supply levies IGST at the full
// rate. States are canonicalized before comparison. A zero gstRate yields
// a zero split.
func Resolve(taxable, gstRate decimal.Decimal, buyerState, sellerState string) Split {
	total := taxable.Mul(gstRate).Round(2)

	if CanonicalState(buyerState) == CanonicalState(sellerState) {
		half := taxable.Mul(gstRate).Div(two).Round(2)
		return Split{CGST: half, SGST: half, IGST: decimal.Zero}
	}
	return Split{CGST: decimal.Zero, SGST: decimal.Zero, IGST: total}
}

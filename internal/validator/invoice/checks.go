// Package invoice verifies the arithmetic and logical invariants of a
// composed invoice before it is rendered or dispatched.
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"lekha/internal/domain"
)

// tolerance absorbs per-line rounding of the half-rate CGST/SGST split.
var tolerance = decimal.RequireFromString("0.01")

// CheckResult is the outcome of one invariant check against one field.
type CheckResult struct {
	Passed    bool
	FieldPath string
	Expected  string
	Actual    string
	Message   string
}

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func mathCheck(passed bool, fieldPath string, expected, actual decimal.Decimal, rule string) CheckResult {
	msg := fmt.Sprintf("%s: %s matches", rule, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s mismatch (expected %s, got %s)", rule, fieldPath, expected, actual)
	}
	return CheckResult{
		Passed: passed, FieldPath: fieldPath,
		Expected: expected.StringFixed(2), Actual: actual.StringFixed(2), Message: msg,
	}
}

// Verify runs every invariant check and returns all results.
func Verify(inv *domain.Invoice) []CheckResult {
	var results []CheckResult

	for i := range inv.Items {
		item := &inv.Items[i]

		fp := fmt.Sprintf("items[%d].taxable", i)
		expected := item.Quantity.Mul(item.Rate).Sub(item.Discount)
		results = append(results, mathCheck(approxEqual(item.Taxable, expected), fp, expected, item.Taxable, "Taxable Value"))

		fp = fmt.Sprintf("items[%d].line_total", i)
		expected = item.Taxable.Add(item.CGST).Add(item.SGST).Add(item.IGST)
		results = append(results, mathCheck(approxEqual(item.LineTotal, expected), fp, expected, item.LineTotal, "Line Total"))

		fp = fmt.Sprintf("items[%d]", i)
		intra := item.CGST.IsPositive() || item.SGST.IsPositive()
		inter := item.IGST.IsPositive()
		exclusive := !(intra && inter)
		msg := "Tax Exclusivity: one of CGST/SGST or IGST applies"
		if !exclusive {
			msg = fmt.Sprintf("Tax Exclusivity: %s carries both CGST/SGST and IGST", fp)
		}
		results = append(results, CheckResult{Passed: exclusive, FieldPath: fp, Message: msg})
	}

	gt := inv.Totals.Taxable.Add(inv.Totals.CGST).Add(inv.Totals.SGST).Add(inv.Totals.IGST)
	results = append(results, mathCheck(approxEqual(inv.Totals.GrandTotal, gt), "totals.grand_total", gt, inv.Totals.GrandTotal, "Grand Total"))

	return results
}

// Violations filters Verify's results down to the failed checks.
func Violations(inv *domain.Invoice) []CheckResult {
	var failed []CheckResult
	for _, r := range Verify(inv) {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

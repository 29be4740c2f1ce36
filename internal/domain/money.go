package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount with Indian digit grouping and two decimal
// places, e.g. 123456 -> "1,23,456.00".
func FormatINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	// Indian grouping: rightmost group of three, then groups of two.
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}

	out := intPart + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

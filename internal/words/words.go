// Package words renders monetary amounts as Indian-numbering-system words
// (crore, lakh, thousand, hundred) for the invoice "amount in words" field.
package words

import "strings"

var unitWords = map[int]string{
	1: "One", 2: "Two", 3: "Three", 4: "Four", 5: "Five",
	6: "Six", 7: "Seven", 8: "Eight", 9: "Nine", 10: "Ten",
	11: "Eleven", 12: "Twelve", 13: "Thirteen", 14: "Fourteen",
	15: "Fifteen", 16: "Sixteen", 17: "Seventeen", 18: "Eighteen",
	19: "Nineteen", 20: "Twenty", 30: "Thirty", 40: "Forty",
	50: "Fifty", 60: "Sixty", 70: "Seventy", 80: "Eighty", 90: "Ninety",
}

// ToWords converts a non-negative amount of whole rupees into words,
// e.g. 150000 -> "One Lakh Fifty Thousand Rupees Only". Amounts are
// whole currency units; paise are not rendered. Values above 99,99,99,999
// overflow the nine supported digit positions and render no quantity words.
func ToWords(amount int64) string {
	if amount == 0 {
		return "Zero Rupees Only"
	}

	var parts []string

	if amount > 0 && amount <= 999999999 {
		// Nine fixed digit positions: CC,LL,TT,H,TU (crore pair, lakh
		// pair, thousand pair, hundreds, tens+units).
		var digits [9]int
		n := amount
		for i := 8; i >= 0; i-- {
			digits[i] = int(n % 10)
			n /= 10
		}

		// Fold a leading 1 in each two-digit group into the 10-19 word
		// so "One Ten" can never be emitted.
		for _, i := range []int{0, 2, 4, 7} {
			if digits[i] == 1 {
				digits[i+1] += 10
				digits[i] = 0
			}
		}

		for i := 0; i < 9; i++ {
			value := digits[i]
			if i == 0 || i == 2 || i == 4 || i == 7 {
				value = digits[i] * 10
			}
			if value != 0 {
				parts = append(parts, unitWords[value])
			}
			switch {
			case (i == 1 && value != 0) || (i == 0 && value != 0 && digits[i+1] == 0):
				parts = append(parts, "Crore")
			case (i == 3 && value != 0) || (i == 2 && value != 0 && digits[i+1] == 0):
				parts = append(parts, "Lakh")
			case (i == 5 && value != 0) || (i == 4 && value != 0 && digits[i+1] == 0):
				parts = append(parts, "Thousand")
			case i == 6 && value != 0 && digits[7] != 0 && digits[8] != 0:
				parts = append(parts, "Hundred and")
			case i == 6 && value != 0:
				parts = append(parts, "Hundred")
			}
		}
	}

	parts = append(parts, "Rupees Only")
	return strings.Join(parts, " ")
}

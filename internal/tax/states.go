package tax

import (
	"fmt"
	"sort"
	"strings"
)

// State is one entry in the GST state master.
type State struct {
	Code int
	Name string
}

// States is the Indian GST state/UT master list.
var States = []State{
	{1, "Jammu and Kashmir"},
	{2, "Himachal Pradesh"},
	{3, "Punjab"},
	{4, "Chandigarh"},
	{5, "Uttarakhand"},
	{6, "Haryana"},
	{7, "Delhi"},
	{8, "Rajasthan"},
	{9, "Uttar Pradesh"},
	{10, "Bihar"},
	{11, "Sikkim"},
	{12, "Arunachal Pradesh"},
	{13, "Nagaland"},
	{14, "Manipur"},
	{15, "Mizoram"},
	{16, "Tripura"},
	{17, "Meghalaya"},
	{18, "Assam"},
	{19, "West Bengal"},
	{20, "Jharkhand"},
	{21, "Odisha"},
	{22, "Chhattisgarh"},
	{23, "Madhya Pradesh"},
	{24, "Gujarat"},
	{26, "Dadra and Nagar Haveli and Daman and Diu"},
	{27, "Maharashtra"},
	{29, "Karnataka"},
	{30, "Goa"},
	{31, "Lakshadweep"},
	{32, "Kerala"},
	{33, "Tamil Nadu"},
	{34, "Puducherry"},
	{35, "Andaman and Nicobar Islands"},
	{36, "Telangana"},
	{37, "Andhra Pradesh"},
	{38, "Ladakh"},
	{97, "Other Territory"},
	{99, "Centre Jurisdiction"},
}

// Label returns the "Name (Code)" display form with a zero-padded code,
// the same format the state dropdowns use.
func (s State) Label() string {
	return fmt.Sprintf("%s (%02d)", s.Name, s.Code)
}

// StateLabels returns the alphabetically sorted dropdown labels.
func StateLabels() []string {
	labels := make([]string, len(States))
	for i, s := range States {
		labels[i] = s.Label()
	}
	sort.Strings(labels)
	return labels
}

var (
	codeByName = func() map[string]int {
		m := make(map[string]int, len(States))
		for _, s := range States {
			m[strings.ToLower(s.Name)] = s.Code
		}
		return m
	}()
	validCodes = func() map[string]bool {
		m := make(map[string]bool, len(States))
		for _, s := range States {
			m[fmt.Sprintf("%02d", s.Code)] = true
		}
		return m
	}()
)

// CanonicalState normalizes a free-text state value for comparison.
// The raw value is trimmed, a trailing parenthesized token is stripped,
// and the result is resolved to the two-digit GST code via the state
// master when possible; unknown values fall back to their case-folded
// text. "Delhi", "delhi ", "Delhi (07)" and "07" all canonicalize to "07".
func CanonicalState(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip one trailing "(...)" suffix, keeping its content as a code hint.
	var hint string
	if i := strings.LastIndex(s, "("); i >= 0 && strings.HasSuffix(s, ")") {
		hint = strings.TrimSpace(s[i+1 : len(s)-1])
		s = strings.TrimSpace(s[:i])
	}

	if code, ok := codeByName[strings.ToLower(s)]; ok {
		return fmt.Sprintf("%02d", code)
	}
	if padded := padCode(s); validCodes[padded] {
		return padded
	}
	if padded := padCode(hint); validCodes[padded] {
		return padded
	}
	return strings.ToLower(s)
}

func padCode(s string) string {
	if len(s) == 1 && s >= "0" && s <= "9" {
		return "0" + s
	}
	return s
}

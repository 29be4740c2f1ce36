package domain

import "time"

// InvoiceStatus is the lifecycle state of a tracked invoice. The string
// values match the tracker's status column exactly.
type InvoiceStatus string

const (
	StatusDraft        InvoiceStatus = "Draft"
	StatusReady        InvoiceStatus = "Ready"
	StatusSent         InvoiceStatus = "Sent"
	StatusPaid         InvoiceStatus = "Paid"
	StatusStopFollowup InvoiceStatus = "Stop Follow-up"
)

// AllStatuses lists every valid status value.
var AllStatuses = []InvoiceStatus{
	StatusDraft, StatusReady, StatusSent, StatusPaid, StatusStopFollowup,
}

// ParseInvoiceStatus maps a raw status string onto the closed enum.
// Any other value is not a valid state.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Terminal reports whether the status ends the follow-up cadence. The
// sweeper skips terminal rows unconditionally and next_followup_at is
// never recomputed once a row is terminal.
func (s InvoiceStatus) Terminal() bool {
	return s == StatusPaid || s == StatusStopFollowup
}

// statusTransitions is the explicit transition table. Sent→Sent is the
// reminder re-send; every status may move to Paid or Stop Follow-up.
var statusTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft: {StatusReady, StatusSent, StatusPaid, StatusStopFollowup},
	StatusReady: {StatusSent, StatusPaid, StatusStopFollowup},
	StatusSent:  {StatusSent, StatusPaid, StatusStopFollowup},
	StatusPaid:  {},
	StatusStopFollowup: {},
}

// CanTransition reports whether from→to appears in the transition table.
func CanTransition(from, to InvoiceStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FollowUpUnit is the unit of the reminder cadence interval.
type FollowUpUnit string

const (
	UnitMinutes FollowUpUnit = "Minutes"
	UnitHours   FollowUpUnit = "Hours"
	UnitDays    FollowUpUnit = "Days"
)

// ParseFollowUpUnit maps a raw unit string onto the closed enum.
func ParseFollowUpUnit(s string) (FollowUpUnit, error) {
	switch FollowUpUnit(s) {
	case UnitMinutes, UnitHours, UnitDays:
		return FollowUpUnit(s), nil
	}
	return "", ErrInvalidFollowUpUnit
}

// Interval converts value expressed in this unit into a duration.
func (u FollowUpUnit) Interval(value int) time.Duration {
	switch u {
	case UnitMinutes:
		return time.Duration(value) * time.Minute
	case UnitHours:
		return time.Duration(value) * time.Hour
	default:
		return time.Duration(value) * 24 * time.Hour
	}
}

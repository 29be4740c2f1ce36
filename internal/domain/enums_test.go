package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseInvoiceStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseInvoiceStatus("Pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseInvoiceStatus("sent")
	assert.ErrorIs(t, err, ErrInvalidStatus, "status values are case sensitive")
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusPaid.Terminal())
	assert.True(t, StatusStopFollowup.Terminal())
	assert.False(t, StatusDraft.Terminal())
	assert.False(t, StatusReady.Terminal())
	assert.False(t, StatusSent.Terminal())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to InvoiceStatus }{
		{StatusDraft, StatusReady},
		{StatusDraft, StatusSent},
		{StatusDraft, StatusPaid},
		{StatusDraft, StatusStopFollowup},
		{StatusReady, StatusSent},
		{StatusSent, StatusSent},
		{StatusSent, StatusPaid},
		{StatusSent, StatusStopFollowup},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to InvoiceStatus }{
		{StatusPaid, StatusSent},
		{StatusPaid, StatusDraft},
		{StatusStopFollowup, StatusSent},
		{StatusStopFollowup, StatusPaid},
		{StatusSent, StatusDraft},
		{StatusReady, StatusDraft},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestFollowUpUnitInterval(t *testing.T) {
	assert.Equal(t, 30*time.Minute, UnitMinutes.Interval(30))
	assert.Equal(t, 6*time.Hour, UnitHours.Interval(6))
	assert.Equal(t, 72*time.Hour, UnitDays.Interval(3))
}

func TestParseFollowUpUnit(t *testing.T) {
	for _, u := range []string{"Minutes", "Hours", "Days"} {
		parsed, err := ParseFollowUpUnit(u)
		require.NoError(t, err)
		assert.Equal(t, FollowUpUnit(u), parsed)
	}

	_, err := ParseFollowUpUnit("Weeks")
	assert.ErrorIs(t, err, ErrInvalidFollowUpUnit)
}

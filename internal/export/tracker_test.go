package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
)

func sampleEntries() []domain.TrackerEntry {
	next := time.Date(2025, 4, 4, 9, 0, 0, 0, time.UTC)
	return []domain.TrackerEntry{
		{
			InvoiceNumber:  "INV-001",
			ClientName:     "Globex Pvt Ltd",
			ClientEmail:    "accounts@globex.test",
			GrandTotal:     decimal.RequireFromString("2065"),
			InvoiceDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			DueDate:        time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC),
			Status:         domain.StatusSent,
			FollowUpValue:  3,
			FollowUpUnit:   domain.UnitDays,
			NextFollowUpAt: &next,
			Notes:          "Initial Invoice Sent",
		},
		{
			InvoiceNumber: "INV-002",
			ClientName:    "Initech",
			GrandTotal:    decimal.RequireFromString("500.5"),
			InvoiceDate:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			DueDate:       time.Date(2025, 4, 17, 0, 0, 0, 0, time.UTC),
			Status:        domain.StatusDraft,
			Notes:         "Draft saved manually",
		},
	}
}

func TestWriteTrackerCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrackerCSV(&buf, sampleEntries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, trackerHeader, records[0])
	assert.Equal(t, "INV-001", records[1][0])
	assert.Equal(t, "2065.00", records[1][3])
	assert.Equal(t, "01-04-2025", records[1][4])
	assert.Equal(t, "Sent", records[1][6])
	assert.Equal(t, "04-04-2025 09:00", records[1][10])
	assert.Equal(t, "", records[2][10], "draft has no next follow-up")
	assert.Equal(t, "Draft saved manually", records[2][11])
}

func TestWriteTrackerXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrackerXLSX(&buf, sampleEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoice Tracker")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Invoice No", rows[0][0])
	assert.Equal(t, "INV-002", rows[2][0])
	assert.Equal(t, "500.50", rows[2][3])
}

func TestWriteTrackerCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrackerCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

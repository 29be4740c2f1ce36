package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/compose"
	"lekha/internal/config"
	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/service"
	"lekha/mocks"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type lifecycleFixture struct {
	invoices *mocks.MockInvoiceRepo
	archive  *mocks.MockItemArchiveRepo
	clients  *mocks.MockClientRepo
	products *mocks.MockProductRepo
	profile  *mocks.MockSellerProfileRepo
	audit    *mocks.MockAuditRepo
	renderer *mocks.MockDocumentRenderer
	storage  *mocks.MockObjectStorage
	sender   *mocks.MockEmailSender
	svc      service.LifecycleService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		invoices: new(mocks.MockInvoiceRepo),
		archive:  new(mocks.MockItemArchiveRepo),
		clients:  new(mocks.MockClientRepo),
		products: new(mocks.MockProductRepo),
		profile:  new(mocks.MockSellerProfileRepo),
		audit:    new(mocks.MockAuditRepo),
		renderer: new(mocks.MockDocumentRenderer),
		storage:  new(mocks.MockObjectStorage),
		sender:   new(mocks.MockEmailSender),
	}
	f.svc = service.NewLifecycleService(
		f.invoices, f.archive, f.clients, f.products, f.profile,
		f.audit, f.renderer, f.storage, f.sender,
		config.InvoiceConfig{
			NumberPrefix:   "INV",
			DefaultDueDays: 15,
			FollowUpValue:  3,
			FollowUpUnit:   "Days",
		},
		config.S3Config{Bucket: "test-bucket", Prefix: "invoices-sent"},
	)
	return f
}

func (f *lifecycleFixture) expectSellerProfile() {
	f.profile.On("Get", mock.Anything).Return(&domain.SellerProfile{
		CompanyName: "Acme Traders",
		Email:       "billing@acme.test",
		GSTIN:       "29ABCDE1234F1Z5",
		State:       "Karnataka",
	}, nil)
}

func (f *lifecycleFixture) expectDispatchSuccess() {
	f.renderer.On("Render", mock.Anything, mock.Anything).Return(&port.RenderedDocument{
		FileName:    "Invoice_INV-001_Globex.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.7"),
	}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{
		Location: "https://test-bucket.s3.amazonaws.com/invoices-sent/INV-001/Invoice_INV-001_Globex.pdf",
	}, nil)
	f.sender.On("SendInvoice", mock.Anything, mock.Anything).Return(nil)
}

func createInput(mode string) service.CreateInvoiceInput {
	return service.CreateInvoiceInput{
		Mode:        mode,
		ClientName:  "Globex",
		ClientEmail: "accounts@globex.test",
		ClientState: "Karnataka",
		Items: []compose.RawLine{
			{Name: "Consulting", Quantity: dec("1"), Rate: dec("1000"), GSTRate: dec("0.18")},
		},
	}
}

func sentEntry(number string) *domain.TrackerEntry {
	next := time.Now().UTC().Add(72 * time.Hour)
	last := time.Now().UTC()
	return &domain.TrackerEntry{
		InvoiceNumber:  number,
		ClientName:     "Globex",
		ClientEmail:    "accounts@globex.test",
		GrandTotal:     dec("1180"),
		Status:         domain.StatusSent,
		FollowUpValue:  3,
		FollowUpUnit:   domain.UnitDays,
		LastFollowUpAt: &last,
		NextFollowUpAt: &next,
		Notes:          "Initial Invoice Sent",
	}
}

func TestCreateInvoiceDraft(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("NextInvoiceNumber", mock.Anything, "INV").Return("INV-001", nil)
	f.archive.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.TrackerEntry) bool {
		return e.Status == domain.StatusDraft &&
			e.Notes == "Draft saved manually" &&
			e.InvoiceNumber == "INV-001" &&
			e.NextFollowUpAt == nil
	})).Return(nil)

	entry, err := f.svc.CreateInvoice(context.Background(), createInput("draft"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, entry.Status)
	assert.True(t, entry.GrandTotal.Equal(dec("1180")))
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
	f.invoices.AssertExpectations(t)
}

func TestCreateInvoiceSend(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.expectDispatchSuccess()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("NextInvoiceNumber", mock.Anything, "INV").Return("INV-001", nil)
	f.archive.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("MarkSent", mock.Anything, "INV-001",
		mock.Anything, mock.Anything, "Initial Invoice Sent", mock.Anything).Return(nil)
	f.audit.On("Append", mock.Anything, "Email Sent", mock.Anything).Return(nil)
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(sentEntry("INV-001"), nil)

	entry, err := f.svc.CreateInvoice(context.Background(), createInput("send"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSent, entry.Status)
	assert.Equal(t, "Initial Invoice Sent", entry.Notes)
	f.invoices.AssertExpectations(t)
	f.sender.AssertExpectations(t)
}

func TestCreateInvoiceSendDeliveryFailure(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("NextInvoiceNumber", mock.Anything, "INV").Return("INV-001", nil)
	f.archive.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return(&port.RenderedDocument{
		FileName: "Invoice_INV-001_Globex.pdf", Content: []byte("%PDF-1.7"),
	}, nil)
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "loc"}, nil)
	f.sender.On("SendInvoice", mock.Anything, mock.Anything).Return(errors.New("ses throttled"))
	f.audit.On("Append", mock.Anything, "Email Failed", mock.Anything).Return(nil)

	entry, err := f.svc.CreateInvoice(context.Background(), createInput("send"))

	var deliveryErr *domain.DeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, "email", deliveryErr.Stage)
	// The row was persisted as Draft and never advanced.
	assert.Equal(t, domain.StatusDraft, entry.Status)
	f.invoices.AssertNotCalled(t, "MarkSent",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateInvoiceValidationFailureWritesNothing(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("NextInvoiceNumber", mock.Anything, "INV").Return("INV-001", nil)

	input := createInput("draft")
	input.Items = nil

	_, err := f.svc.CreateInvoice(context.Background(), input)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	f.archive.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvoiceDuplicateNumberWritesNoItems(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateInvoiceNumber)

	input := createInput("draft")
	input.InvoiceNumber = "INV-001"

	_, err := f.svc.CreateInvoice(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	// A failed insert must not leave archive rows under the existing
	// invoice's number, or its next reconstruction doubles up.
	f.archive.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCreateInvoiceRejectsUnknownUnit(t *testing.T) {
	f := newLifecycleFixture()

	input := createInput("draft")
	input.FollowUpUnit = "Fortnights"

	_, err := f.svc.CreateInvoice(context.Background(), input)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "followup_unit", validationErr.Field)
}

func TestSendFromHistory(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.expectDispatchSuccess()

	entry := sentEntry("INV-001")
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(entry, nil)
	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{
		Name: "Globex", Email: "accounts@globex.test", State: "Karnataka",
	}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{{
		InvoiceNumber: "INV-001", Serial: 1, ItemName: "Consulting",
		Quantity: dec("1"), Rate: dec("1000"), Taxable: dec("1000"),
		GSTRate: dec("0.18"), CGST: dec("90"), SGST: dec("90"), LineTotal: dec("1180"),
	}}, nil)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("MarkSent", mock.Anything, "INV-001",
		mock.Anything, mock.Anything, "Manually Sent", mock.Anything).Return(nil)
	f.audit.On("Append", mock.Anything, "Email Sent", mock.Anything).Return(nil)

	_, err := f.svc.SendFromHistory(context.Background(), "INV-001")
	require.NoError(t, err)

	f.invoices.AssertExpectations(t)
	f.sender.AssertExpectations(t)
}

func TestSendFromHistoryEmptyArchive(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()

	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(sentEntry("INV-001"), nil)
	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{Name: "Globex"}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{}, nil)

	_, err := f.svc.SendFromHistory(context.Background(), "INV-001")

	var reconstructionErr *domain.ReconstructionError
	require.ErrorAs(t, err, &reconstructionErr)
	assert.Equal(t, "INV-001", reconstructionErr.InvoiceNumber)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestSendFromHistoryMissingClient(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()

	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(sentEntry("INV-001"), nil)
	f.clients.On("GetByName", mock.Anything, "Globex").Return(nil, domain.ErrClientNotFound)

	_, err := f.svc.SendFromHistory(context.Background(), "INV-001")

	var reconstructionErr *domain.ReconstructionError
	require.ErrorAs(t, err, &reconstructionErr)
}

func TestSendFromHistoryTerminalStatus(t *testing.T) {
	f := newLifecycleFixture()

	entry := sentEntry("INV-001")
	entry.Status = domain.StatusPaid
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(entry, nil)

	_, err := f.svc.SendFromHistory(context.Background(), "INV-001")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChangeStatusToPaidFreezes(t *testing.T) {
	f := newLifecycleFixture()

	entry := sentEntry("INV-001")
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(entry, nil)
	f.invoices.On("Freeze", mock.Anything, "INV-001", domain.StatusPaid, entry.Notes).Return(nil)
	f.audit.On("Append", mock.Anything, "Status Changed", mock.Anything).Return(nil)

	_, err := f.svc.ChangeStatus(context.Background(), "INV-001", domain.StatusPaid)
	require.NoError(t, err)

	f.invoices.AssertExpectations(t)
}

func TestChangeStatusFromTerminalRejected(t *testing.T) {
	f := newLifecycleFixture()

	entry := sentEntry("INV-001")
	entry.Status = domain.StatusStopFollowup
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(entry, nil)

	_, err := f.svc.ChangeStatus(context.Background(), "INV-001", domain.StatusSent)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	f.invoices.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusReadyRevertsToDraftOnFailure(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()

	draft := sentEntry("INV-001")
	draft.Status = domain.StatusDraft
	draft.Notes = "Draft saved manually"
	ready := *draft
	ready.Status = domain.StatusReady

	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(draft, nil).Once()
	f.invoices.On("SetStatus", mock.Anything, "INV-001", domain.StatusReady, draft.Notes).Return(nil).Once()
	f.invoices.On("GetByNumber", mock.Anything, "INV-001").Return(&ready, nil).Once()
	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{Name: "Globex"}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{}, nil)
	f.invoices.On("SetStatus", mock.Anything, "INV-001", domain.StatusDraft, draft.Notes).Return(nil).Once()
	f.audit.On("Append", mock.Anything, "Send Failed", mock.Anything).Return(nil)

	_, err := f.svc.ChangeStatus(context.Background(), "INV-001", domain.StatusReady)

	var reconstructionErr *domain.ReconstructionError
	require.ErrorAs(t, err, &reconstructionErr)
	f.invoices.AssertExpectations(t)
}

func TestSendReminder(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.expectDispatchSuccess()

	entry := sentEntry("INV-001")
	now := time.Now().UTC()

	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{
		Name: "Globex", State: "Karnataka",
	}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{{
		InvoiceNumber: "INV-001", Serial: 1, ItemName: "Consulting",
		Quantity: dec("1"), Rate: dec("1000"), Taxable: dec("1000"),
		GSTRate: dec("0.18"), CGST: dec("90"), SGST: dec("90"), LineTotal: dec("1180"),
	}}, nil)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("AdvanceReminder", mock.Anything, "INV-001",
		now, now.Add(72*time.Hour), "Auto-Reminder Sent").Return(true, nil)
	f.audit.On("Append", mock.Anything, "Reminder Sent", "INV-001").Return(nil)

	err := f.svc.SendReminder(context.Background(), entry, now)
	require.NoError(t, err)

	f.sender.AssertExpectations(t)
	f.invoices.AssertExpectations(t)
}

func TestSendReminderLostClaimIsIdempotent(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()

	entry := sentEntry("INV-001")
	now := time.Now().UTC()

	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{Name: "Globex"}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{{
		InvoiceNumber: "INV-001", Serial: 1, ItemName: "Consulting",
		Quantity: dec("1"), Rate: dec("1000"), Taxable: dec("1000"),
		GSTRate: dec("0.18"), CGST: dec("90"), SGST: dec("90"), LineTotal: dec("1180"),
	}}, nil)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	// Another sweep already advanced the row past now.
	f.invoices.On("AdvanceReminder", mock.Anything, "INV-001",
		mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	err := f.svc.SendReminder(context.Background(), entry, now)

	assert.ErrorIs(t, err, domain.ErrReminderNotDue)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	f.sender.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
}

func TestSendReminderSkipsNonSent(t *testing.T) {
	f := newLifecycleFixture()

	entry := sentEntry("INV-001")
	entry.Status = domain.StatusPaid

	err := f.svc.SendReminder(context.Background(), entry, time.Now().UTC())

	assert.ErrorIs(t, err, domain.ErrReminderNotDue)
}

func TestSendReminderHoursCadence(t *testing.T) {
	f := newLifecycleFixture()
	f.expectSellerProfile()
	f.expectDispatchSuccess()

	entry := sentEntry("INV-001")
	entry.FollowUpValue = 6
	entry.FollowUpUnit = domain.UnitHours
	now := time.Now().UTC()

	f.clients.On("GetByName", mock.Anything, "Globex").Return(&domain.Client{Name: "Globex", State: "Karnataka"}, nil)
	f.archive.On("ListByInvoice", mock.Anything, "INV-001").Return([]domain.ArchivedItem{{
		InvoiceNumber: "INV-001", Serial: 1, ItemName: "Consulting",
		Quantity: dec("1"), Rate: dec("1000"), Taxable: dec("1000"),
		GSTRate: dec("0.18"), CGST: dec("90"), SGST: dec("90"), LineTotal: dec("1180"),
	}}, nil)
	f.products.On("List", mock.Anything).Return([]domain.Product{}, nil)
	f.invoices.On("AdvanceReminder", mock.Anything, "INV-001",
		now, now.Add(6*time.Hour), "Auto-Reminder Sent").Return(true, nil)
	f.audit.On("Append", mock.Anything, "Reminder Sent", "INV-001").Return(nil)

	err := f.svc.SendReminder(context.Background(), entry, now)
	require.NoError(t, err)

	f.invoices.AssertExpectations(t)
}

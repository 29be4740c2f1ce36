package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"lekha/internal/compose"
	"lekha/internal/config"
	"lekha/internal/domain"
	"lekha/internal/email"
	"lekha/internal/port"
	invcheck "lekha/internal/validator/invoice"
)

// Tracker notes written on each lifecycle transition. The values match the
// notes column exactly and are load-bearing for the history view.
const (
	notesInitialSent  = "Initial Invoice Sent"
	notesDraftSaved   = "Draft saved manually"
	notesManualSent   = "Manually Sent"
	notesReminderSent = "Auto-Reminder Sent"
)

// Creation modes accepted by CreateInvoice.
const (
	ModeDraft = "draft"
	ModeSend  = "send"
)

// CreateInvoiceInput is the form-level input for a new invoice. Empty
// optional fields fall back to the client master and configured defaults.
type CreateInvoiceInput struct {
	Mode          string
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	ClientName    string
	ClientEmail   string
	ClientGSTIN   string
	ClientAddress string
	ClientState   string
	FollowUpValue int
	FollowUpUnit  string
	Items         []compose.RawLine
}

// LifecycleService owns every invoice status transition. All dispatch side
// effects (render, upload, email) funnel through here so the tracker row
// and the outside world never disagree about whether an invoice went out.
type LifecycleService interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.TrackerEntry, error)
	Get(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error)
	List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error)
	// SendFromHistory reconstructs an invoice from the item archive and
	// dispatches it, recording a manual send.
	SendFromHistory(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error)
	// ChangeStatus applies a user-driven status edit, triggering a send
	// when the new status is Ready and freezing terminal rows.
	ChangeStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) (*domain.TrackerEntry, error)
	// SendReminder re-dispatches one due invoice. It claims the reminder
	// before any side effect so concurrent sweeps cannot double-send.
	SendReminder(ctx context.Context, entry *domain.TrackerEntry, now time.Time) error
}

type lifecycleService struct {
	invoices port.InvoiceRepository
	archive  port.ItemArchiveRepository
	clients  port.ClientRepository
	products port.ProductRepository
	profile  port.SellerProfileRepository
	audit    port.AuditRepository
	renderer port.DocumentRenderer
	storage  port.ObjectStorage
	sender   port.EmailSender
	invCfg   config.InvoiceConfig
	s3Cfg    config.S3Config
}

// NewLifecycleService wires the lifecycle manager with its persistence and
// dispatch dependencies.
func NewLifecycleService(
	invoices port.InvoiceRepository,
	archive port.ItemArchiveRepository,
	clients port.ClientRepository,
	products port.ProductRepository,
	profile port.SellerProfileRepository,
	audit port.AuditRepository,
	renderer port.DocumentRenderer,
	storage port.ObjectStorage,
	sender port.EmailSender,
	invCfg config.InvoiceConfig,
	s3Cfg config.S3Config,
) LifecycleService {
	return &lifecycleService{
		invoices: invoices,
		archive:  archive,
		clients:  clients,
		products: products,
		profile:  profile,
		audit:    audit,
		renderer: renderer,
		storage:  storage,
		sender:   sender,
		invCfg:   invCfg,
		s3Cfg:    s3Cfg,
	}
}

func (s *lifecycleService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.TrackerEntry, error) {
	mode := strings.ToLower(strings.TrimSpace(input.Mode))
	if mode == "" {
		mode = ModeDraft
	}
	if mode != ModeDraft && mode != ModeSend {
		return nil, domain.NewValidationError("mode", fmt.Sprintf("unknown mode %q", input.Mode))
	}

	followUpValue, followUpUnit, err := s.resolveCadence(input.FollowUpValue, input.FollowUpUnit)
	if err != nil {
		return nil, err
	}

	seller, err := s.sellerParty(ctx)
	if err != nil {
		return nil, err
	}

	buyer := s.resolveBuyer(ctx, input)

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiceDate := input.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}
	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = invoiceDate.AddDate(0, 0, s.invCfg.DefaultDueDays)
	}

	number := strings.TrimSpace(input.InvoiceNumber)
	if number == "" {
		number, err = s.invoices.NextInvoiceNumber(ctx, s.invCfg.NumberPrefix)
		if err != nil {
			return nil, fmt.Errorf("lifecycleService.CreateInvoice: %w", err)
		}
	}

	header := compose.Header{
		InvoiceNumber: number,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Buyer:         buyer,
	}
	inv, err := compose.Compose(header, input.Items, catalog, seller)
	if err != nil {
		return nil, err
	}

	if violations := invcheck.Violations(inv); len(violations) > 0 {
		return nil, fmt.Errorf("lifecycleService.CreateInvoice: composed invoice %s failed %d invariant checks",
			inv.Number, len(violations))
	}

	notes := notesDraftSaved
	if mode == ModeSend {
		notes = ""
	}
	entry := &domain.TrackerEntry{
		ID:            uuid.New(),
		InvoiceNumber: inv.Number,
		ClientName:    inv.Buyer.Name,
		ClientEmail:   inv.Buyer.Email,
		GrandTotal:    inv.Totals.GrandTotal,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Status:        domain.StatusDraft,
		FollowUpValue: followUpValue,
		FollowUpUnit:  followUpUnit,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The tracker insert goes first: its unique invoice_number constraint is
	// the only expected failure, and archive rows keyed by an existing
	// invoice's number would leak into that invoice's reconstruction.
	if err := s.invoices.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := s.archive.Append(ctx, archiveItems(inv, now)); err != nil {
		return nil, fmt.Errorf("lifecycleService.CreateInvoice: %w", err)
	}
	log.Info().Str("invoice_number", inv.Number).Str("mode", mode).Msg("invoice composed and archived")

	if mode == ModeDraft {
		return entry, nil
	}

	if err := s.send(ctx, inv, entry, notesInitialSent); err != nil {
		// The row stays Draft; the caller sees the delivery failure and
		// the items remain archived for a later re-send.
		return entry, err
	}
	return s.invoices.GetByNumber(ctx, entry.InvoiceNumber)
}

func (s *lifecycleService) Get(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	return s.invoices.GetByNumber(ctx, invoiceNumber)
}

func (s *lifecycleService) List(ctx context.Context, offset, limit int) ([]domain.TrackerEntry, int, error) {
	return s.invoices.List(ctx, offset, limit)
}

func (s *lifecycleService) SendFromHistory(ctx context.Context, invoiceNumber string) (*domain.TrackerEntry, error) {
	entry, err := s.invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(entry.Status, domain.StatusSent) {
		return nil, domain.ErrInvalidTransition
	}

	inv, err := s.reconstruct(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := s.send(ctx, inv, entry, notesManualSent); err != nil {
		return nil, err
	}
	return s.invoices.GetByNumber(ctx, invoiceNumber)
}

func (s *lifecycleService) ChangeStatus(ctx context.Context, invoiceNumber string, status domain.InvoiceStatus) (*domain.TrackerEntry, error) {
	entry, err := s.invoices.GetByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(entry.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	switch status {
	case domain.StatusPaid, domain.StatusStopFollowup:
		if err := s.invoices.Freeze(ctx, invoiceNumber, status, entry.Notes); err != nil {
			return nil, err
		}
		s.logAction(ctx, "Status Changed",
			fmt.Sprintf("%s: %s -> %s", invoiceNumber, entry.Status, status))
		return s.invoices.GetByNumber(ctx, invoiceNumber)

	case domain.StatusReady:
		// Ready is a trigger, not a resting state: the invoice goes out
		// immediately and lands on Sent, or reverts to Draft on failure.
		if err := s.invoices.SetStatus(ctx, invoiceNumber, domain.StatusReady, entry.Notes); err != nil {
			return nil, err
		}
		sent, sendErr := s.SendFromHistory(ctx, invoiceNumber)
		if sendErr != nil {
			if revertErr := s.invoices.SetStatus(ctx, invoiceNumber, domain.StatusDraft, entry.Notes); revertErr != nil {
				log.Error().Err(revertErr).Str("invoice_number", invoiceNumber).
					Msg("failed to revert invoice to Draft after send failure")
			}
			s.logAction(ctx, "Send Failed",
				fmt.Sprintf("%s: %v", invoiceNumber, sendErr))
			return nil, sendErr
		}
		return sent, nil

	case domain.StatusSent:
		return s.SendFromHistory(ctx, invoiceNumber)

	default:
		return nil, domain.ErrInvalidTransition
	}
}

func (s *lifecycleService) SendReminder(ctx context.Context, entry *domain.TrackerEntry, now time.Time) error {
	if entry.Status != domain.StatusSent {
		return domain.ErrReminderNotDue
	}

	inv, err := s.reconstruct(ctx, entry)
	if err != nil {
		return err
	}

	value := entry.FollowUpValue
	if value < 1 {
		value = s.invCfg.FollowUpValue
	}
	unit := entry.FollowUpUnit
	if _, parseErr := domain.ParseFollowUpUnit(string(unit)); parseErr != nil {
		unit = domain.UnitDays
	}
	nextDueAt := now.Add(unit.Interval(value))

	// Claim before any side effect. A lost claim means another sweep
	// already advanced this row past now.
	claimed, err := s.invoices.AdvanceReminder(ctx, entry.InvoiceNumber, now, nextDueAt, notesReminderSent)
	if err != nil {
		return err
	}
	if !claimed {
		return domain.ErrReminderNotDue
	}

	if err := s.dispatch(ctx, inv, entry.ClientEmail); err != nil {
		s.logAction(ctx, "Reminder Failed",
			fmt.Sprintf("%s: %v", entry.InvoiceNumber, err))
		return err
	}
	s.logAction(ctx, "Reminder Sent", entry.InvoiceNumber)
	log.Info().Str("invoice_number", entry.InvoiceNumber).
		Time("next_followup_at", nextDueAt).Msg("auto reminder sent")
	return nil
}

// send dispatches the invoice and persists the Sent transition in that
// order. A failed dispatch leaves the row on its prior status.
func (s *lifecycleService) send(ctx context.Context, inv *domain.Invoice, entry *domain.TrackerEntry, notes string) error {
	docURL, err := s.dispatchWithURL(ctx, inv, entry.ClientEmail)
	if err != nil {
		s.logAction(ctx, "Email Failed",
			fmt.Sprintf("%s: %v", entry.InvoiceNumber, err))
		return err
	}

	now := time.Now().UTC()
	value := entry.FollowUpValue
	if value < 1 {
		value = s.invCfg.FollowUpValue
	}
	unit := entry.FollowUpUnit
	if _, parseErr := domain.ParseFollowUpUnit(string(unit)); parseErr != nil {
		unit = domain.UnitDays
	}
	nextDueAt := now.Add(unit.Interval(value))

	if err := s.invoices.MarkSent(ctx, entry.InvoiceNumber, now, nextDueAt, notes, docURL); err != nil {
		return fmt.Errorf("lifecycleService.send: %w", err)
	}
	s.logAction(ctx, "Email Sent",
		fmt.Sprintf("%s to %s", entry.InvoiceNumber, entry.ClientEmail))
	log.Info().Str("invoice_number", entry.InvoiceNumber).Str("notes", notes).
		Time("next_followup_at", nextDueAt).Msg("invoice sent")
	return nil
}

func (s *lifecycleService) dispatch(ctx context.Context, inv *domain.Invoice, toEmail string) error {
	_, err := s.dispatchWithURL(ctx, inv, toEmail)
	return err
}

// dispatchWithURL runs the render, upload, email pipeline and returns the
// stored document location.
func (s *lifecycleService) dispatchWithURL(ctx context.Context, inv *domain.Invoice, toEmail string) (string, error) {
	doc, err := s.renderer.Render(ctx, inv)
	if err != nil {
		return "", &domain.DeliveryError{Stage: "render", Err: err}
	}

	key := fmt.Sprintf("%s/%s/%s", s.s3Cfg.Prefix, inv.Number, doc.FileName)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Content),
		ContentType: doc.ContentType,
	})
	if err != nil {
		return "", &domain.DeliveryError{Stage: "upload", Err: err}
	}

	msg := email.NewInvoiceMessage(inv, toEmail, doc)
	if err := s.sender.SendInvoice(ctx, msg); err != nil {
		return "", &domain.DeliveryError{Stage: "email", Err: err}
	}
	return out.Location, nil
}

// reconstruct replays an invoice from the item archive and the client
// master. Both must still hold the invoice's data.
func (s *lifecycleService) reconstruct(ctx context.Context, entry *domain.TrackerEntry) (*domain.Invoice, error) {
	seller, err := s.sellerParty(ctx)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByName(ctx, entry.ClientName)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, &domain.ReconstructionError{InvoiceNumber: entry.InvoiceNumber, Err: err}
		}
		return nil, err
	}

	archived, err := s.archive.ListByInvoice(ctx, entry.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if len(archived) == 0 {
		return nil, &domain.ReconstructionError{
			InvoiceNumber: entry.InvoiceNumber,
			Err:           errors.New("no archived line items"),
		}
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	buyer := domain.Party{
		Name:    client.Name,
		Email:   entry.ClientEmail,
		GSTIN:   client.GSTIN,
		Address: client.Address,
		State:   client.State,
	}
	if buyer.Email == "" {
		buyer.Email = client.Email
	}

	header := compose.Header{
		InvoiceNumber: entry.InvoiceNumber,
		InvoiceDate:   entry.InvoiceDate,
		DueDate:       entry.DueDate,
		Buyer:         buyer,
	}
	return compose.FromArchive(header, archived, catalog, seller), nil
}

func (s *lifecycleService) sellerParty(ctx context.Context) (domain.Party, error) {
	profile, err := s.profile.Get(ctx)
	if err != nil {
		return domain.Party{}, err
	}
	return profile.Party(), nil
}

// resolveBuyer merges the form input with the client master. A lookup miss
// is not an error; the form fields stand on their own.
func (s *lifecycleService) resolveBuyer(ctx context.Context, input CreateInvoiceInput) domain.Party {
	buyer := domain.Party{
		Name:    strings.TrimSpace(input.ClientName),
		Email:   strings.TrimSpace(input.ClientEmail),
		GSTIN:   strings.TrimSpace(input.ClientGSTIN),
		Address: strings.TrimSpace(input.ClientAddress),
		State:   strings.TrimSpace(input.ClientState),
	}
	if buyer.Name == "" {
		return buyer
	}

	client, err := s.clients.GetByName(ctx, buyer.Name)
	if err != nil {
		if !errors.Is(err, domain.ErrClientNotFound) {
			log.Warn().Err(err).Str("client_name", buyer.Name).Msg("client master lookup failed")
		}
		return buyer
	}
	if buyer.Email == "" {
		buyer.Email = client.Email
	}
	if buyer.GSTIN == "" {
		buyer.GSTIN = client.GSTIN
	}
	if buyer.Address == "" {
		buyer.Address = client.Address
	}
	if buyer.State == "" {
		buyer.State = client.State
	}
	return buyer
}

func (s *lifecycleService) resolveCadence(value int, unit string) (int, domain.FollowUpUnit, error) {
	if value == 0 {
		value = s.invCfg.FollowUpValue
	}
	if value < 1 {
		return 0, "", domain.NewValidationError("followup_value", "must be a positive integer")
	}

	raw := strings.TrimSpace(unit)
	if raw == "" {
		raw = s.invCfg.FollowUpUnit
	}
	parsed, err := domain.ParseFollowUpUnit(raw)
	if err != nil {
		return 0, "", domain.NewValidationError("followup_unit",
			fmt.Sprintf("unknown unit %q", unit))
	}
	return value, parsed, nil
}

func (s *lifecycleService) loadCatalog(ctx context.Context) (compose.Catalog, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("lifecycleService.loadCatalog: %w", err)
	}
	return compose.NewCatalog(products), nil
}

// logAction records an audit row, logging but never failing on write error.
func (s *lifecycleService) logAction(ctx context.Context, action, detail string) {
	if err := s.audit.Append(ctx, action, detail); err != nil {
		log.Error().Err(err).Str("action", action).Msg("audit append failed")
	}
}

func archiveItems(inv *domain.Invoice, now time.Time) []domain.ArchivedItem {
	items := make([]domain.ArchivedItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, domain.ArchivedItem{
			ID:            uuid.New(),
			InvoiceNumber: inv.Number,
			Serial:        item.Serial,
			ItemName:      item.Name,
			HSNCode:       item.HSNCode,
			Quantity:      item.Quantity,
			Rate:          item.Rate,
			Discount:      item.Discount,
			Taxable:       item.Taxable,
			GSTRate:       item.GSTRate,
			CGST:          item.CGST,
			SGST:          item.SGST,
			IGST:          item.IGST,
			LineTotal:     item.LineTotal,
			CreatedAt:     now,
		})
	}
	return items
}

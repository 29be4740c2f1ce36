package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// SweepResult summarizes one reminder sweep.
type SweepResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
}

// ReminderWorker periodically sweeps the tracker for invoices whose
// follow-up is due and re-sends them. One invoice failing never stops the
// sweep; failures land in the audit log.
type ReminderWorker struct {
	lifecycle LifecycleService
	invoices  port.InvoiceRepository
	audit     port.AuditRepository
	interval  time.Duration
	sem       chan struct{}

	mu      sync.Mutex
	running bool
}

// NewReminderWorker creates a sweep worker ticking at interval with at most
// concurrency reminders in flight.
func NewReminderWorker(
	lifecycle LifecycleService,
	invoices port.InvoiceRepository,
	audit port.AuditRepository,
	interval time.Duration,
	concurrency int,
) *ReminderWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReminderWorker{
		lifecycle: lifecycle,
		invoices:  invoices,
		audit:     audit,
		interval:  interval,
		sem:       make(chan struct{}, concurrency),
	}
}

// Start runs the sweep loop until ctx is cancelled. It returns immediately;
// the loop runs on its own goroutine.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	log.Info().Dur("interval", w.interval).Int("concurrency", cap(w.sem)).
		Msg("reminder worker started")

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder worker stopped")
				return
			case <-ticker.C:
				// Reminders get their own context so a server shutdown
				// mid-sweep does not abort dispatches already claimed.
				sweepCtx, cancel := context.WithTimeout(context.Background(), w.interval)
				result, err := w.Sweep(sweepCtx, time.Now().UTC())
				cancel()
				if err != nil {
					log.Error().Err(err).Msg("reminder sweep failed")
					continue
				}
				if result.Attempted > 0 {
					log.Info().Int("attempted", result.Attempted).
						Int("succeeded", result.Succeeded).Msg("reminder sweep completed")
				}
			}
		}
	}()
}

// Sweep sends a reminder for every invoice due as of now. Terminal rows are
// skipped; a reminder already claimed elsewhere counts as neither an
// attempt nor a failure.
func (w *ReminderWorker) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	due, err := w.invoices.ListDue(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("ReminderWorker.Sweep: %w", err)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		attempted int
		succeeded int
	)
	for i := range due {
		entry := due[i]
		if entry.Status.Terminal() {
			continue
		}

		wg.Add(1)
		w.sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-w.sem }()

			err := w.lifecycle.SendReminder(ctx, &entry, now)
			if errors.Is(err, domain.ErrReminderNotDue) {
				return
			}

			mu.Lock()
			attempted++
			if err == nil {
				succeeded++
			}
			mu.Unlock()

			if err != nil {
				log.Error().Err(err).Str("invoice_number", entry.InvoiceNumber).
					Msg("reminder dispatch failed")
				if auditErr := w.audit.Append(ctx, "Sweep Failure",
					fmt.Sprintf("%s: %v", entry.InvoiceNumber, err)); auditErr != nil {
					log.Error().Err(auditErr).Msg("audit append failed")
				}
			}
		}()
	}
	wg.Wait()

	return SweepResult{Attempted: attempted, Succeeded: succeeded}, nil
}

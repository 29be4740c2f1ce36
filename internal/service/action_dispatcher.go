package service

import (
	"context"
	"fmt"
	"strings"

	"lekha/internal/domain"
)

// Action names accepted by the dispatcher. They mirror the interactive
// edits the tracker supports: re-send, mark ready, and the two terminal
// states.
const (
	ActionSend         = "send"
	ActionMarkReady    = "mark_ready"
	ActionMarkPaid     = "mark_paid"
	ActionStopFollowup = "stop_followup"
)

// ActionRequest is one interactive action against a tracked invoice.
type ActionRequest struct {
	InvoiceNumber string `json:"invoice_number" binding:"required"`
	Action        string `json:"action" binding:"required"`
}

// ActionDispatcher routes interactive tracker actions onto lifecycle
// transitions.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, req ActionRequest) (*domain.TrackerEntry, error)
}

type actionDispatcher struct {
	lifecycle LifecycleService
}

// NewActionDispatcher creates a dispatcher over the lifecycle service.
func NewActionDispatcher(lifecycle LifecycleService) ActionDispatcher {
	return &actionDispatcher{lifecycle: lifecycle}
}

func (d *actionDispatcher) Dispatch(ctx context.Context, req ActionRequest) (*domain.TrackerEntry, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, domain.NewValidationError("invoice_number", "invoice number is required")
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case ActionSend:
		return d.lifecycle.SendFromHistory(ctx, number)
	case ActionMarkReady:
		return d.lifecycle.ChangeStatus(ctx, number, domain.StatusReady)
	case ActionMarkPaid:
		return d.lifecycle.ChangeStatus(ctx, number, domain.StatusPaid)
	case ActionStopFollowup:
		return d.lifecycle.ChangeStatus(ctx, number, domain.StatusStopFollowup)
	default:
		return nil, domain.NewValidationError("action", fmt.Sprintf("unknown action %q", req.Action))
	}
}

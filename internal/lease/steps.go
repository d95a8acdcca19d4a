// Package lease models the tenant-side lease-signing and payment flow as an
// explicit step machine. The server derives the current step from persisted
// match state on every read, so a client reload always converges on the same
// step.
package lease

import (
	"fmt"

	"rentmatch-backend/internal/domain"
)

type Step string

const (
	StepNoLease             Step = "no-lease"
	StepOverview            Step = "overview"
	StepSigning             Step = "signing"
	StepPDFReview           Step = "pdf-review"
	StepPayment             Step = "payment"
	StepPaymentMethodExists Step = "payment-method-exists"
	StepCompleted           Step = "completed"
)

type Event string

const (
	EventDocumentReady      Event = "document-ready"
	EventBeginSigning       Event = "begin-signing"
	EventSignatureSubmitted Event = "signature-submitted"
	EventReviewDone         Event = "review-done"
	EventBack               Event = "back"
	EventUseDifferentCard   Event = "use-different-card"
	EventPaymentSucceeded   Event = "payment-succeeded"
)

// DeriveStep computes the tenant's current step from match state. hasDocument
// reports whether the lease document exists and is ready; hasStoredMethod
// whether the tenant has a saved payment method.
func DeriveStep(m *domain.Match, hasDocument, hasStoredMethod bool) Step {
	if !hasDocument {
		return StepNoLease
	}
	if m.TenantSignedOn == nil {
		return StepOverview
	}
	if m.PaymentAuthorizedOn != nil {
		return StepCompleted
	}
	if hasStoredMethod {
		return StepPaymentMethodExists
	}
	return StepPayment
}

// Next applies an event to a step. Transitions are exhaustive; an event that
// does not apply to the current step is an error rather than a silent no-op.
// Navigation back from payment lands on the read-only pdf-review of the
// signed document, never back on signing: re-signing is not allowed once the
// signature is submitted.
func Next(s Step, e Event) (Step, error) {
	switch s {
	case StepNoLease:
		if e == EventDocumentReady {
			return StepOverview, nil
		}
	case StepOverview:
		if e == EventBeginSigning {
			return StepSigning, nil
		}
	case StepSigning:
		switch e {
		case EventSignatureSubmitted:
			return StepPayment, nil
		case EventBack:
			return StepOverview, nil
		}
	case StepPDFReview:
		if e == EventReviewDone {
			return StepPayment, nil
		}
	case StepPayment:
		switch e {
		case EventBack:
			return StepPDFReview, nil
		case EventPaymentSucceeded:
			return StepCompleted, nil
		}
	case StepPaymentMethodExists:
		switch e {
		case EventUseDifferentCard:
			return StepPayment, nil
		case EventPaymentSucceeded:
			return StepCompleted, nil
		}
	case StepCompleted:
		// Terminal.
	default:
		return s, fmt.Errorf("unknown lease step %q", s)
	}
	return s, fmt.Errorf("event %q does not apply to step %q", e, s)
}

package domain

import (
	"strings"
	"time"
)

// The moderation state machine. Moderation (approve/reject) is an
// admin-only gate out of PENDING; availability (enable/disable) toggles a
// product that already passed moderation. A PENDING or REJECTED product can
// never reach public visibility through the availability toggle alone.

// Approve moves a pending product to APPROVED and clears any rejection
// reason. Approving an already approved product is a state no-op but still
// refreshes UpdatedAt so retries stay safe.
func (p *Product) Approve() error {
	switch p.Status {
	case StatusPending, StatusApproved:
		p.Status = StatusApproved
		p.RejectionReason = ""
		p.UpdatedAt = time.Now()
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Reject moves a pending product to REJECTED with a mandatory reason.
func (p *Product) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectionReason
	}
	if p.Status != StatusPending {
		return ErrInvalidTransition
	}
	p.Status = StatusRejected
	p.RejectionReason = reason
	p.UpdatedAt = time.Now()
	return nil
}

// Enable makes a moderated product publicly available again.
func (p *Product) Enable() error {
	switch p.Status {
	case StatusApproved, StatusEnabled, StatusDisabled:
		p.Status = StatusEnabled
		p.UpdatedAt = time.Now()
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Disable pauses a moderated product without re-entering moderation.
func (p *Product) Disable() error {
	switch p.Status {
	case StatusApproved, StatusEnabled, StatusDisabled:
		p.Status = StatusDisabled
		p.UpdatedAt = time.Now()
		return nil
	default:
		return ErrInvalidTransition
	}
}

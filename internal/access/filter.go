// Package access scopes which reservations a caller may see or cancel.
// Ordinary lab members see their own lab's reservations; administrators see
// everything. The non-admin cancel predicate is a configured policy choice.
package access

import (
	"errors"
	"fmt"

	"github.com/kairovix/labsched/internal/domain"
)

// CancelPolicy selects the non-admin cancel predicate
type CancelPolicy string

const (
	// CancelOwn lets a member cancel only reservations they created
	CancelOwn CancelPolicy = "own"
	// CancelLab lets a member cancel any reservation in their lab
	CancelLab CancelPolicy = "lab"
)

// ErrInvalidPolicy is returned for an unrecognized cancel policy value
var ErrInvalidPolicy = errors.New("access: invalid cancel policy")

// Filter answers visibility and cancellation questions for an identity
type Filter struct {
	cancelPolicy CancelPolicy
}

// NewFilter creates a filter with the given cancel policy
func NewFilter(policy CancelPolicy) (*Filter, error) {
	switch policy {
	case CancelOwn, CancelLab:
		return &Filter{cancelPolicy: policy}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, policy)
	}
}

// Visible returns the predicate over reservations the identity may see
func (f *Filter) Visible(identity domain.Identity) func(*domain.Reservation) bool {
	if identity.IsAdmin {
		return func(*domain.Reservation) bool { return true }
	}
	lab := identity.Lab
	return func(r *domain.Reservation) bool {
		return r.Lab == lab
	}
}

// MayCancel reports whether the identity may cancel the reservation
func (f *Filter) MayCancel(identity domain.Identity, r *domain.Reservation) bool {
	if identity.IsAdmin {
		return true
	}
	switch f.cancelPolicy {
	case CancelLab:
		return r.Lab == identity.Lab
	default:
		return r.RequesterEmail == identity.Email
	}
}

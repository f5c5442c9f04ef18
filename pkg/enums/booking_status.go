package enums

import "fmt"

// BookingStatus tracks the lifecycle of a service booking.
type BookingStatus string

const (
	BookingStatusAwaitingPayment BookingStatus = "awaiting_payment"
	BookingStatusPending         BookingStatus = "pending"
	BookingStatusConfirmed       BookingStatus = "confirmed"
	BookingStatusCompleted       BookingStatus = "completed"
	BookingStatusCanceled        BookingStatus = "canceled"
)

var validBookingStatuses = []BookingStatus{
	BookingStatusAwaitingPayment,
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCanceled,
}

// String implements fmt.Stringer.
func (b BookingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingStatus.
func (b BookingStatus) IsValid() bool {
	for _, candidate := range validBookingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the payment flow may no longer mutate the
// booking. Completed and canceled bookings stay frozen; confirmed
// bookings only move forward through the admin status endpoint.
func (b BookingStatus) IsTerminal() bool {
	switch b {
	case BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the admin back office may move a
// booking from its current status to the target.
func (b BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch b {
	case BookingStatusAwaitingPayment:
		return target == BookingStatusPending || target == BookingStatusCanceled
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCanceled
	case BookingStatusConfirmed:
		return target == BookingStatusCompleted || target == BookingStatusCanceled
	}
	return false
}

// ParseBookingStatus converts raw input into a BookingStatus.
func ParseBookingStatus(value string) (BookingStatus, error) {
	for _, candidate := range validBookingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking status %q", value)
}

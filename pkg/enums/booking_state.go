package enums

import (
	"fmt"
	"strings"
)

// BookingState is the query-side filter for booking listings. It is evaluated
// against the clock at request time and never stored, unlike BookingStatus.
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateApproved BookingState = "APPROVED"
	BookingStateRejected BookingState = "REJECTED"
)

var validBookingStates = []BookingState{
	BookingStateAll,
	BookingStateCurrent,
	BookingStatePast,
	BookingStateFuture,
	BookingStateWaiting,
	BookingStateApproved,
	BookingStateRejected,
}

// String implements fmt.Stringer.
func (b BookingState) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingState.
func (b BookingState) IsValid() bool {
	for _, candidate := range validBookingStates {
		if candidate == b {
			return true
		}
	}
	return false
}

// Status returns the persisted status the state maps to, if it is one of the
// status-backed filters.
func (b BookingState) Status() (BookingStatus, bool) {
	switch b {
	case BookingStateWaiting:
		return BookingStatusWaiting, true
	case BookingStateApproved:
		return BookingStatusApproved, true
	case BookingStateRejected:
		return BookingStatusRejected, true
	}
	return "", false
}

// ParseBookingState converts raw input into a BookingState. Empty input
// defaults to ALL, matching the API contract.
func ParseBookingState(value string) (BookingState, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return BookingStateAll, nil
	}
	for _, candidate := range validBookingStates {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking state %q", value)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	legal := []struct {
		from, to BookingStatus
	}{
		{StatusRequested, StatusApproved},
		{StatusRequested, StatusRejected},
		{StatusRequested, StatusCancelled},
		{StatusApproved, StatusPaid},
		{StatusApproved, StatusCancelled},
		{StatusRejected, StatusCancelled},
		{StatusPaid, StatusActive},
		{StatusPaid, StatusCancelled},
		{StatusPaid, StatusRefunded},
		{StatusActive, StatusCompleted},
		{StatusActive, StatusCancelled},
		{StatusCancelled, StatusRefunded},
	}
	legalSet := make(map[[2]BookingStatus]bool, len(legal))
	for _, tc := range legal {
		legalSet[[2]BookingStatus{tc.from, tc.to}] = true
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	all := []BookingStatus{
		StatusRequested, StatusApproved, StatusRejected, StatusPaid,
		StatusActive, StatusCompleted, StatusCancelled, StatusRefunded,
	}
	for _, from := range all {
		for _, to := range all {
			if legalSet[[2]BookingStatus{from, to}] {
				continue
			}
			assert.False(t, from.CanTransitionTo(to), "%s -> %s should be illegal", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())

	for _, s := range []BookingStatus{
		StatusRequested, StatusApproved, StatusRejected,
		StatusPaid, StatusActive, StatusCancelled,
	} {
		assert.False(t, s.IsTerminal(), "%s should not be terminal", s)
	}
}

func TestIsLive(t *testing.T) {
	for _, s := range []BookingStatus{StatusRequested, StatusApproved, StatusPaid, StatusActive} {
		assert.True(t, s.IsLive(), "%s should hold its timeslot", s)
	}
	for _, s := range []BookingStatus{StatusRejected, StatusCompleted, StatusCancelled, StatusRefunded} {
		assert.False(t, s.IsLive(), "%s should not hold its timeslot", s)
	}
}

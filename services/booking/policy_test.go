package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbooking/models"
)

func slotStarting(t *testing.T, start time.Time) models.Timeslot {
	t.Helper()
	slot, err := models.NewTimeslot(start, start.Add(time.Hour))
	require.NoError(t, err)
	return slot
}

func TestDefaultPricing(t *testing.T) {
	p := PricingPolicyFor(models.PricingDefault)
	slot := slotStarting(t, time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC))
	assert.Equal(t, 10.0, p.CalculatePrice(nil, slot, 10.0))
}

func TestPeakHoursPricing(t *testing.T) {
	p := PricingPolicyFor(models.PricingPeakHours)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 19:00 is inside the 18:00-22:00 window.
	peak := slotStarting(t, monday.Add(19*time.Hour))
	assert.InDelta(t, 12.0, p.CalculatePrice(nil, peak, 10.0), 1e-9)

	// Window start is inclusive.
	edge := slotStarting(t, monday.Add(18*time.Hour))
	assert.InDelta(t, 12.0, p.CalculatePrice(nil, edge, 10.0), 1e-9)

	// Window end is exclusive.
	late := slotStarting(t, monday.Add(22*time.Hour))
	assert.Equal(t, 10.0, p.CalculatePrice(nil, late, 10.0))

	offPeak := slotStarting(t, monday.Add(10*time.Hour))
	assert.Equal(t, 10.0, p.CalculatePrice(nil, offPeak, 10.0))
}

func TestWeekendPricing(t *testing.T) {
	p := PricingPolicyFor(models.PricingWeekend)

	saturday := slotStarting(t, time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC))
	assert.InDelta(t, 11.5, p.CalculatePrice(nil, saturday, 10.0), 1e-9)

	sunday := slotStarting(t, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC))
	assert.InDelta(t, 11.5, p.CalculatePrice(nil, sunday, 10.0), 1e-9)

	monday := slotStarting(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, 10.0, p.CalculatePrice(nil, monday, 10.0))
}

func TestPeakWeekendPricingCompounds(t *testing.T) {
	p := PricingPolicyFor(models.PricingPeakWeekend)

	// Saturday evening compounds both multipliers: 10 * 1.2 * 1.15.
	saturdayPeak := slotStarting(t, time.Date(2026, 3, 7, 19, 0, 0, 0, time.UTC))
	assert.InDelta(t, 13.8, p.CalculatePrice(nil, saturdayPeak, 10.0), 1e-9)

	// Saturday morning gets only the weekend multiplier.
	saturdayMorning := slotStarting(t, time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC))
	assert.InDelta(t, 11.5, p.CalculatePrice(nil, saturdayMorning, 10.0), 1e-9)

	// Weekday evening gets only the peak multiplier.
	mondayPeak := slotStarting(t, time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC))
	assert.InDelta(t, 12.0, p.CalculatePrice(nil, mondayPeak, 10.0), 1e-9)
}

func TestFlexibleCancellation(t *testing.T) {
	p := CancellationPolicyFor(models.CancellationFlexible)

	assert.Equal(t, 1.0, p.RefundPercent(30))
	assert.Equal(t, 1.0, p.RefundPercent(24))
	assert.Equal(t, 0.5, p.RefundPercent(23))
	assert.Equal(t, 0.5, p.RefundPercent(4))
	assert.Equal(t, 0.5, p.RefundPercent(2))
	assert.Equal(t, 0.0, p.RefundPercent(1))
	assert.Equal(t, 0.0, p.RefundPercent(0))
}

func TestStrictCancellation(t *testing.T) {
	p := CancellationPolicyFor(models.CancellationStrict)

	assert.Equal(t, 0.8, p.RefundPercent(80))
	assert.Equal(t, 0.8, p.RefundPercent(72))
	assert.Equal(t, 0.0, p.RefundPercent(71))
	assert.Equal(t, 0.0, p.RefundPercent(10))
	assert.Equal(t, 0.0, p.RefundPercent(0))
}

func TestApprovalPolicies(t *testing.T) {
	res := &models.Resource{ID: "r1"}
	assert.False(t, ApprovalPolicyFor(models.ApprovalAuto).RequiresApproval(res))
	assert.True(t, ApprovalPolicyFor(models.ApprovalAdminRequired).RequiresApproval(res))
}

func TestUnknownKeysFallBack(t *testing.T) {
	assert.Equal(t, string(models.PricingDefault), PricingPolicyFor("BOGUS").Name())
	assert.Equal(t, string(models.CancellationFlexible), CancellationPolicyFor("BOGUS").Name())
	assert.Equal(t, string(models.ApprovalAuto), ApprovalPolicyFor("BOGUS").Name())
}

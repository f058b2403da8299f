package booking

import (
	"time"

	"smartbooking/models"
)

// PricingPolicy computes the final price of a slot from a pre-computed base
// price. Implementations are stateless and pure.
type PricingPolicy interface {
	CalculatePrice(res *models.Resource, slot models.Timeslot, basePrice float64) float64
	Name() string
}

// CancellationPolicy maps the whole hours remaining before a booking starts
// to a refund fraction in [0, 1].
type CancellationPolicy interface {
	RefundPercent(hoursBeforeStart int64) float64
	Name() string
}

// ApprovalPolicy decides whether a booking on the resource needs an admin to
// approve it. The resource's key alone decides; no type-specific rules apply.
type ApprovalPolicy interface {
	RequiresApproval(res *models.Resource) bool
	Name() string
}

// --- pricing implementations ---

type defaultPricing struct{}

func (defaultPricing) CalculatePrice(_ *models.Resource, _ models.Timeslot, basePrice float64) float64 {
	return basePrice
}

func (defaultPricing) Name() string { return string(models.PricingDefault) }

// peakHoursPricing applies a multiplier when the slot start's time of day
// falls in [peakStart, peakEnd), both expressed as minutes from midnight.
type peakHoursPricing struct {
	multiplier float64
	peakStart  int
	peakEnd    int
}

func (p peakHoursPricing) CalculatePrice(_ *models.Resource, slot models.Timeslot, basePrice float64) float64 {
	minuteOfDay := slot.Start.Hour()*60 + slot.Start.Minute()
	if minuteOfDay >= p.peakStart && minuteOfDay < p.peakEnd {
		return basePrice * p.multiplier
	}
	return basePrice
}

func (peakHoursPricing) Name() string { return string(models.PricingPeakHours) }

type weekendPricing struct {
	multiplier float64
}

func (p weekendPricing) CalculatePrice(_ *models.Resource, slot models.Timeslot, basePrice float64) float64 {
	day := slot.Start.Weekday()
	if day == time.Saturday || day == time.Sunday {
		return basePrice * p.multiplier
	}
	return basePrice
}

func (weekendPricing) Name() string { return string(models.PricingWeekend) }

// compositePricing folds the price through each sub-policy in order. Each
// policy receives the previous policy's output as its base price, so
// multipliers compound.
type compositePricing struct {
	policies []PricingPolicy
}

func (c compositePricing) CalculatePrice(res *models.Resource, slot models.Timeslot, basePrice float64) float64 {
	price := basePrice
	for _, p := range c.policies {
		price = p.CalculatePrice(res, slot, price)
	}
	return price
}

func (compositePricing) Name() string { return "COMPOSITE" }

// --- cancellation implementations ---

// flexibleCancellation: full refund a day out, half down to two hours, then
// nothing. Lower bounds are inclusive.
type flexibleCancellation struct{}

func (flexibleCancellation) RefundPercent(hoursBeforeStart int64) float64 {
	switch {
	case hoursBeforeStart >= 24:
		return 1.0
	case hoursBeforeStart >= 2:
		return 0.5
	default:
		return 0.0
	}
}

func (flexibleCancellation) Name() string { return string(models.CancellationFlexible) }

type strictCancellation struct{}

func (strictCancellation) RefundPercent(hoursBeforeStart int64) float64 {
	if hoursBeforeStart >= 72 {
		return 0.8
	}
	return 0.0
}

func (strictCancellation) Name() string { return string(models.CancellationStrict) }

// --- approval implementations ---

type autoApproval struct{}

func (autoApproval) RequiresApproval(*models.Resource) bool { return false }
func (autoApproval) Name() string                           { return string(models.ApprovalAuto) }

type adminApproval struct{}

func (adminApproval) RequiresApproval(*models.Resource) bool { return true }
func (adminApproval) Name() string                           { return string(models.ApprovalAdminRequired) }

// --- key resolution ---

const (
	peakMultiplier    = 1.2
	weekendMultiplier = 1.15
	peakStartMinute   = 18 * 60 // 18:00
	peakEndMinute     = 22 * 60 // 22:00, exclusive
)

var pricingPolicies = map[models.PricingPolicyKey]PricingPolicy{
	models.PricingDefault:   defaultPricing{},
	models.PricingPeakHours: peakHoursPricing{multiplier: peakMultiplier, peakStart: peakStartMinute, peakEnd: peakEndMinute},
	models.PricingWeekend:   weekendPricing{multiplier: weekendMultiplier},
	models.PricingPeakWeekend: compositePricing{policies: []PricingPolicy{
		peakHoursPricing{multiplier: peakMultiplier, peakStart: peakStartMinute, peakEnd: peakEndMinute},
		weekendPricing{multiplier: weekendMultiplier},
	}},
}

var cancellationPolicies = map[models.CancellationPolicyKey]CancellationPolicy{
	models.CancellationFlexible: flexibleCancellation{},
	models.CancellationStrict:   strictCancellation{},
}

var approvalPolicies = map[models.ApprovalPolicyKey]ApprovalPolicy{
	models.ApprovalAuto:          autoApproval{},
	models.ApprovalAdminRequired: adminApproval{},
}

// PricingPolicyFor resolves a pricing policy key. Unknown keys fall back to
// DEFAULT.
func PricingPolicyFor(key models.PricingPolicyKey) PricingPolicy {
	if p, ok := pricingPolicies[key]; ok {
		return p
	}
	return pricingPolicies[models.PricingDefault]
}

// CancellationPolicyFor resolves a cancellation policy key. Unknown keys fall
// back to FLEXIBLE.
func CancellationPolicyFor(key models.CancellationPolicyKey) CancellationPolicy {
	if p, ok := cancellationPolicies[key]; ok {
		return p
	}
	return cancellationPolicies[models.CancellationFlexible]
}

// ApprovalPolicyFor resolves an approval policy key. Unknown keys fall back
// to AUTO.
func ApprovalPolicyFor(key models.ApprovalPolicyKey) ApprovalPolicy {
	if p, ok := approvalPolicies[key]; ok {
		return p
	}
	return approvalPolicies[models.ApprovalAuto]
}

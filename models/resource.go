package models

// ResourceType tags the kind of bookable resource.
type ResourceType string

const (
	ResourceRoom      ResourceType = "ROOM"
	ResourceEquipment ResourceType = "EQUIPMENT"
	ResourceStudio    ResourceType = "STUDIO"
)

// Policy selector keys. Resources carry keys, never policy objects, so policy
// behavior can change without touching resource records.
type (
	PricingPolicyKey      string
	CancellationPolicyKey string
	ApprovalPolicyKey     string
)

const (
	PricingDefault     PricingPolicyKey = "DEFAULT"
	PricingPeakHours   PricingPolicyKey = "PEAK_HOURS"
	PricingWeekend     PricingPolicyKey = "WEEKEND"
	PricingPeakWeekend PricingPolicyKey = "PEAK_WEEKEND"

	CancellationFlexible CancellationPolicyKey = "FLEXIBLE"
	CancellationStrict   CancellationPolicyKey = "STRICT"

	ApprovalAuto          ApprovalPolicyKey = "AUTO"
	ApprovalAdminRequired ApprovalPolicyKey = "ADMIN_REQUIRED"
)

// Resource is a bookable room, piece of equipment or studio.
type Resource struct {
	ID                    string                `bson:"id" json:"id"`
	Name                  string                `bson:"name" json:"name"`
	Type                  ResourceType          `bson:"type" json:"type"`
	BasePricePerHour      float64               `bson:"base_price_per_hour" json:"base_price_per_hour"`
	PricingPolicyKey      PricingPolicyKey      `bson:"pricing_policy_key" json:"pricing_policy_key"`
	CancellationPolicyKey CancellationPolicyKey `bson:"cancellation_policy_key" json:"cancellation_policy_key"`
	ApprovalPolicyKey     ApprovalPolicyKey     `bson:"approval_policy_key" json:"approval_policy_key"`
}

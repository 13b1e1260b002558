package plan

// Package plan holds the subscription tier ordering and the static
// feature requirement table. Everything here is pure; the HTTP gate in
// internal/http wraps these lookups.

// Tier represents a subscription plan tier.
type Tier string

const (
	TierStarter      Tier = "starter"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
	TierPartner      Tier = "partner"
)

// tierLevels fixes the tier ordering. Partner orgs get everything an
// enterprise org gets, so the two share a level.
var tierLevels = map[Tier]int{
	TierStarter:      0,
	TierProfessional: 1,
	TierEnterprise:   2,
	TierPartner:      2,
}

// Level returns the ordinal rank of a tier. Unknown tiers rank below
// starter so a garbled plan value never grants access.
func (t Tier) Level() int {
	if level, ok := tierLevels[t]; ok {
		return level
	}
	return -1
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierLevels[t]
	return ok
}

// Feature names gated functionality. The values double as the `feature`
// field in 403 payloads, so keep them stable.
type Feature string

const (
	FeatureCheckIns          Feature = "check_ins"
	FeatureShoutouts         Feature = "shoutouts"
	FeatureKRATracking       Feature = "kra_tracking"
	FeatureOneOnOnes         Feature = "one_on_ones"
	FeatureAnalytics         Feature = "analytics"
	FeatureAdvancedAnalytics Feature = "advanced_analytics"
	FeatureCustomBranding    Feature = "custom_branding"
	FeatureAPIAccess         Feature = "api_access"
)

// requirements maps each gated feature to the minimum tier that may use
// it. Features absent from the table are treated as available to all
// tiers.
var requirements = map[Feature]Tier{
	FeatureCheckIns:          TierStarter,
	FeatureShoutouts:         TierStarter,
	FeatureKRATracking:       TierProfessional,
	FeatureOneOnOnes:         TierProfessional,
	FeatureAnalytics:         TierProfessional,
	FeatureAdvancedAnalytics: TierEnterprise,
	FeatureCustomBranding:    TierEnterprise,
	FeatureAPIAccess:         TierEnterprise,
}

// RequiredTier returns the minimum tier for a feature and whether the
// feature is known.
func RequiredTier(f Feature) (Tier, bool) {
	t, ok := requirements[f]
	return t, ok
}

// HasFeatureAccess reports whether an organization on the given tier may
// use the feature. Access is monotonic in tier level.
func HasFeatureAccess(t Tier, f Feature) bool {
	required, ok := requirements[f]
	if !ok {
		return true
	}
	return t.Level() >= required.Level()
}

// Availability describes one feature's status for a given tier.
type Availability struct {
	Feature      Feature `json:"feature"`
	Available    bool    `json:"available"`
	RequiredTier Tier    `json:"requiredPlan"`
}

// FeatureAvailability returns the availability of every known feature
// for the given tier, in a stable order.
func FeatureAvailability(t Tier) []Availability {
	out := make([]Availability, 0, len(allFeatures))
	for _, f := range allFeatures {
		out = append(out, Availability{
			Feature:      f,
			Available:    HasFeatureAccess(t, f),
			RequiredTier: requirements[f],
		})
	}
	return out
}

// UpgradeSuggestions returns the features the tier cannot use yet,
// grouped under the cheapest tier that unlocks each. The frontend's
// "what can I still unlock" panel renders this directly.
func UpgradeSuggestions(t Tier) map[Tier][]Feature {
	out := make(map[Tier][]Feature)
	for _, f := range allFeatures {
		if HasFeatureAccess(t, f) {
			continue
		}
		required := requirements[f]
		out[required] = append(out[required], f)
	}
	return out
}

// allFeatures lists the gated features in display order.
var allFeatures = []Feature{
	FeatureCheckIns,
	FeatureShoutouts,
	FeatureKRATracking,
	FeatureOneOnOnes,
	FeatureAnalytics,
	FeatureAdvancedAnalytics,
	FeatureCustomBranding,
	FeatureAPIAccess,
}

// Tiers lists the purchasable tiers in ascending order, for the public
// plan listing endpoint.
func Tiers() []Tier {
	return []Tier{TierStarter, TierProfessional, TierEnterprise, TierPartner}
}

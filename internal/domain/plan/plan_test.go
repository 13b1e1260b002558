package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierLevelOrdering(t *testing.T) {
	t.Parallel()

	assert.Less(t, TierStarter.Level(), TierProfessional.Level())
	assert.Less(t, TierProfessional.Level(), TierEnterprise.Level())

	// Partner orgs get enterprise-level access.
	assert.Equal(t, TierEnterprise.Level(), TierPartner.Level())

	// Unknown tiers rank below everything.
	assert.Less(t, Tier("bogus").Level(), TierStarter.Level())
}

func TestTierValid(t *testing.T) {
	t.Parallel()

	for _, tier := range []Tier{TierStarter, TierProfessional, TierEnterprise, TierPartner} {
		assert.True(t, tier.Valid(), "tier %s", tier)
	}
	assert.False(t, Tier("").Valid())
	assert.False(t, Tier("free").Valid())
}

func TestHasFeatureAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier    Tier
		feature Feature
		want    bool
	}{
		{TierStarter, FeatureCheckIns, true},
		{TierStarter, FeatureShoutouts, true},
		{TierStarter, FeatureKRATracking, false},
		{TierStarter, FeatureAnalytics, false},
		{TierProfessional, FeatureKRATracking, true},
		{TierProfessional, FeatureOneOnOnes, true},
		{TierProfessional, FeatureAdvancedAnalytics, false},
		{TierEnterprise, FeatureAdvancedAnalytics, true},
		{TierEnterprise, FeatureAPIAccess, true},
		{TierPartner, FeatureCustomBranding, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasFeatureAccess(tt.tier, tt.feature), "%s / %s", tt.tier, tt.feature)
	}
}

func TestHasFeatureAccess_UnknownFeatureIsOpen(t *testing.T) {
	t.Parallel()

	// Features without a requirement entry are not gated.
	assert.True(t, HasFeatureAccess(TierStarter, Feature("experimental")))
}

func TestRequiredTier(t *testing.T) {
	t.Parallel()

	tier, ok := RequiredTier(FeatureKRATracking)
	assert.True(t, ok)
	assert.Equal(t, TierProfessional, tier)

	_, ok = RequiredTier(Feature("experimental"))
	assert.False(t, ok)
}

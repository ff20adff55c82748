package tier

import (
	"testing"

	"github.com/kolstage/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func Test_Classify(t *testing.T) {
	testcases := []struct {
		count    int64
		expected entity.ProgramTier
	}{
		{count: 0, expected: entity.TierInsider},
		{count: 9999, expected: entity.TierInsider},
		{count: 10000, expected: entity.TierOperative},
		{count: 29999, expected: entity.TierOperative},
		{count: 30000, expected: entity.TierElite},
		{count: 50000, expected: entity.TierPrestige},
		{count: 99999, expected: entity.TierPrestige},
		{count: 100000, expected: entity.TierAuthority},
		{count: 200000, expected: entity.TierSovereign},
		{count: 300000, expected: entity.TierImperial},
		{count: 499999, expected: entity.TierImperial},
		{count: 500000, expected: entity.TierTheIcon},
		{count: 10000000, expected: entity.TierTheIcon},
	}

	for _, tc := range testcases {
		got, ok := Classify(tc.count)
		require.True(t, ok, "count %d", tc.count)
		require.Equal(t, tc.expected, got, "count %d", tc.count)
	}
}

func Test_Classify_negative(t *testing.T) {
	_, ok := Classify(-1)
	require.False(t, ok)
}

func Test_Order(t *testing.T) {
	require.Equal(t, 0, Order(entity.TierInsider))
	require.Equal(t, 7, Order(entity.TierTheIcon))
	require.Equal(t, -1, Order(entity.ProgramTier("NO_SUCH_TIER")))

	prev := -1
	for _, r := range programTiers {
		require.Greater(t, Order(r.tier), prev)
		prev = Order(r.tier)
	}
}

func Test_ParseFollowerCount(t *testing.T) {
	testcases := []struct {
		input    string
		expected int64
		ok       bool
	}{
		{input: "10000", expected: 10000, ok: true},
		{input: "10k", expected: 10000, ok: true},
		{input: "10K", expected: 10000, ok: true},
		{input: "1萬", expected: 10000, ok: true},
		{input: "1万", expected: 10000, ok: true},
		{input: "1만", expected: 10000, ok: true},
		{input: "1man", expected: 10000, ok: true},
		{input: "  12,345  ", expected: 12345, ok: true},
		// All digits are concatenated before the multiplier applies.
		{input: "1,0 0 0", expected: 1000, ok: true},
		{input: "", ok: false},
		{input: "   ", ok: false},
		{input: "abc", ok: false},
	}

	for _, tc := range testcases {
		got, ok := ParseFollowerCount(tc.input)
		require.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			require.Equal(t, tc.expected, got, "input %q", tc.input)
		}
	}
}

func Test_UpgradeEligible(t *testing.T) {
	// No current tier, any classifiable count is an upgrade.
	got, ok := UpgradeEligible("", false, 5000, false)
	require.True(t, ok)
	require.Equal(t, entity.TierInsider, got)

	// Strictly higher tier required.
	_, ok = UpgradeEligible(entity.TierOperative, true, 15000, false)
	require.False(t, ok)

	got, ok = UpgradeEligible(entity.TierOperative, true, 30000, false)
	require.True(t, ok)
	require.Equal(t, entity.TierElite, got)

	// A pending request blocks a new one.
	_, ok = UpgradeEligible(entity.TierOperative, true, 30000, true)
	require.False(t, ok)

	// Negative counts never classify.
	_, ok = UpgradeEligible(entity.TierOperative, true, -1, false)
	require.False(t, ok)
}

func Test_Bucket(t *testing.T) {
	testcases := []struct {
		count    int64
		expected entity.FollowerTier
	}{
		{count: 0, expected: entity.FollowerTierUnder10K},
		{count: 9999, expected: entity.FollowerTierUnder10K},
		{count: 10000, expected: entity.FollowerTier10K30K},
		{count: 30000, expected: entity.FollowerTier30K50K},
		{count: 50000, expected: entity.FollowerTier50K70K},
		{count: 69999, expected: entity.FollowerTier50K70K},
		// The gap between 50k_70k and 100k_plus belongs to 50k_70k.
		{count: 70000, expected: entity.FollowerTier50K70K},
		{count: 80000, expected: entity.FollowerTier50K70K},
		{count: 99999, expected: entity.FollowerTier50K70K},
		{count: 100000, expected: entity.FollowerTier100KPlus},
	}

	for _, tc := range testcases {
		got, ok := Bucket(tc.count)
		require.True(t, ok, "count %d", tc.count)
		require.Equal(t, tc.expected, got, "count %d", tc.count)
	}

	_, ok := Bucket(-5)
	require.False(t, ok)
}

func Test_CanApply(t *testing.T) {
	testcases := []struct {
		name     string
		count    int64
		hasCount bool
		allowed  []entity.FollowerTier
		expected bool
	}{
		{
			name:     "unrestricted campaign accepts everyone",
			count:    5000,
			hasCount: true,
			expected: true,
		},
		{
			name:     "unknown count is denied on restricted campaign",
			hasCount: false,
			allowed:  []entity.FollowerTier{entity.FollowerTier10K30K},
			expected: false,
		},
		{
			name:     "exact bucket match",
			count:    15000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier10K30K},
			expected: true,
		},
		{
			name:     "above the ceiling of every allowed bucket",
			count:    31000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier10K30K},
			expected: true,
		},
		{
			name:     "below the floor of the allowed bucket",
			count:    15000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier30K50K},
			expected: false,
		},
		{
			name:     "gap count matches 50k_70k directly",
			count:    80000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier50K70K},
			expected: true,
		},
		{
			name:     "12000 followers against under_10k exceeds its ceiling",
			count:    12000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTierUnder10K},
			expected: true,
		},
		{
			name:     "unbounded bucket never triggers the ceiling rule",
			count:    50000,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier100KPlus},
			expected: false,
		},
		{
			name:     "negative count is denied",
			count:    -10,
			hasCount: true,
			allowed:  []entity.FollowerTier{entity.FollowerTier10K30K},
			expected: false,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, CanApply(tc.count, tc.hasCount, tc.allowed))
		})
	}
}

func Test_BucketCeiling(t *testing.T) {
	ceiling, isUnbounded := BucketCeiling([]entity.FollowerTier{
		entity.FollowerTierUnder10K, entity.FollowerTier10K30K,
	})
	require.False(t, isUnbounded)
	require.Equal(t, int64(29999), ceiling)

	_, isUnbounded = BucketCeiling([]entity.FollowerTier{entity.FollowerTier100KPlus})
	require.True(t, isUnbounded)
}

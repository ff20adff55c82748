package tier

import (
	"math"
	"strconv"
	"strings"

	"github.com/kolstage/backend/internal/entity"
	"golang.org/x/exp/slices"
)

const unbounded = int64(math.MaxInt64)

type tierRange[T comparable] struct {
	tier T
	min  int64
	max  int64
}

// programTiers partitions [0, inf) with no gaps. Order matters, it defines
// the tier ranking.
var programTiers = []tierRange[entity.ProgramTier]{
	{tier: entity.TierInsider, min: 0, max: 9999},
	{tier: entity.TierOperative, min: 10000, max: 29999},
	{tier: entity.TierElite, min: 30000, max: 49999},
	{tier: entity.TierPrestige, min: 50000, max: 99999},
	{tier: entity.TierAuthority, min: 100000, max: 199999},
	{tier: entity.TierSovereign, min: 200000, max: 299999},
	{tier: entity.TierImperial, min: 300000, max: 499999},
	{tier: entity.TierTheIcon, min: 500000, max: unbounded},
}

// followerTiers leaves [70000, 100000) uncovered on purpose, Bucket maps
// that gap to 50k_70k.
var followerTiers = []tierRange[entity.FollowerTier]{
	{tier: entity.FollowerTierUnder10K, min: 0, max: 9999},
	{tier: entity.FollowerTier10K30K, min: 10000, max: 29999},
	{tier: entity.FollowerTier30K50K, min: 30000, max: 49999},
	{tier: entity.FollowerTier50K70K, min: 50000, max: 69999},
	{tier: entity.FollowerTier100KPlus, min: 100000, max: unbounded},
}

// Classify maps a follower count to its program tier. A negative count has
// no tier.
func Classify(count int64) (entity.ProgramTier, bool) {
	if count < 0 {
		return "", false
	}

	for _, r := range programTiers {
		if count >= r.min && count <= r.max {
			return r.tier, true
		}
	}

	return "", false
}

// Order returns the 0-based rank of a program tier, or -1 for an unknown
// tier. The sentinel compares lower than every real tier.
func Order(tier entity.ProgramTier) int {
	for i, r := range programTiers {
		if r.tier == tier {
			return i
		}
	}

	return -1
}

// ParseFollowerCount parses a free-text follower count. All digits of the
// string are concatenated before the multiplier is applied, so "1,0 0 0"
// reads as 1000. A ten-thousand marker (만, 万, 萬, or "man") multiplies by
// 10000, a trailing "k" by 1000.
func ParseFollowerCount(input string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, false
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		return 0, false
	}

	count, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.ContainsAny(s, "만万萬") || strings.Contains(s, "man"):
		count *= 10000
	case strings.HasSuffix(s, "k"):
		count *= 1000
	}

	return count, true
}

// UpgradeEligible reports whether the follower count justifies a tier
// upgrade request: the derived tier must rank strictly higher than the
// current one and no other request may be pending.
func UpgradeEligible(
	current entity.ProgramTier, hasCurrent bool, count int64, pending bool,
) (entity.ProgramTier, bool) {
	if pending {
		return "", false
	}

	eligible, ok := Classify(count)
	if !ok {
		return "", false
	}

	currentOrder := -1
	if hasCurrent {
		currentOrder = Order(current)
	}

	if Order(eligible) <= currentOrder {
		return "", false
	}

	return eligible, true
}

// Bucket maps a follower count to its campaign eligibility bucket.
func Bucket(count int64) (entity.FollowerTier, bool) {
	if count < 0 {
		return "", false
	}

	for _, r := range followerTiers {
		if count >= r.min && count <= r.max {
			return r.tier, true
		}
	}

	if count >= 70000 && count < 100000 {
		return entity.FollowerTier50K70K, true
	}

	return "", false
}

// BucketCeiling returns the highest follower count covered by the allowed
// buckets. The second result is true when any allowed bucket is unbounded.
func BucketCeiling(allowed []entity.FollowerTier) (int64, bool) {
	var ceiling int64
	for _, t := range allowed {
		for _, r := range followerTiers {
			if r.tier != t {
				continue
			}

			if r.max == unbounded {
				return 0, true
			}

			if r.max > ceiling {
				ceiling = r.max
			}
		}
	}

	return ceiling, false
}

// CanApply decides campaign eligibility. An empty allowed set means the
// campaign is unrestricted. A count above the ceiling of every allowed
// bucket is eligible too: restricting a campaign to small buckets sets a
// floor, not a ceiling.
func CanApply(count int64, hasCount bool, allowed []entity.FollowerTier) bool {
	if len(allowed) == 0 {
		return true
	}

	if !hasCount || count < 0 {
		return false
	}

	if bucket, ok := Bucket(count); ok && slices.Contains(allowed, bucket) {
		return true
	}

	ceiling, isUnbounded := BucketCeiling(allowed)
	if isUnbounded {
		return false
	}

	return count > ceiling
}

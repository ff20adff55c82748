package entity

import "github.com/kolstage/backend/pkg/enum"

// ProgramTier is the reward-program level shown on a KOL profile. It is
// cosmetic and never gates campaign eligibility.
type ProgramTier string

var (
	TierInsider   = enum.New(ProgramTier("INSIDER"))
	TierOperative = enum.New(ProgramTier("OPERATIVE"))
	TierElite     = enum.New(ProgramTier("ELITE"))
	TierPrestige  = enum.New(ProgramTier("PRESTIGE"))
	TierAuthority = enum.New(ProgramTier("AUTHORITY"))
	TierSovereign = enum.New(ProgramTier("SOVEREIGN"))
	TierImperial  = enum.New(ProgramTier("IMPERIAL"))
	TierTheIcon   = enum.New(ProgramTier("THE ICON"))
)

// FollowerTier is a campaign-side eligibility bucket, a separate enumeration
// from ProgramTier.
type FollowerTier string

var (
	FollowerTierUnder10K = enum.New(FollowerTier("under_10k"))
	FollowerTier10K30K   = enum.New(FollowerTier("10k_30k"))
	FollowerTier30K50K   = enum.New(FollowerTier("30k_50k"))
	FollowerTier50K70K   = enum.New(FollowerTier("50k_70k"))
	FollowerTier100KPlus = enum.New(FollowerTier("100k_plus"))
)

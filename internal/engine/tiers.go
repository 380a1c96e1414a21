package engine

// Tier is the rank shown next to the player's XP.
type Tier string

const (
	TierNovice   Tier = "Novice"
	TierMerchant Tier = "Merchant"
	TierTycoon   Tier = "Tycoon"
	TierEmperor  Tier = "Emperor"
)

type tierStep struct {
	tier  Tier
	above int // reached when XP is strictly greater than this
}

// tierLadder is checked bottom-up; a later match overrides an earlier one.
var tierLadder = []tierStep{
	{TierMerchant, 500},
	{TierTycoon, 1500},
	{TierEmperor, 3000},
}

// Tiers returns every tier from lowest to highest.
func Tiers() []Tier {
	out := []Tier{TierNovice}
	for _, s := range tierLadder {
		out = append(out, s.tier)
	}
	return out
}

func TierForXP(xp int) Tier {
	tier := TierNovice
	for _, s := range tierLadder {
		if xp > s.above {
			tier = s.tier
		}
	}
	return tier
}

// Rank orders tiers; Novice is 0. Unknown tiers rank -1.
func (t Tier) Rank() int {
	for i, tt := range Tiers() {
		if tt == t {
			return i
		}
	}
	return -1
}

// NextTier returns the tier after the one xp is in and the XP still needed to
// reach it. ok is false at Emperor.
func NextTier(xp int) (next Tier, xpNeeded int, ok bool) {
	for _, s := range tierLadder {
		if xp <= s.above {
			return s.tier, s.above + 1 - xp, true
		}
	}
	return "", 0, false
}

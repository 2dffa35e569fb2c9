package profile

import "math"

// LeakTag names a tendency detected in the human player's decisions.
type LeakTag string

const (
	LeakOverFold     LeakTag = "overFold"
	LeakOverCall     LeakTag = "overCall"
	LeakOverBluff    LeakTag = "overBluff"
	LeakMissedValue  LeakTag = "missedValue"
	LeakPassiveCheck LeakTag = "passiveCheck"
)

// AllLeakTags lists every tracked leak, in display order.
var AllLeakTags = []LeakTag{LeakOverFold, LeakOverCall, LeakOverBluff, LeakMissedValue, LeakPassiveCheck}

// Progress accumulates the human player's results across hands.
type Progress struct {
	XP          int             `json:"xp"`
	ZoneIndex   int             `json:"zone_index"`
	HandsPlayed int             `json:"hands_played"`
	HandsWon    int             `json:"hands_won"`
	Leaks       map[LeakTag]int `json:"leaks"`
}

// NewProgress returns zeroed progress with every leak counter present.
func NewProgress() *Progress {
	leaks := make(map[LeakTag]int, len(AllLeakTags))
	for _, tag := range AllLeakTags {
		leaks[tag] = 0
	}
	return &Progress{Leaks: leaks}
}

// RecordDecision awards XP for a decision and counts any leak it showed.
// Best-line decisions earn 14 XP, others 6.
func (p *Progress) RecordDecision(wasBest bool, leak LeakTag) {
	if wasBest {
		p.XP += 14
	} else {
		p.XP += 6
	}
	if leak != "" {
		p.Leaks[leak]++
	}
}

// HandOutcome describes how a finished hand went for the player.
type HandOutcome struct {
	Won      bool
	Chopped  bool
	Accuracy float64 // share of decisions matching the best line, [0,1]
}

// RecordHand awards end-of-hand XP: 25 base, 16 for a win (8 for a
// chop), plus up to 18 for decision accuracy.
func (p *Progress) RecordHand(outcome HandOutcome) {
	p.HandsPlayed++
	if outcome.Won {
		p.HandsWon++
	}

	winBonus := 0
	switch {
	case outcome.Won:
		winBonus = 16
	case outcome.Chopped:
		winBonus = 8
	}
	p.XP += 25 + winBonus + int(math.Round(outcome.Accuracy*18))
}

// UnlockZones advances ZoneIndex to the highest zone the XP allows.
// The index never moves backwards.
func (p *Progress) UnlockZones(cfg *Config) {
	for i, zone := range cfg.Zones {
		if p.XP >= zone.UnlockXP && i > p.ZoneIndex {
			p.ZoneIndex = i
		}
	}
}

// TopLeak returns the most frequent leak, or "" when none recorded.
func (p *Progress) TopLeak() LeakTag {
	var top LeakTag
	best := 0
	for _, tag := range AllLeakTags {
		if p.Leaks[tag] > best {
			best = p.Leaks[tag]
			top = tag
		}
	}
	return top
}

// WinRate returns the win percentage rounded to a whole number.
func (p *Progress) WinRate() int {
	if p.HandsPlayed == 0 {
		return 0
	}
	return int(math.Round(float64(p.HandsWon) / float64(p.HandsPlayed) * 100))
}

package evaluator

import (
	"sort"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
)

// Category classifies a five-card poker hand. Higher is better.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandResult is the best five-card hand found for a player, with the
// score vector used for showdown comparison. Vector[0] is the category
// rank and the remaining elements are the category tiebreakers.
type HandResult struct {
	Category Category
	Cards    []deck.Card
	Vector   []int
}

// Compare returns >0 if r beats other, <0 if other beats r, 0 on a chop.
// Vectors are compared lexicographically; missing elements count as zero.
func (r HandResult) Compare(other HandResult) int {
	n := len(r.Vector)
	if len(other.Vector) > n {
		n = len(other.Vector)
	}
	for i := 0; i < n; i++ {
		var a, b int
		if i < len(r.Vector) {
			a = r.Vector[i]
		}
		if i < len(other.Vector) {
			b = other.Vector[i]
		}
		if a != b {
			return a - b
		}
	}
	return 0
}

// String renders the best five cards in display order.
func (r HandResult) String() string {
	return deck.CardsString(r.Cards)
}

type fiveEval struct {
	category    Category
	tiebreakers []int
	cards       []deck.Card
}

// Evaluate finds the best five-card hand from hole plus board cards.
// With fewer than five cards total it returns a zero-valued high card
// result that loses to every real hand.
func Evaluate(hole, board []deck.Card) HandResult {
	pool := make([]deck.Card, 0, len(hole)+len(board))
	pool = append(pool, hole...)
	pool = append(pool, board...)

	if len(pool) < 5 {
		return HandResult{
			Category: HighCard,
			Cards:    nil,
			Vector:   []int{0, 0, 0, 0, 0, 0},
		}
	}

	var best fiveEval
	first := true
	combo := make([]deck.Card, 5)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			candidate := evaluateFive(combo)
			if first || compareFive(candidate, best) > 0 {
				best = candidate
				first = false
			}
			return
		}
		for i := start; i <= len(pool)-(5-depth); i++ {
			combo[depth] = pool[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)

	vector := make([]int, 0, 1+len(best.tiebreakers))
	vector = append(vector, int(best.category))
	vector = append(vector, best.tiebreakers...)

	return HandResult{
		Category: best.category,
		Cards:    sortShowdownCards(best.cards, best.category, best.tiebreakers),
		Vector:   vector,
	}
}

func compareFive(a, b fiveEval) int {
	if a.category != b.category {
		return int(a.category) - int(b.category)
	}
	n := len(a.tiebreakers)
	if len(b.tiebreakers) > n {
		n = len(b.tiebreakers)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a.tiebreakers) {
			av = a.tiebreakers[i]
		}
		if i < len(b.tiebreakers) {
			bv = b.tiebreakers[i]
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}

// straightHighValue returns the top card of a straight formed by the five
// distinct values, 5 for the wheel (A-2-3-4-5), or 0 if not a straight.
func straightHighValue(valuesDesc []int) int {
	unique := make([]int, 0, 5)
	seen := make(map[int]bool, 5)
	for _, v := range valuesDesc {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	if len(unique) != 5 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))

	if unique[0]-unique[4] == 4 {
		return unique[0]
	}
	if unique[0] == 14 && unique[1] == 5 && unique[2] == 4 && unique[3] == 3 && unique[4] == 2 {
		return 5
	}
	return 0
}

type rankGroup struct {
	value int
	count int
}

func rankGroups(cards []deck.Card) []rankGroup {
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		counts[c.Value()]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for value, count := range counts {
		groups = append(groups, rankGroup{value: value, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})
	return groups
}

func evaluateFive(cards []deck.Card) fiveEval {
	valuesDesc := make([]int, len(cards))
	for i, c := range cards {
		valuesDesc[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(valuesDesc)))

	groups := rankGroups(cards)

	isFlush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			isFlush = false
			break
		}
	}
	straightHigh := straightHighValue(valuesDesc)

	out := func(cat Category, tiebreakers []int) fiveEval {
		kept := make([]deck.Card, len(cards))
		copy(kept, cards)
		return fiveEval{category: cat, tiebreakers: tiebreakers, cards: kept}
	}

	switch {
	case isFlush && straightHigh > 0:
		return out(StraightFlush, []int{straightHigh})
	case groups[0].count == 4:
		kicker := 0
		if len(groups) > 1 {
			kicker = groups[1].value
		}
		return out(FourOfAKind, []int{groups[0].value, kicker})
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count == 2:
		return out(FullHouse, []int{groups[0].value, groups[1].value})
	case isFlush:
		return out(Flush, valuesDesc)
	case straightHigh > 0:
		return out(Straight, []int{straightHigh})
	case groups[0].count == 3:
		tiebreakers := []int{groups[0].value}
		for _, g := range groups[1:] {
			tiebreakers = append(tiebreakers, g.value)
		}
		return out(ThreeOfAKind, tiebreakers)
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		kicker := 0
		for _, g := range groups {
			if g.count == 1 {
				kicker = g.value
				break
			}
		}
		return out(TwoPair, []int{groups[0].value, groups[1].value, kicker})
	case groups[0].count == 2:
		tiebreakers := []int{groups[0].value}
		for _, g := range groups[1:] {
			tiebreakers = append(tiebreakers, g.value)
		}
		return out(OnePair, tiebreakers)
	default:
		return out(HighCard, valuesDesc)
	}
}

// sortShowdownCards orders the winning five cards for display: grouped
// ranks first, then descending rank. A wheel shows the ace last.
func sortShowdownCards(cards []deck.Card, category Category, tiebreakers []int) []deck.Card {
	ordered := make([]deck.Card, len(cards))
	copy(ordered, cards)

	if (category == Straight || category == StraightFlush) && len(tiebreakers) > 0 && tiebreakers[0] == 5 {
		hasAce := false
		for _, c := range ordered {
			if c.IsAce() {
				hasAce = true
				break
			}
		}
		if hasAce {
			sort.Slice(ordered, func(i, j int) bool {
				return wheelValue(ordered[i]) > wheelValue(ordered[j])
			})
			return ordered
		}
	}

	counts := make(map[int]int, len(ordered))
	for _, c := range ordered {
		counts[c.Value()]++
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if counts[a.Value()] != counts[b.Value()] {
			return counts[a.Value()] > counts[b.Value()]
		}
		if a.Value() != b.Value() {
			return a.Value() > b.Value()
		}
		return a.Suit < b.Suit
	})
	return ordered
}

func wheelValue(c deck.Card) int {
	if c.IsAce() {
		return 1
	}
	return c.Value()
}

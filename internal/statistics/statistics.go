// Package statistics aggregates per-hand results from advisor
// simulations into win-rate and bb/hand figures with error bars.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is the outcome of one simulated hand from the hero's side.
type HandResult struct {
	NetBB          float64 // net big blinds won or lost
	Won            bool
	Chopped        bool
	WentToShowdown bool
	FinalPot       int // chips
	Decisions      int // hero decisions taken this hand
	BestDecisions  int // of those, how many matched the advisor's best line
}

// Statistics accumulates hand results. Zero value is ready to use.
// Not safe for concurrent use; give each worker its own and Merge.
type Statistics struct {
	Hands  int
	Wins   int
	Chops  int
	SumBB  float64
	SumBB2 float64
	Values []float64

	// Where the chips came from: pots taken at showdown versus pots
	// taken by making everyone fold.
	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Decisions     int
	BestDecisions int

	MaxPotChips int
}

// Add incorporates one hand result.
func (s *Statistics) Add(result HandResult) {
	s.Hands++
	s.SumBB += result.NetBB
	s.SumBB2 += result.NetBB * result.NetBB
	s.Values = append(s.Values, result.NetBB)

	if result.Won {
		s.Wins++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.Chopped {
		s.Chops++
	}
	if result.WentToShowdown {
		s.ShowdownBB += result.NetBB
	} else {
		s.NonShowdownBB += result.NetBB
	}

	s.Decisions += result.Decisions
	s.BestDecisions += result.BestDecisions

	if result.FinalPot > s.MaxPotChips {
		s.MaxPotChips = result.FinalPot
	}
}

// Merge folds another worker's statistics into this one.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Chops += other.Chops
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.Decisions += other.Decisions
	s.BestDecisions += other.BestDecisions
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
	}
}

// Mean returns the arithmetic mean in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of per-hand results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median per-hand result.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// WinRate returns the fraction of hands won outright.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// BestLineRate returns the fraction of hero decisions that matched the
// advisor's recommendation.
func (s *Statistics) BestLineRate() float64 {
	if s.Decisions == 0 {
		return 0
	}
	return float64(s.BestDecisions) / float64(s.Decisions)
}

// Validate checks internal accounting consistency.
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length %d does not match hands count %d", len(s.Values), s.Hands)
	}
	if diff := math.Abs(s.SumBB - s.ShowdownBB - s.NonShowdownBB); diff > 1e-6 {
		return fmt.Errorf("ledger mismatch: total %.6f, showdown %.6f, non-showdown %.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.ShowdownWins+s.NonShowdownWins != s.Wins {
		return fmt.Errorf("win split %d+%d does not match wins %d",
			s.ShowdownWins, s.NonShowdownWins, s.Wins)
	}
	if s.Wins+s.Chops > s.Hands {
		return fmt.Errorf("wins %d plus chops %d exceed hands %d", s.Wins, s.Chops, s.Hands)
	}
	if s.BestDecisions > s.Decisions {
		return fmt.Errorf("best decisions %d exceed decisions %d", s.BestDecisions, s.Decisions)
	}
	return nil
}

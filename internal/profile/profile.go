package profile

// Archetype classifies an opponent's broad playing style.
type Archetype string

const (
	Nit    Archetype = "Nit"
	TAG    Archetype = "TAG"
	LAG    Archetype = "LAG"
	Maniac Archetype = "Maniac"
)

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	switch a {
	case Nit, TAG, LAG, Maniac:
		return true
	default:
		return false
	}
}

// Leaks flags the exploitable tendencies baked into an opponent.
type Leaks struct {
	OverFoldToRaise bool `hcl:"over_fold_to_raise,optional"`
	CallsTooWide    bool `hcl:"calls_too_wide,optional"`
	OverBluffsRiver bool `hcl:"over_bluffs_river,optional"`
	CBetsTooMuch    bool `hcl:"c_bets_too_much,optional"`
	MissesThinValue bool `hcl:"misses_thin_value,optional"`
}

// Any reports whether at least one leak is set.
func (l Leaks) Any() bool {
	return l.OverFoldToRaise || l.CallsTooWide || l.OverBluffsRiver || l.CBetsTooMuch || l.MissesThinValue
}

// Profile describes a scripted opponent. Skill, Aggression and BluffRate
// are in [0,1]; skill scales both decision noise and solver trust.
type Profile struct {
	ID         string    `hcl:"id,label"`
	Name       string    `hcl:"name"`
	Archetype  Archetype `hcl:"archetype"`
	StyleLabel string    `hcl:"style,optional"`
	Skill      float64   `hcl:"skill"`
	Aggression float64   `hcl:"aggression"`
	BluffRate  float64   `hcl:"bluff_rate"`
	Leaks      Leaks     `hcl:"leaks,block"`
}

// SolverTrust is how much of the solver's strategy this opponent mixes
// into its own decisions, scaled by the advice confidence.
func (p Profile) SolverTrust(confidence float64) float64 {
	base := clamp01((p.Skill - 0.45) / 0.5)
	return base * (0.55 + 0.45*clamp01(confidence))
}

// FlattenAmount is how far this opponent's action weights get pulled
// toward uniform. Weaker players are noisier.
func (p Profile) FlattenAmount() float64 {
	return (1 - p.Skill) * 0.34
}

// JitterAmount is the magnitude of per-action random weight noise.
func (p Profile) JitterAmount() float64 {
	return (1 - p.Skill) * 0.28
}

// SizingNoise is the relative wobble applied to raise sizing.
func (p Profile) SizingNoise() float64 {
	return (1 - p.Skill) * 0.32
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

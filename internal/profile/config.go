package profile

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the opponent roster, grouped into training zones that
// unlock as the player earns XP.
type Config struct {
	Zones []Zone `hcl:"zone,block"`
}

// Zone is one tier of opponents.
type Zone struct {
	Name      string    `hcl:"name,label"`
	Subtitle  string    `hcl:"subtitle,optional"`
	UnlockXP  int       `hcl:"unlock_xp,optional"`
	Focus     []string  `hcl:"focus,optional"`
	Opponents []Profile `hcl:"opponent,block"`
}

// DefaultConfig returns the built-in roster used when no config file
// is present.
func DefaultConfig() *Config {
	return &Config{
		Zones: []Zone{
			{
				Name:     "basement",
				Subtitle: "Loose passives and scared money",
				UnlockXP: 0,
				Focus:    []string{"value betting", "not bluffing calling stations"},
				Opponents: []Profile{
					{
						ID: "rocky", Name: "Rocky", Archetype: Nit, StyleLabel: "scared money",
						Skill: 0.25, Aggression: 0.2, BluffRate: 0.08,
						Leaks: Leaks{OverFoldToRaise: true, MissesThinValue: true},
					},
					{
						ID: "callie", Name: "Callie", Archetype: TAG, StyleLabel: "sticky caller",
						Skill: 0.3, Aggression: 0.35, BluffRate: 0.12,
						Leaks: Leaks{CallsTooWide: true},
					},
				},
			},
			{
				Name:     "club",
				Subtitle: "Regulars who punish mistakes",
				UnlockXP: 220,
				Focus:    []string{"3-bet defense", "river discipline"},
				Opponents: []Profile{
					{
						ID: "vera", Name: "Vera", Archetype: TAG, StyleLabel: "solid reg",
						Skill: 0.6, Aggression: 0.5, BluffRate: 0.2,
						Leaks: Leaks{CBetsTooMuch: true},
					},
					{
						ID: "dash", Name: "Dash", Archetype: LAG, StyleLabel: "pressure merchant",
						Skill: 0.65, Aggression: 0.75, BluffRate: 0.34,
						Leaks: Leaks{OverBluffsRiver: true},
					},
				},
			},
			{
				Name:     "highstakes",
				Subtitle: "Aggression with teeth",
				UnlockXP: 600,
				Focus:    []string{"bluff catching", "stack pressure"},
				Opponents: []Profile{
					{
						ID: "blaze", Name: "Blaze", Archetype: Maniac, StyleLabel: "full throttle",
						Skill: 0.7, Aggression: 0.92, BluffRate: 0.48,
						Leaks: Leaks{OverBluffsRiver: true, CallsTooWide: true},
					},
					{
						ID: "oracle", Name: "Oracle", Archetype: TAG, StyleLabel: "near unexploitable",
						Skill: 0.92, Aggression: 0.58, BluffRate: 0.24,
						Leaks: Leaks{},
					},
				},
			},
		},
	}
}

// LoadConfig loads a roster from an HCL file, falling back to the
// built-in roster when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	for zi := range config.Zones {
		for oi := range config.Zones[zi].Opponents {
			opp := &config.Zones[zi].Opponents[oi]
			if opp.Name == "" {
				opp.Name = opp.ID
			}
			if opp.StyleLabel == "" {
				opp.StyleLabel = string(opp.Archetype)
			}
		}
	}

	return &config, nil
}

// Validate checks the roster for playable values.
func (c *Config) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("at least one zone must be configured")
	}

	seen := make(map[string]bool)
	for _, zone := range c.Zones {
		if len(zone.Opponents) == 0 {
			return fmt.Errorf("zone %s: at least one opponent required", zone.Name)
		}
		for _, opp := range zone.Opponents {
			if opp.ID == "" {
				return fmt.Errorf("zone %s: opponent id must not be empty", zone.Name)
			}
			if seen[opp.ID] {
				return fmt.Errorf("duplicate opponent id %s", opp.ID)
			}
			seen[opp.ID] = true
			if !opp.Archetype.Valid() {
				return fmt.Errorf("opponent %s: invalid archetype %q", opp.ID, opp.Archetype)
			}
			if opp.Skill < 0 || opp.Skill > 1 {
				return fmt.Errorf("opponent %s: skill must be in [0,1]", opp.ID)
			}
			if opp.Aggression < 0 || opp.Aggression > 1 {
				return fmt.Errorf("opponent %s: aggression must be in [0,1]", opp.ID)
			}
			if opp.BluffRate < 0 || opp.BluffRate > 1 {
				return fmt.Errorf("opponent %s: bluff_rate must be in [0,1]", opp.ID)
			}
		}
	}
	return nil
}

// FindOpponent returns the profile with the given id, searching all zones.
func (c *Config) FindOpponent(id string) (Profile, bool) {
	for _, zone := range c.Zones {
		for _, opp := range zone.Opponents {
			if opp.ID == id {
				return opp, true
			}
		}
	}
	return Profile{}, false
}

// ZoneForXP returns the highest zone unlocked at the given XP.
func (c *Config) ZoneForXP(xp int) Zone {
	best := c.Zones[0]
	for _, zone := range c.Zones[1:] {
		if xp >= zone.UnlockXP {
			best = zone
		}
	}
	return best
}

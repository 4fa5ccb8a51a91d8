package entity

import (
	"fmt"
	"strings"
)

// Upgrade identifies a single unlockable ability
type Upgrade int

const (
	UpgradeJump Upgrade = iota
	UpgradeDash
	UpgradeSwim
	UpgradeGlide
	UpgradeHeat
	UpgradeCold
	UpgradeCut
	UpgradeSmash

	upgradeCount
)

var upgradeNames = [upgradeCount]string{
	"Jump", "Dash", "Swim", "Glide", "Heat", "Cold", "Cut", "Smash",
}

// String returns the upgrade name
func (u Upgrade) String() string {
	if u < 0 || u >= upgradeCount {
		return "Unknown"
	}
	return upgradeNames[u]
}

// AllUpgrades returns every upgrade in declaration order
func AllUpgrades() []Upgrade {
	out := make([]Upgrade, 0, upgradeCount)
	for u := Upgrade(0); u < upgradeCount; u++ {
		out = append(out, u)
	}
	return out
}

// ParseUpgrade resolves an upgrade by case-insensitive name
func ParseUpgrade(name string) (Upgrade, error) {
	for u := Upgrade(0); u < upgradeCount; u++ {
		if strings.EqualFold(upgradeNames[u], name) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown upgrade %q", name)
}

// UpgradeSet holds the unlock flags read by the movement core every frame.
// It is written between frames by whatever owns ability unlocks.
type UpgradeSet struct {
	Jump  bool `json:"jump,omitempty" yaml:"jump,omitempty"`
	Dash  bool `json:"dash,omitempty" yaml:"dash,omitempty"`
	Swim  bool `json:"swim,omitempty" yaml:"swim,omitempty"`
	Glide bool `json:"glide,omitempty" yaml:"glide,omitempty"`
	Heat  bool `json:"heat,omitempty" yaml:"heat,omitempty"`
	Cold  bool `json:"cold,omitempty" yaml:"cold,omitempty"`
	Cut   bool `json:"cut,omitempty" yaml:"cut,omitempty"`
	Smash bool `json:"smash,omitempty" yaml:"smash,omitempty"`
}

func (s *UpgradeSet) flag(u Upgrade) *bool {
	switch u {
	case UpgradeJump:
		return &s.Jump
	case UpgradeDash:
		return &s.Dash
	case UpgradeSwim:
		return &s.Swim
	case UpgradeGlide:
		return &s.Glide
	case UpgradeHeat:
		return &s.Heat
	case UpgradeCold:
		return &s.Cold
	case UpgradeCut:
		return &s.Cut
	case UpgradeSmash:
		return &s.Smash
	}
	return nil
}

// Has reports whether the upgrade is unlocked
func (s UpgradeSet) Has(u Upgrade) bool {
	f := s.flag(u)
	return f != nil && *f
}

// Set turns an upgrade on or off. Unknown upgrades are ignored.
func (s *UpgradeSet) Set(u Upgrade, on bool) {
	if f := s.flag(u); f != nil {
		*f = on
	}
}

// String lists the unlocked upgrades, or "none"
func (s UpgradeSet) String() string {
	var names []string
	for _, u := range AllUpgrades() {
		if s.Has(u) {
			names = append(names, u.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Immune reports whether the set mitigates the given hazard zone.
// Climb zones are never hazardous.
func (s UpgradeSet) Immune(z Zone) bool {
	switch z {
	case ZoneWater:
		return s.Swim
	case ZoneHot:
		return s.Heat
	case ZoneCold:
		return s.Cold
	default:
		return true
	}
}

// CanBreak reports whether the set allows breaking the given breakable kind
func (s UpgradeSet) CanBreak(k BreakableKind) bool {
	switch k {
	case BreakableCut:
		return s.Cut
	case BreakableSmash:
		return s.Smash
	default:
		return false
	}
}

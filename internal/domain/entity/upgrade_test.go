package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgrade_String(t *testing.T) {
	names := []string{"Jump", "Dash", "Swim", "Glide", "Heat", "Cold", "Cut", "Smash"}
	for i, u := range AllUpgrades() {
		assert.Equal(t, names[i], u.String())
	}
	assert.Equal(t, "Unknown", Upgrade(-1).String())
	assert.Equal(t, "Unknown", upgradeCount.String())
}

func TestParseUpgrade(t *testing.T) {
	u, err := ParseUpgrade("swim")
	require.NoError(t, err)
	assert.Equal(t, UpgradeSwim, u)

	u, err = ParseUpgrade("SMASH")
	require.NoError(t, err)
	assert.Equal(t, UpgradeSmash, u)

	_, err = ParseUpgrade("fly")
	assert.Error(t, err)
}

func TestUpgradeSet_SetHas(t *testing.T) {
	var set UpgradeSet

	for _, u := range AllUpgrades() {
		assert.False(t, set.Has(u), u.String())
		set.Set(u, true)
		assert.True(t, set.Has(u), u.String())
	}

	set.Set(UpgradeDash, false)
	assert.False(t, set.Dash)
	assert.True(t, set.Jump)

	// Out of range upgrades are ignored
	set.Set(Upgrade(99), true)
	assert.False(t, set.Has(Upgrade(99)))
}

func TestUpgradeSet_Immune(t *testing.T) {
	tests := []struct {
		name string
		set  UpgradeSet
		zone Zone
		want bool
	}{
		{"water without swim", UpgradeSet{}, ZoneWater, false},
		{"water with swim", UpgradeSet{Swim: true}, ZoneWater, true},
		{"hot without heat", UpgradeSet{Cold: true}, ZoneHot, false},
		{"hot with heat", UpgradeSet{Heat: true}, ZoneHot, true},
		{"cold with cold", UpgradeSet{Cold: true}, ZoneCold, true},
		{"climb is never hazardous", UpgradeSet{}, ZoneClimb, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Immune(tt.zone))
		})
	}
}

func TestUpgradeSet_CanBreak(t *testing.T) {
	assert.False(t, UpgradeSet{}.CanBreak(BreakableCut))
	assert.True(t, UpgradeSet{Cut: true}.CanBreak(BreakableCut))
	assert.False(t, UpgradeSet{Cut: true}.CanBreak(BreakableSmash))
	assert.True(t, UpgradeSet{Smash: true}.CanBreak(BreakableSmash))
}

func TestUpgradeSet_String(t *testing.T) {
	assert.Equal(t, "none", UpgradeSet{}.String())
	assert.Equal(t, "Dash", UpgradeSet{Dash: true}.String())
	assert.Equal(t, "Jump,Swim,Smash", UpgradeSet{Smash: true, Jump: true, Swim: true}.String())
}

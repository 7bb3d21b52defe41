// selection_test.go
//
// Property management administration service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fastighet-admin.
// fastighet-admin is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fastighet-admin is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fastighet-admin.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() Options {
	return Options{
		Properties: []Option{
			{ID: "A", Label: "Alfa"},
			{ID: "B", Label: "Beta"},
			{ID: "P1", Label: "Park 1"},
			{ID: "P2", Label: "Park 2"},
		},
		Buildings: []Option{
			{ID: "A1", ParentID: "A", Label: "Hus A1"},
			{ID: "A2", ParentID: "A", Label: "Hus A2"},
			{ID: "B1", ParentID: "B", Label: "Hus B1"},
			{ID: "B3", ParentID: "P1", Label: "Hus B3"},
			{ID: "B7", ParentID: "P2", Label: "Hus B7"},
		},
		Units: []Option{
			{ID: "U1", ParentID: "A1", Label: "1001"},
			{ID: "U2", ParentID: "A2", Label: "1101"},
			{ID: "U3", ParentID: "B1", Label: "2001"},
			{ID: "U9", ParentID: "B7", Label: "Förråd 9"},
		},
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"property":  LevelProperty,
		"Fastighet": LevelProperty,
		"byggnad":   LevelBuilding,
		"buildings": LevelBuilding,
		"objekt":    LevelUnit,
		" unit ":    LevelUnit,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("floor")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLevelText(t *testing.T) {
	text, err := LevelBuilding.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "building", string(text))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("objekt")))
	assert.Equal(t, LevelUnit, l)

	_, err = Level(7).MarshalText()
	assert.Error(t, err)
}

func TestResolveDefaultsToFirst(t *testing.T) {
	c := New(LevelBuilding, Presets{}).Resolve(fixture())

	assert.Equal(t, "A", c.Selected(LevelProperty))
	assert.Equal(t, "A1", c.Selected(LevelBuilding))
	assert.Equal(t, "A1", c.Subject())
	assert.False(t, c.Slots[LevelProperty].Locked)
}

func TestChooseParentResetsUnlockedChildren(t *testing.T) {
	opts := fixture()
	c := New(LevelUnit, Presets{}).Resolve(opts)
	assert.Equal(t, "U1", c.Subject())

	c, err := c.Choose(LevelProperty, "B", opts)
	require.NoError(t, err)
	assert.Equal(t, "B1", c.Selected(LevelBuilding))
	assert.Equal(t, "U3", c.Selected(LevelUnit))

	// a property without buildings leaves every descendant unset
	c, err = c.Choose(LevelProperty, "P1", opts)
	require.NoError(t, err)
	assert.Equal(t, "B3", c.Selected(LevelBuilding))
	assert.Equal(t, "", c.Selected(LevelUnit))
}

func TestRejectedBuildingPresetFallsBack(t *testing.T) {
	c := New(LevelBuilding, Presets{Property: "P1", Building: "B7"}).Resolve(fixture())

	assert.Equal(t, "P1", c.Selected(LevelProperty))
	assert.True(t, c.Slots[LevelProperty].Locked)

	slot := c.Slots[LevelBuilding]
	assert.Equal(t, "B3", slot.ID)
	assert.False(t, slot.Locked)
	assert.True(t, slot.Rejected)
}

func TestRejectedPresetWithEmptyParentIsUnset(t *testing.T) {
	opts := fixture()
	opts.Buildings = opts.Buildings[:3]

	c := New(LevelBuilding, Presets{Property: "P1", Building: "B7"}).Resolve(opts)
	assert.Equal(t, "", c.Subject())
	assert.True(t, c.Slots[LevelBuilding].Rejected)
}

func TestParentInferredFromLockedChild(t *testing.T) {
	opts := fixture()
	c := New(LevelUnit, Presets{Unit: "U9"}).Resolve(opts)

	assert.Equal(t, Slot{ID: "P2", Locked: true}, c.Slots[LevelProperty])
	assert.Equal(t, Slot{ID: "B7", Locked: true}, c.Slots[LevelBuilding])
	assert.Equal(t, "U9", c.Subject())

	_, err := c.Choose(LevelProperty, "A", opts)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestLockedChildSurvivesParentChoice(t *testing.T) {
	opts := fixture()
	c := New(LevelUnit, Presets{Property: "A", Unit: "U2"}).Resolve(opts)

	// building inferred from the locked unit
	assert.Equal(t, "A2", c.Selected(LevelBuilding))
	assert.True(t, c.Slots[LevelBuilding].Locked)

	_, err := c.Choose(LevelBuilding, "A1", opts)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, "U2", c.Subject())
}

func TestChooseRejectsForeignOption(t *testing.T) {
	opts := fixture()
	c := New(LevelBuilding, Presets{}).Resolve(opts)

	_, err := c.Choose(LevelBuilding, "B1", opts)
	assert.ErrorIs(t, err, ErrUnknownOption)

	_, err = c.Choose(LevelUnit, "U1", opts)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestResolveKeepsValidChoice(t *testing.T) {
	opts := fixture()
	c, err := New(LevelBuilding, Presets{}).Resolve(opts).Choose(LevelBuilding, "A2", opts)
	require.NoError(t, err)

	c = c.Resolve(opts)
	assert.Equal(t, "A2", c.Subject())
}

func TestFieldsPlaceholderAndDisabled(t *testing.T) {
	c := New(LevelBuilding, Presets{Property: "A", Building: "A2"})

	loading := c.Fields(Options{}, true)
	require.Len(t, loading, 2)
	for _, f := range loading {
		assert.True(t, f.Disabled)
		require.Len(t, f.Options, 1)
		assert.True(t, f.Options[0].Placeholder)
		assert.Equal(t, f.Selected, f.Options[0].ID)
	}
	assert.Equal(t, "Loading selected building...", loading[1].Options[0].Label)

	loaded := c.Resolve(fixture()).Fields(fixture(), false)
	assert.Len(t, loaded[0].Options, 4)
	assert.Len(t, loaded[1].Options, 2)
	for _, opt := range loaded[1].Options {
		assert.False(t, opt.Placeholder)
	}
	assert.True(t, loaded[1].Disabled)
}

func TestFieldsUnlockedEnabled(t *testing.T) {
	opts := fixture()
	fields := New(LevelUnit, Presets{}).Resolve(opts).Fields(opts, false)

	require.Len(t, fields, 3)
	for _, f := range fields {
		assert.False(t, f.Disabled)
		assert.NotEmpty(t, f.Options)
	}
}

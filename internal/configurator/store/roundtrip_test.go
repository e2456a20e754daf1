package store

import (
	"bytes"
	"testing"

	"cabinet-configurator/internal/configurator/models"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawPatch(t *rapid.T) ModulePatch {
	var p ModulePatch
	if rapid.Bool().Draw(t, "hasDims") {
		p.Dimensions = &DimensionsPatch{}
		if rapid.Bool().Draw(t, "hasW") {
			p.Dimensions.Width = f64(rapid.Float64Range(0, 3000).Draw(t, "w"))
		}
		if rapid.Bool().Draw(t, "hasH") {
			p.Dimensions.Height = f64(rapid.Float64Range(0, 3000).Draw(t, "h"))
		}
		if rapid.Bool().Draw(t, "hasD") {
			p.Dimensions.Depth = f64(rapid.Float64Range(0, 1000).Draw(t, "d"))
		}
	}
	if rapid.Bool().Draw(t, "hasThickness") {
		p.PanelThickness = f64(rapid.Float64Range(0, 40).Draw(t, "thickness"))
	}
	if rapid.Bool().Draw(t, "hasPanels") {
		p.Panels = &PanelsPatch{
			HasTop:        boolPtr(rapid.Bool().Draw(t, "top")),
			HasLeft:       boolPtr(rapid.Bool().Draw(t, "left")),
			IsBackVisible: boolPtr(rapid.Bool().Draw(t, "back")),
		}
	}
	if rapid.Bool().Draw(t, "hasShelves") {
		p.Shelves = &ShelvesPatch{
			Count:      intPtr(rapid.IntRange(0, 6).Draw(t, "count")),
			Visibility: rapid.SliceOfN(rapid.Bool(), 0, 6).Draw(t, "visibility"),
		}
	}
	if rapid.Bool().Draw(t, "hasMaterial") {
		m := rapid.SampledFrom([]models.Material{
			"", models.MaterialMelamineWhite, models.MaterialMelamineOak, models.MaterialMDFPainted,
		}).Draw(t, "material")
		p.Material = &m
	}
	if rapid.Bool().Draw(t, "hasFixed") {
		p.FixedWidth = boolPtr(rapid.Bool().Draw(t, "fixedWidth"))
		p.FixedHeight = boolPtr(rapid.Bool().Draw(t, "fixedHeight"))
	}
	return p
}

// Любое состояние, полученное через Reduce, переживает Encode и Decode без изменений.
func TestReducedStateRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := sequentialIDs()
		state := Reset()

		steps := rapid.IntRange(1, 10).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var action Action
			if rapid.IntRange(0, 2).Draw(t, "op") == 0 {
				role := rapid.SampledFrom([]models.Role{models.RoleUpper, models.RoleRight}).Draw(t, "role")
				action = AddModuleAction{Role: role, ID: ids()}
			} else {
				target := rapid.SampledFrom(state.Modules).Draw(t, "target")
				action = UpdateModuleAction{ID: target.ID, Patch: drawPatch(t)}
			}

			next, err := Reduce(state, action)
			require.NoError(t, err)
			state = next
		}

		var buf bytes.Buffer
		require.NoError(t, models.Encode(&buf, state))
		got, err := models.Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, state, got)
	})
}

func TestZeroThicknessAndEmptyMaterialRoundTrip(t *testing.T) {
	zero := 0.0
	empty := models.Material("")
	state, err := Reduce(Reset(), UpdateModuleAction{ID: models.LowerModuleID, Patch: ModulePatch{
		PanelThickness: &zero,
		Material:       &empty,
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, models.Encode(&buf, state))
	got, err := models.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, state, got)
}

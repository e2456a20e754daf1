package panels

import (
	"testing"

	"cabinet-configurator/internal/configurator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func defaultLower() models.Module {
	return models.DefaultState().Modules[0]
}

func byType(panels []models.PanelDescriptor, pt models.PanelType) []models.PanelDescriptor {
	var out []models.PanelDescriptor
	for _, p := range panels {
		if p.PanelType == pt {
			out = append(out, p)
		}
	}
	return out
}

func TestDecomposeDefaultLower(t *testing.T) {
	m := defaultLower()
	panels := Decompose(m, m.Dimensions)

	require.Len(t, panels, 6)
	order := []models.PanelType{
		models.PanelTop, models.PanelBottom, models.PanelLeft,
		models.PanelRight, models.PanelBack, models.PanelShelf,
	}
	for i, pt := range order {
		assert.Equal(t, pt, panels[i].PanelType)
	}

	top := panels[0]
	assert.Equal(t, models.Vec3{X: 564, Y: 18, Z: 577}, top.Size)
	assert.Equal(t, models.Vec3{X: 300, Y: 711, Z: 288.5}, top.LocalPosition)
	assert.Equal(t, "lower_top", top.ID)

	bottom := panels[1]
	assert.Equal(t, models.Vec3{X: 564, Y: 18, Z: 577}, bottom.Size)
	assert.Equal(t, 9.0, bottom.LocalPosition.Y)

	assert.Equal(t, models.Vec3{X: 18, Y: 720, Z: 577}, panels[2].Size)
	assert.Equal(t, 9.0, panels[2].LocalPosition.X)
	assert.Equal(t, 591.0, panels[3].LocalPosition.X)

	back := panels[4]
	assert.Equal(t, models.Vec3{X: 564, Y: 684, Z: 9}, back.Size)
	assert.Equal(t, 4.5, back.LocalPosition.Z)
	assert.True(t, back.Visible)

	shelf := panels[5]
	assert.Equal(t, models.Vec3{X: 564, Y: 18, Z: 539}, shelf.Size)
	assert.Equal(t, 360.0, shelf.LocalPosition.Y, "18 + (720-36)/2")
	assert.Equal(t, "lower_shelf_0", shelf.ID)
	require.NotNil(t, shelf.ShelfIndex)
	assert.Equal(t, 0, *shelf.ShelfIndex)
}

func TestDecomposeRightSuppressesLeft(t *testing.T) {
	m := defaultLower()
	m.ID = "r"
	m.Role = models.RoleRight
	m.Dimensions.Width = 400
	m.Panels.HasLeft = true

	panels := Decompose(m, m.Dimensions)
	assert.Empty(t, byType(panels, models.PanelLeft))

	top := byType(panels, models.PanelTop)[0]
	assert.Equal(t, 382.0, top.Size.X, "single-side abutment: width - thickness")
	assert.Equal(t, 191.0, top.LocalPosition.X)
}

func TestDecomposeRightNeverHasLeftProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := defaultLower()
		m.Role = models.RoleRight
		m.Panels = models.Panels{
			HasTop:    rapid.Bool().Draw(t, "top"),
			HasBottom: rapid.Bool().Draw(t, "bottom"),
			HasLeft:   rapid.Bool().Draw(t, "left"),
			HasRight:  rapid.Bool().Draw(t, "right"),
			HasBack:   rapid.Bool().Draw(t, "back"),
		}
		m.Shelves = models.Shelves{Count: rapid.IntRange(0, 6).Draw(t, "shelves")}
		dims := models.Dimensions{
			Width:  rapid.Float64Range(1, 1200).Draw(t, "w"),
			Height: rapid.Float64Range(1, 2400).Draw(t, "h"),
			Depth:  rapid.Float64Range(1, 800).Draw(t, "d"),
		}

		for _, p := range Decompose(m, dims) {
			if p.PanelType == models.PanelLeft {
				t.Fatalf("right module produced left panel %s", p.ID)
			}
		}
	})
}

func TestDecomposeHiddenBackIsKept(t *testing.T) {
	m := defaultLower()
	hidden := false
	m.Panels.IsBackVisible = &hidden

	panels := Decompose(m, m.Dimensions)
	backs := byType(panels, models.PanelBack)
	require.Len(t, backs, 1)
	assert.False(t, backs[0].Visible)
	assert.Empty(t, byType(Visible(panels), models.PanelBack))
}

func TestDecomposeDisabledPanelsAreRemoved(t *testing.T) {
	m := defaultLower()
	m.Panels = models.Panels{}
	m.Shelves = models.Shelves{}

	assert.Empty(t, Decompose(m, m.Dimensions))
}

func TestDecomposeShelfVisibility(t *testing.T) {
	m := defaultLower()
	m.Shelves = models.Shelves{Count: 3, Visibility: []bool{false}}

	shelves := byType(Decompose(m, m.Dimensions), models.PanelShelf)
	require.Len(t, shelves, 3)
	assert.False(t, shelves[0].Visible)
	assert.True(t, shelves[1].Visible, "out of range entries default to visible")
	assert.True(t, shelves[2].Visible)

	spacing := (720.0 - 36) / 4
	for i, s := range shelves {
		assert.InDelta(t, 18+spacing*float64(i+1), s.LocalPosition.Y, 1e-9)
	}
}

func TestDecomposeIgnoresVisibilityBeyondCount(t *testing.T) {
	m := defaultLower()
	m.Shelves = models.Shelves{Count: 1, Visibility: []bool{true, false, false}}

	assert.Len(t, byType(Decompose(m, m.Dimensions), models.PanelShelf), 1)
}

func TestDecomposeDegenerateSizesAreNotClamped(t *testing.T) {
	m := defaultLower()
	m.PanelThickness = 400

	top := Decompose(m, m.Dimensions)[0]
	assert.Equal(t, -200.0, top.Size.X)
}

func TestDecomposeWithConvention(t *testing.T) {
	m := defaultLower()
	panels := DecomposeWith(m, m.Dimensions, Convention{BackThickness: 6, FrontClearance: 0})

	assert.Equal(t, 6.0, byType(panels, models.PanelBack)[0].Size.Z)
	assert.Equal(t, 559.0, byType(panels, models.PanelShelf)[0].Size.Z)
}

func TestDecomposeIsPureProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := defaultLower()
		m.Role = rapid.SampledFrom([]models.Role{models.RoleLower, models.RoleUpper, models.RoleRight}).Draw(t, "role")
		m.PanelThickness = rapid.Float64Range(12, 25).Draw(t, "t")
		count := rapid.IntRange(0, 5).Draw(t, "count")
		m.Shelves = models.Shelves{Count: count, Visibility: rapid.SliceOfN(rapid.Bool(), 0, 6).Draw(t, "vis")}
		dims := models.Dimensions{
			Width:  rapid.Float64Range(300, 1200).Draw(t, "w"),
			Height: rapid.Float64Range(300, 2400).Draw(t, "h"),
			Depth:  rapid.Float64Range(200, 800).Draw(t, "d"),
		}
		original := m.Clone()

		first := Decompose(m, dims)
		second := Decompose(m, dims)
		require.Equal(t, first, second)
		require.Equal(t, original, m)
		require.Len(t, byType(first, models.PanelShelf), count)
	})
}

package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeDecodeDefaultState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, DefaultState()))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), got)
}

func TestDecodeRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := DefaultState()
		state.Name = rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "name")
		state.Kind = rapid.SampledFrom([]Kind{KindCabinet, KindDrawer}).Draw(t, "kind")

		n := rapid.IntRange(0, 4).Draw(t, "extra")
		for i := 0; i < n; i++ {
			m := state.Modules[0].Clone()
			m.ID = rapid.StringMatching(`m_[a-z0-9]{6}`).Draw(t, "id")
			if _, _, dup := state.Find(m.ID); dup {
				continue
			}
			m.Role = rapid.SampledFrom([]Role{RoleUpper, RoleRight}).Draw(t, "role")
			m.Dimensions.Width = rapid.Float64Range(1, 3000).Draw(t, "width")
			m.Shelves = Shelves{Count: rapid.IntRange(0, 5).Draw(t, "shelves")}.Padded()
			m.FixedWidth = rapid.Bool().Draw(t, "fixedWidth")
			m.CreatedAt = uint64(i + 2)
			if rapid.Bool().Draw(t, "backFlag") {
				v := rapid.Bool().Draw(t, "backVisible")
				m.Panels.IsBackVisible = &v
			}
			state.Modules = append(state.Modules, m)
		}

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, state))
		got, err := Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, state, got)
	})
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"no lower", `{"kind":"cabinet","modules":[{"id":"a","role":"upper"}]}`, ErrNoLowerModule},
		{"two lower", `{"modules":[{"id":"a","role":"lower"},{"id":"b","role":"lower"}]}`, ErrManyLowerModule},
		{"duplicate id", `{"modules":[{"id":"a","role":"lower"},{"id":"a","role":"upper"}]}`, ErrDuplicateModule},
		{"unknown role", `{"modules":[{"id":"a","role":"lower"},{"id":"b","role":"left"}]}`, ErrUnknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := DecodeBytes([]byte(`{"modules":`))
	require.Error(t, err)
}

func TestDecodeLegacyDocument(t *testing.T) {
	doc := `{
		"name": "Kitchen",
		"type": "drawer",
		"modules": [
			{"id": "base", "type": "lower", "dimensions": {"width": 800, "height": 720, "depth": 577},
			 "panels": {"hasBack": true, "visibility": {"back": false}},
			 "shelves": {"count": 2, "visibility": [true, false]}},
			{"id": "t1", "position": "top", "createTimestamp": 1700000002000,
			 "dimensions": {"width": 800, "height": 500, "depth": 577}},
			{"id": "r1", "position": "right", "createTimestamp": 1700000001000,
			 "dimensions": {"width": 400, "height": 720, "depth": 577}}
		]
	}`

	state, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Kitchen", state.Name)
	assert.Equal(t, KindDrawer, state.Kind)
	require.Len(t, state.Modules, 3)

	base, upper, right := state.Modules[0], state.Modules[1], state.Modules[2]
	assert.Equal(t, RoleLower, base.Role)
	assert.Equal(t, RoleUpper, upper.Role)
	assert.Equal(t, RoleRight, right.Role)

	assert.False(t, base.Panels.BackVisible())
	assert.True(t, base.Panels.HasTop, "missing flags default to present")
	assert.Equal(t, DefaultPanelThickness, base.PanelThickness)
	assert.Equal(t, MaterialMelamineWhite, base.Material)
	assert.True(t, right.FixedHeight)

	// порядок создания восстанавливается по отметкам времени
	assert.Equal(t, uint64(1), base.CreatedAt)
	assert.Equal(t, uint64(2), right.CreatedAt)
	assert.Equal(t, uint64(3), upper.CreatedAt)
}

func TestDecodeUnknownKindFallsBackToCabinet(t *testing.T) {
	state, err := DecodeBytes([]byte(`{"kind":"wardrobe","modules":[{"id":"a","role":"lower"}]}`))
	require.NoError(t, err)
	assert.Equal(t, KindCabinet, state.Kind)
}

func TestShelvesPadded(t *testing.T) {
	s := Shelves{Count: 3, Visibility: []bool{false}}.Padded()
	assert.Equal(t, []bool{false, true, true}, s.Visibility)

	s = Shelves{Count: 1, Visibility: []bool{false, false, true}}.Padded()
	assert.Len(t, s.Visibility, 3, "extra entries are kept")

	assert.True(t, Shelves{Count: 2}.Visible(1))
	assert.NotNil(t, Shelves{}.Padded().Visibility)
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"lower": RoleLower, "base": RoleLower, "upper": RoleUpper, "top": RoleUpper, "right": RoleRight} {
		got, ok := ParseRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseRole("left")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	state := DefaultState()
	v := true
	state.Modules[0].Panels.IsBackVisible = &v

	clone := state.Clone()
	clone.Modules[0].Shelves.Visibility[0] = false
	*clone.Modules[0].Panels.IsBackVisible = false
	clone.Modules[0].Dimensions.Width = 1

	assert.True(t, state.Modules[0].Shelves.Visibility[0])
	assert.True(t, *state.Modules[0].Panels.IsBackVisible)
	assert.Equal(t, 600.0, state.Modules[0].Dimensions.Width)
}

func TestDecodeV0KeepsValuesAsWritten(t *testing.T) {
	state := DefaultState()
	state.Modules[0].PanelThickness = 0
	state.Modules[0].Material = ""
	state.Modules[0].CreatedAt = 0

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, state))
	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestDecodeLegacyAppliesDefaults(t *testing.T) {
	state, err := DecodeBytes([]byte(`{"type":"cabinet","modules":[{"id":"a","role":"lower"}]}`))
	require.NoError(t, err)

	m := state.Modules[0]
	assert.Equal(t, DefaultPanelThickness, m.PanelThickness)
	assert.Equal(t, MaterialMelamineWhite, m.Material)
	assert.Equal(t, uint64(1), m.CreatedAt)
}

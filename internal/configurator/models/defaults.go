package models

// ============================================================
// Defaults
// ============================================================

const (
	LowerModuleID         = "lower"
	DefaultPanelThickness = 18.0
	DefaultUpperHeight    = 500.0
	DefaultRightWidth     = 400.0
)

var DefaultLowerDimensions = Dimensions{Width: 600, Height: 720, Depth: 577}

// AllPanels возвращает набор со всеми включёнными панелями.
func AllPanels() Panels {
	return Panels{HasTop: true, HasBottom: true, HasLeft: true, HasRight: true, HasBack: true}
}

// DefaultShelves одна видимая полка.
func DefaultShelves() Shelves {
	return Shelves{Count: 1, Visibility: []bool{true}}
}

// DefaultState состояние после сброса: один нижний модуль.
func DefaultState() FurnitureState {
	return FurnitureState{
		Name: "",
		Kind: KindCabinet,
		Modules: []Module{
			{
				ID:             LowerModuleID,
				Role:           RoleLower,
				Dimensions:     DefaultLowerDimensions,
				PanelThickness: DefaultPanelThickness,
				Panels:         AllPanels(),
				Shelves:        DefaultShelves(),
				Material:       MaterialMelamineWhite,
				CreatedAt:      1,
			},
		},
	}
}

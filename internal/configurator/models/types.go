package models

// ============================================================
// Enums
// ============================================================

type Role string

const (
	RoleLower Role = "lower"
	RoleUpper Role = "upper"
	RoleRight Role = "right"
)

// ParseRole принимает также "top" из старого интерфейса.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "lower", "base":
		return RoleLower, true
	case "upper", "top":
		return RoleUpper, true
	case "right":
		return RoleRight, true
	}
	return "", false
}

type Kind string

const (
	KindCabinet Kind = "cabinet"
	KindDrawer  Kind = "drawer"
)

func (k Kind) Valid() bool {
	return k == KindCabinet || k == KindDrawer
}

type Material string

const (
	MaterialMelamineWhite Material = "melamine_white"
	MaterialMelamineOak   Material = "melamine_oak"
	MaterialMDFPainted    Material = "mdf_painted"
)

func (m Material) Valid() bool {
	switch m {
	case MaterialMelamineWhite, MaterialMelamineOak, MaterialMDFPainted:
		return true
	}
	return false
}

type PanelType string

const (
	PanelTop    PanelType = "top"
	PanelBottom PanelType = "bottom"
	PanelLeft   PanelType = "left"
	PanelRight  PanelType = "right"
	PanelBack   PanelType = "back"
	PanelShelf  PanelType = "shelf"
)

// PanelOrder порядок вывода панелей в списках и спецификации.
var PanelOrder = map[PanelType]int{
	PanelTop:    1,
	PanelBottom: 2,
	PanelLeft:   3,
	PanelRight:  4,
	PanelBack:   5,
	PanelShelf:  6,
}

// ============================================================
// Geometry primitives
// ============================================================

type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Depth  float64 `json:"depth" yaml:"depth"`
}

// ============================================================
// Furniture state
// ============================================================

type Panels struct {
	HasTop        bool  `json:"hasTop" yaml:"hasTop"`
	HasBottom     bool  `json:"hasBottom" yaml:"hasBottom"`
	HasLeft       bool  `json:"hasLeft" yaml:"hasLeft"`
	HasRight      bool  `json:"hasRight" yaml:"hasRight"`
	HasBack       bool  `json:"hasBack" yaml:"hasBack"`
	IsBackVisible *bool `json:"isBackVisible,omitempty" yaml:"isBackVisible,omitempty"`
}

// BackVisible возвращает видимость задней стенки (по умолчанию true).
func (p Panels) BackVisible() bool {
	return p.IsBackVisible == nil || *p.IsBackVisible
}

type Shelves struct {
	Count      int    `json:"count" yaml:"count"`
	Visibility []bool `json:"visibility" yaml:"visibility"`
}

// Visible отдаёт видимость полки; индексы за пределами массива считаются видимыми.
func (s Shelves) Visible(index int) bool {
	if index < 0 || index >= len(s.Visibility) {
		return true
	}
	return s.Visibility[index]
}

// Padded дополняет visibility значениями true до count, лишние элементы не удаляет.
func (s Shelves) Padded() Shelves {
	out := Shelves{Count: s.Count, Visibility: append([]bool(nil), s.Visibility...)}
	for len(out.Visibility) < out.Count {
		out.Visibility = append(out.Visibility, true)
	}
	if out.Visibility == nil {
		out.Visibility = []bool{}
	}
	return out
}

type Module struct {
	ID             string     `json:"id" yaml:"id"`
	Role           Role       `json:"role" yaml:"role"`
	Dimensions     Dimensions `json:"dimensions" yaml:"dimensions"`
	PanelThickness float64    `json:"panelThickness" yaml:"panelThickness"`
	Panels         Panels     `json:"panels" yaml:"panels"`
	Shelves        Shelves    `json:"shelves" yaml:"shelves"`
	Material       Material   `json:"material" yaml:"material"`
	FixedWidth     bool       `json:"fixedWidth" yaml:"fixedWidth"`
	FixedHeight    bool       `json:"fixedHeight" yaml:"fixedHeight"`
	CreatedAt      uint64     `json:"createdAt" yaml:"createdAt"`
}

// Clone делает глубокую копию модуля.
func (m Module) Clone() Module {
	out := m
	if m.Panels.IsBackVisible != nil {
		v := *m.Panels.IsBackVisible
		out.Panels.IsBackVisible = &v
	}
	if m.Shelves.Visibility != nil {
		out.Shelves.Visibility = append([]bool{}, m.Shelves.Visibility...)
	}
	return out
}

type FurnitureState struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Modules []Module `json:"modules" yaml:"modules"`
}

// Clone делает глубокую копию состояния.
func (s FurnitureState) Clone() FurnitureState {
	out := FurnitureState{Name: s.Name, Kind: s.Kind, Modules: make([]Module, len(s.Modules))}
	for i, m := range s.Modules {
		out.Modules[i] = m.Clone()
	}
	return out
}

// Lower возвращает опорный нижний модуль.
func (s FurnitureState) Lower() (Module, bool) {
	return FindLower(s.Modules)
}

// Find ищет модуль по id.
func (s FurnitureState) Find(id string) (Module, int, bool) {
	for i, m := range s.Modules {
		if m.ID == id {
			return m, i, true
		}
	}
	return Module{}, -1, false
}

// FindLower ищет опорный модуль в списке.
func FindLower(modules []Module) (Module, bool) {
	for _, m := range modules {
		if m.Role == RoleLower {
			return m, true
		}
	}
	return Module{}, false
}

// ============================================================
// Derived panels
// ============================================================

type PanelDescriptor struct {
	ID            string    `json:"id" yaml:"id"`
	PanelType     PanelType `json:"panelType" yaml:"panelType"`
	Size          Vec3      `json:"size" yaml:"size"`
	LocalPosition Vec3      `json:"localPosition" yaml:"localPosition"`
	Visible       bool      `json:"visible" yaml:"visible"`
	ShelfIndex    *int      `json:"shelfIndex,omitempty" yaml:"shelfIndex,omitempty"`
}

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ============================================================
// Validation
// ============================================================

var (
	ErrNoLowerModule   = errors.New("no lower module")
	ErrManyLowerModule = errors.New("more than one lower module")
	ErrDuplicateModule = errors.New("duplicate module id")
	ErrUnknownRole     = errors.New("unknown module role")
)

// Validate проверяет структурные инварианты документа. Диапазоны размеров не проверяются.
func Validate(s FurnitureState) error {
	seen := make(map[string]struct{}, len(s.Modules))
	lowers := 0
	for _, m := range s.Modules {
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateModule, m.ID)
		}
		seen[m.ID] = struct{}{}

		switch m.Role {
		case RoleLower:
			lowers++
		case RoleUpper, RoleRight:
		default:
			return fmt.Errorf("%w: %q (module %s)", ErrUnknownRole, m.Role, m.ID)
		}
	}
	switch {
	case lowers == 0:
		return ErrNoLowerModule
	case lowers > 1:
		return ErrManyLowerModule
	}
	return nil
}

// ============================================================
// JSON
// ============================================================

// Encode пишет документ в формате v0.
func Encode(w io.Writer, s FurnitureState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Decode читает документ v0 или документ старого формата и проверяет инварианты.
func Decode(r io.Reader) (FurnitureState, error) {
	var raw rawState
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return FurnitureState{}, fmt.Errorf("decode state: %w", err)
	}

	state, err := raw.normalize()
	if err != nil {
		return FurnitureState{}, err
	}
	if err := Validate(state); err != nil {
		return FurnitureState{}, fmt.Errorf("validate state: %w", err)
	}
	return state, nil
}

// DecodeBytes обёртка над Decode для тел HTTP-запросов.
func DecodeBytes(data []byte) (FurnitureState, error) {
	return Decode(bytes.NewReader(data))
}

// ============================================================
// Legacy shape
// ============================================================

// rawState принимает и v0, и документы старого формата
// (type/position/createTimestamp/panels.visibility.back).
type rawState struct {
	Name    string      `json:"name"`
	Kind    Kind        `json:"kind"`
	Type    string      `json:"type"`
	Modules []rawModule `json:"modules"`
}

type rawModule struct {
	ID              string     `json:"id"`
	Role            string     `json:"role"`
	Type            string     `json:"type"`
	Position        string     `json:"position"`
	Dimensions      Dimensions `json:"dimensions"`
	PanelThickness  float64    `json:"panelThickness"`
	Panels          rawPanels  `json:"panels"`
	Shelves         Shelves    `json:"shelves"`
	Material        Material   `json:"material"`
	FixedWidth      bool       `json:"fixedWidth"`
	FixedHeight     bool       `json:"fixedHeight"`
	CreatedAt       uint64     `json:"createdAt"`
	CreateTimestamp float64    `json:"createTimestamp"`
}

type rawPanels struct {
	HasTop        *bool `json:"hasTop"`
	HasBottom     *bool `json:"hasBottom"`
	HasLeft       *bool `json:"hasLeft"`
	HasRight      *bool `json:"hasRight"`
	HasBack       *bool `json:"hasBack"`
	IsBackVisible *bool `json:"isBackVisible"`
	Visibility    *struct {
		Back *bool `json:"back"`
	} `json:"visibility"`
}

func (rs rawState) normalize() (FurnitureState, error) {
	state := FurnitureState{Name: rs.Name, Kind: rs.Kind}
	if state.Kind == "" {
		state.Kind = Kind(rs.Type)
	}
	if !state.Kind.Valid() {
		state.Kind = KindCabinet
	}

	legacy := rs.legacy()
	state.Modules = make([]Module, 0, len(rs.Modules))
	for _, rm := range rs.Modules {
		m, err := rm.normalize(legacy)
		if err != nil {
			return FurnitureState{}, err
		}
		state.Modules = append(state.Modules, m)
	}

	if legacy {
		assignLegacySequence(state.Modules, rs.Modules)
	}
	return state, nil
}

// legacy документ старого формата узнаётся по корневому type или модулю без role.
func (rs rawState) legacy() bool {
	if rs.Type != "" {
		return true
	}
	for _, rm := range rs.Modules {
		if rm.Role == "" {
			return true
		}
	}
	return false
}

// normalize переводит модуль в v0. Значения по умолчанию подставляются только
// в документах старого формата, документ v0 читается как записан.
func (rm rawModule) normalize(legacy bool) (Module, error) {
	role, ok := ParseRole(rm.Role)
	if !ok {
		role, ok = legacyRole(rm)
	}
	if !ok {
		return Module{}, fmt.Errorf("%w: module %q", ErrUnknownRole, rm.ID)
	}

	m := Module{
		ID:             rm.ID,
		Role:           role,
		Dimensions:     rm.Dimensions,
		PanelThickness: rm.PanelThickness,
		Panels:         rm.Panels.normalize(),
		Shelves:        rm.Shelves,
		Material:       rm.Material,
		FixedWidth:     rm.FixedWidth,
		FixedHeight:    rm.FixedHeight,
		CreatedAt:      rm.CreatedAt,
	}
	if !legacy {
		return m, nil
	}

	if m.PanelThickness == 0 {
		m.PanelThickness = DefaultPanelThickness
	}
	if m.Material == "" {
		m.Material = MaterialMelamineWhite
	}
	if role == RoleRight && rm.Role == "" {
		m.FixedHeight = true
	}
	return m, nil
}

func legacyRole(rm rawModule) (Role, bool) {
	switch {
	case rm.Position == "right":
		return RoleRight, true
	case rm.Position == "top":
		return RoleUpper, true
	case rm.Type == "lower" || rm.Position == "base":
		return RoleLower, true
	case rm.Type == "upper":
		return RoleUpper, true
	case rm.Type == "right":
		return RoleRight, true
	}
	return "", false
}

func (rp rawPanels) normalize() Panels {
	p := Panels{
		HasTop:    boolOr(rp.HasTop, true),
		HasBottom: boolOr(rp.HasBottom, true),
		HasLeft:   boolOr(rp.HasLeft, true),
		HasRight:  boolOr(rp.HasRight, true),
		HasBack:   boolOr(rp.HasBack, true),
	}
	switch {
	case rp.IsBackVisible != nil:
		v := *rp.IsBackVisible
		p.IsBackVisible = &v
	case rp.Visibility != nil && rp.Visibility.Back != nil:
		v := *rp.Visibility.Back
		p.IsBackVisible = &v
	}
	return p
}

// assignLegacySequence переводит миллисекундные createTimestamp в порядковые номера.
// Модули без отметки остаются с 0 (порядок неизвестен), нижний модуль получает 1.
func assignLegacySequence(modules []Module, raw []rawModule) {
	var seq uint64
	for _, m := range modules {
		if m.CreatedAt > seq {
			seq = m.CreatedAt
		}
	}

	var stamped []int
	for i, rm := range raw {
		if modules[i].CreatedAt == 0 && rm.CreateTimestamp > 0 {
			stamped = append(stamped, i)
		}
	}
	for i := range modules {
		if modules[i].Role == RoleLower && modules[i].CreatedAt == 0 && (len(stamped) > 0 || seq == 0) {
			seq++
			modules[i].CreatedAt = seq
		}
	}

	sort.SliceStable(stamped, func(a, b int) bool {
		return raw[stamped[a]].CreateTimestamp < raw[stamped[b]].CreateTimestamp
	})
	for _, idx := range stamped {
		seq++
		modules[idx].CreatedAt = seq
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

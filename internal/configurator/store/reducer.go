package store

import (
	"fmt"

	"cabinet-configurator/internal/configurator/models"
)

// ============================================================
// Reducer
// ============================================================

// Action переход состояния Module Store.
type Action interface {
	Type() string
	apply(state models.FurnitureState) (models.FurnitureState, error)
}

// Reset возвращает состояние с одним нижним модулем по умолчанию.
func Reset() models.FurnitureState {
	return models.DefaultState()
}

// Reduce применяет действие к копии state. При ошибке возвращается исходное состояние.
func Reduce(state models.FurnitureState, action Action) (models.FurnitureState, error) {
	next, err := action.apply(state.Clone())
	if err != nil {
		return state, err
	}
	return next, nil
}

// ============================================================
// Actions
// ============================================================

type ResetAction struct{}

func (ResetAction) Type() string { return "reset" }

func (ResetAction) apply(models.FurnitureState) (models.FurnitureState, error) {
	return Reset(), nil
}

// AddModuleAction добавляет верхний или правый модуль с заданным id.
type AddModuleAction struct {
	Role models.Role
	ID   string
}

func (AddModuleAction) Type() string { return "add_module" }

func (a AddModuleAction) apply(state models.FurnitureState) (models.FurnitureState, error) {
	if a.Role != models.RoleUpper && a.Role != models.RoleRight {
		return state, fmt.Errorf("%w: %q", ErrInvalidRole, a.Role)
	}
	lower, ok := state.Lower()
	if !ok {
		return state, fmt.Errorf("%w: add %s module without lower module", ErrPreconditionFailed, a.Role)
	}
	if _, _, exists := state.Find(a.ID); exists || a.ID == "" {
		return state, fmt.Errorf("%w: %q", ErrDuplicateID, a.ID)
	}

	m := models.Module{
		ID:             a.ID,
		Role:           a.Role,
		PanelThickness: lower.PanelThickness,
		Material:       lower.Material,
		Panels:         models.AllPanels(),
		Shelves:        models.DefaultShelves(),
		CreatedAt:      nextSequence(state.Modules),
	}

	switch a.Role {
	case models.RoleUpper:
		hasRight := hasRole(state.Modules, models.RoleRight)
		width := lower.Dimensions.Width
		if hasRight {
			width = lowerRowWidth(state.Modules)
		}
		m.Dimensions = models.Dimensions{
			Width:  width,
			Height: models.DefaultUpperHeight,
			Depth:  lower.Dimensions.Depth,
		}
		m.FixedWidth = hasRight
	case models.RoleRight:
		m.Dimensions = models.Dimensions{
			Width:  models.DefaultRightWidth,
			Height: lower.Dimensions.Height,
			Depth:  lower.Dimensions.Depth,
		}
		m.FixedHeight = true
		m.Panels.HasLeft = false
	}

	state.Modules = append(state.Modules, m)
	return state, nil
}

// UpdateModuleAction сливает патч в модуль и запускает проход синхронизации.
type UpdateModuleAction struct {
	ID    string
	Patch ModulePatch
}

func (UpdateModuleAction) Type() string { return "update_module" }

func (a UpdateModuleAction) apply(state models.FurnitureState) (models.FurnitureState, error) {
	current, idx, ok := state.Find(a.ID)
	if !ok {
		return state, fmt.Errorf("%w: %q", ErrNotFound, a.ID)
	}

	before := state.Modules
	after := make([]models.Module, len(before))
	copy(after, before)
	after[idx] = a.Patch.merge(current)

	state.Modules = Synchronize(before, after, a.ID)
	return state, nil
}

// SetShelfVisibilityAction показывает или скрывает одну полку.
type SetShelfVisibilityAction struct {
	ID      string
	Index   int
	Visible bool
}

func (SetShelfVisibilityAction) Type() string { return "set_shelf_visibility" }

func (a SetShelfVisibilityAction) apply(state models.FurnitureState) (models.FurnitureState, error) {
	_, idx, ok := state.Find(a.ID)
	if !ok {
		return state, fmt.Errorf("%w: %q", ErrNotFound, a.ID)
	}
	m := &state.Modules[idx]
	if a.Index < 0 || a.Index >= m.Shelves.Count {
		return state, fmt.Errorf("%w: %d (count %d)", ErrShelfIndex, a.Index, m.Shelves.Count)
	}
	m.Shelves = m.Shelves.Padded()
	m.Shelves.Visibility[a.Index] = a.Visible
	return state, nil
}

// RenameAction меняет метаданные мебели. Пустой Kind оставляет текущий тип.
type RenameAction struct {
	Name string
	Kind models.Kind
}

func (RenameAction) Type() string { return "rename" }

func (a RenameAction) apply(state models.FurnitureState) (models.FurnitureState, error) {
	if a.Kind != "" {
		if !a.Kind.Valid() {
			return state, fmt.Errorf("%w: %q", ErrInvalidKind, a.Kind)
		}
		state.Kind = a.Kind
	}
	state.Name = a.Name
	return state, nil
}

// ReplaceAction устанавливает импортированный документ целиком.
type ReplaceAction struct {
	State models.FurnitureState
}

func (ReplaceAction) Type() string { return "replace" }

func (a ReplaceAction) apply(models.FurnitureState) (models.FurnitureState, error) {
	if err := models.Validate(a.State); err != nil {
		return models.FurnitureState{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return a.State.Clone(), nil
}

func nextSequence(modules []models.Module) uint64 {
	var seq uint64
	for _, m := range modules {
		if m.CreatedAt > seq {
			seq = m.CreatedAt
		}
	}
	return seq + 1
}

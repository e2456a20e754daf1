package store

import "cabinet-configurator/internal/configurator/models"

// ============================================================
// Synchronization pass
// ============================================================

// Synchronize приводит зависимые модули в соответствие после изменения editedID.
// before и after отличаются только модулем editedID, результат возвращается новым срезом.
//
// Изменение нижнего модуля: ширина уходит в верхние модули (fixedWidth получает сумму
// нижнего ряда), высота уходит в правые, глубина в верхние и правые.
// Изменение ширины правого модуля пересчитывает верхние модули с fixedWidth.
func Synchronize(before, after []models.Module, editedID string) []models.Module {
	out := make([]models.Module, len(after))
	for i, m := range after {
		out[i] = m.Clone()
	}

	prev, ok := findModule(before, editedID)
	if !ok {
		return out
	}
	next, ok := findModule(out, editedID)
	if !ok {
		return out
	}

	switch next.Role {
	case models.RoleLower:
		syncFromLower(out, prev.Dimensions, next.Dimensions)
	case models.RoleRight:
		if next.Dimensions.Width != prev.Dimensions.Width && hasFixedUpper(out) {
			total := lowerRowWidth(out)
			for i := range out {
				if out[i].Role == models.RoleUpper && out[i].FixedWidth {
					out[i].Dimensions.Width = total
				}
			}
		}
	}
	return out
}

func syncFromLower(modules []models.Module, prev, next models.Dimensions) {
	widthChanged := next.Width != prev.Width
	heightChanged := next.Height != prev.Height
	depthChanged := next.Depth != prev.Depth
	if !widthChanged && !heightChanged && !depthChanged {
		return
	}

	var total float64
	if widthChanged {
		total = lowerRowWidth(modules)
	}

	for i := range modules {
		m := &modules[i]
		switch m.Role {
		case models.RoleUpper:
			if widthChanged {
				if m.FixedWidth {
					m.Dimensions.Width = total
				} else {
					m.Dimensions.Width = next.Width
				}
			}
			if depthChanged {
				m.Dimensions.Depth = next.Depth
			}
		case models.RoleRight:
			if heightChanged {
				m.Dimensions.Height = next.Height
			}
			if depthChanged {
				m.Dimensions.Depth = next.Depth
			}
		}
	}
}

// lowerRowWidth сумма ширин нижнего и всех правых модулей.
func lowerRowWidth(modules []models.Module) float64 {
	var total float64
	for _, m := range modules {
		if m.Role == models.RoleLower || m.Role == models.RoleRight {
			total += m.Dimensions.Width
		}
	}
	return total
}

func hasFixedUpper(modules []models.Module) bool {
	for _, m := range modules {
		if m.Role == models.RoleUpper && m.FixedWidth {
			return true
		}
	}
	return false
}

func hasRole(modules []models.Module, role models.Role) bool {
	for _, m := range modules {
		if m.Role == role {
			return true
		}
	}
	return false
}

func findModule(modules []models.Module, id string) (models.Module, bool) {
	for _, m := range modules {
		if m.ID == id {
			return m, true
		}
	}
	return models.Module{}, false
}

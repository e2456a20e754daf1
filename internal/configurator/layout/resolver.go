package layout

import (
	"math"

	"cabinet-configurator/internal/configurator/models"
)

// ============================================================
// Position / Dimension Resolver
// ============================================================

// Placement абсолютное положение модуля и его эффективные размеры.
type Placement struct {
	Position   models.Vec3       `json:"position" yaml:"position"`
	Dimensions models.Dimensions `json:"dimensions" yaml:"dimensions"`
}

type Resolved struct {
	Module    models.Module `json:"module" yaml:"module"`
	Placement Placement     `json:"placement" yaml:"placement"`
}

// Resolve вычисляет положение и эффективные размеры модуля относительно соседей.
// Предусловие: в all есть нижний модуль. Без него модуль остаётся в начале координат
// с исходными размерами.
func Resolve(module models.Module, all []models.Module) Placement {
	p := Placement{Dimensions: module.Dimensions}

	lower, ok := models.FindLower(all)
	if !ok || module.Role == models.RoleLower {
		return p
	}

	switch module.Role {
	case models.RoleRight:
		p.Position = models.Vec3{X: lower.Dimensions.Width}
		p.Dimensions.Height = lower.Dimensions.Height

		firstUpper, hasUpper := first(all, models.RoleUpper)
		if hasUpper && createdBefore(firstUpper, module) {
			// верхний модуль появился раньше: правый модуль на всю высоту
			p.Dimensions.Height += sumOf(all, models.RoleUpper, func(d models.Dimensions) float64 { return d.Height })
		}

	case models.RoleUpper:
		p.Position = models.Vec3{Y: lower.Dimensions.Height}
		p.Dimensions.Width = lower.Dimensions.Width

		firstRight, hasRight := first(all, models.RoleRight)
		if hasRight && createdBefore(firstRight, module) {
			// правый модуль появился раньше: верхний модуль над всем нижним рядом
			p.Dimensions.Width += sumOf(all, models.RoleRight, func(d models.Dimensions) float64 { return d.Width })
		}
	}
	return p
}

// ResolveAll возвращает размещение каждого модуля в порядке состояния.
func ResolveAll(state models.FurnitureState) []Resolved {
	out := make([]Resolved, 0, len(state.Modules))
	for _, m := range state.Modules {
		out = append(out, Resolved{Module: m, Placement: Resolve(m, state.Modules)})
	}
	return out
}

// ============================================================
// Bounds
// ============================================================

type Box struct {
	Min models.Vec3 `json:"min" yaml:"min"`
	Max models.Vec3 `json:"max" yaml:"max"`
}

func (b Box) Size() models.Vec3 {
	return models.Vec3{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y, Z: b.Max.Z - b.Min.Z}
}

// Bounds габарит всех размещённых модулей (для кадрирования камеры).
func Bounds(resolved []Resolved) Box {
	if len(resolved) == 0 {
		return Box{}
	}

	box := Box{
		Min: models.Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: models.Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
	for _, r := range resolved {
		lo := r.Placement.Position
		d := r.Placement.Dimensions
		hi := lo.Add(models.Vec3{X: d.Width, Y: d.Height, Z: d.Depth})

		box.Min.X = math.Min(box.Min.X, lo.X)
		box.Min.Y = math.Min(box.Min.Y, lo.Y)
		box.Min.Z = math.Min(box.Min.Z, lo.Z)
		box.Max.X = math.Max(box.Max.X, hi.X)
		box.Max.Y = math.Max(box.Max.Y, hi.Y)
		box.Max.Z = math.Max(box.Max.Z, hi.Z)
	}
	return box
}

// ============================================================
// Ordering helpers
// ============================================================

// first первый по порядку создания модуль роли. Если первый в списке модуль роли
// без номера, порядок неизвестен: он и возвращается, и createdBefore с ним даёт false.
func first(all []models.Module, role models.Role) (models.Module, bool) {
	var found models.Module
	ok := false
	for _, m := range all {
		if m.Role != role {
			continue
		}
		if !ok {
			if m.CreatedAt == 0 {
				return m, true
			}
			found, ok = m, true
			continue
		}
		if m.CreatedAt != 0 && m.CreatedAt < found.CreatedAt {
			found = m
		}
	}
	return found, ok
}

// ordered true, если у обоих модулей есть порядковый номер.
func ordered(a, b models.Module) bool {
	return a.CreatedAt != 0 && b.CreatedAt != 0
}

// createdBefore строгое сравнение порядковых номеров; без номеров false.
func createdBefore(a, b models.Module) bool {
	return ordered(a, b) && a.CreatedAt < b.CreatedAt
}

func sumOf(all []models.Module, role models.Role, pick func(models.Dimensions) float64) float64 {
	var total float64
	for _, m := range all {
		if m.Role == role {
			total += pick(m.Dimensions)
		}
	}
	return total
}

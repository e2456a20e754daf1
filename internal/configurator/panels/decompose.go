package panels

import (
	"fmt"

	"cabinet-configurator/internal/configurator/models"
)

// ============================================================
// Panel Decomposition
// ============================================================

// Convention фиксированные смещения задней стенки и полок.
type Convention struct {
	BackThickness  float64 // толщина задней стенки, не зависит от panelThickness
	FrontClearance float64 // отступ полки от передней кромки
}

var DefaultConvention = Convention{
	BackThickness:  9,
	FrontClearance: 20,
}

// Decompose раскладывает модуль на панели с соглашением по умолчанию.
func Decompose(module models.Module, dims models.Dimensions) []models.PanelDescriptor {
	return DecomposeWith(module, dims, DefaultConvention)
}

// DecomposeWith раскладывает модуль на панели в порядке top, bottom, left, right, back, shelves.
// Локальные координаты: центр панели относительно левого-нижнего-заднего угла модуля.
// Вырожденные размеры (толщина больше ширины и т.п.) не обрезаются.
func DecomposeWith(module models.Module, dims models.Dimensions, conv Convention) []models.PanelDescriptor {
	w, h, d := dims.Width, dims.Height, dims.Depth
	t := module.PanelThickness
	flags := module.Panels

	// правый модуль примыкает к нижнему и левой стенки не имеет
	hasLeft := flags.HasLeft && module.Role != models.RoleRight

	innerWidth := w - 2*t
	innerX := t
	if module.Role == models.RoleRight && !hasLeft {
		innerWidth = w - t
		innerX = 0
	}
	centerX := innerX + innerWidth/2

	var out []models.PanelDescriptor
	add := func(pt models.PanelType, size, pos models.Vec3, visible bool) {
		out = append(out, models.PanelDescriptor{
			ID:            PanelID(module.ID, pt),
			PanelType:     pt,
			Size:          size,
			LocalPosition: pos,
			Visible:       visible,
		})
	}

	if flags.HasTop {
		add(models.PanelTop,
			models.Vec3{X: innerWidth, Y: t, Z: d},
			models.Vec3{X: centerX, Y: h - t/2, Z: d / 2},
			true)
	}
	if flags.HasBottom {
		add(models.PanelBottom,
			models.Vec3{X: innerWidth, Y: t, Z: d},
			models.Vec3{X: centerX, Y: t / 2, Z: d / 2},
			true)
	}
	if hasLeft {
		add(models.PanelLeft,
			models.Vec3{X: t, Y: h, Z: d},
			models.Vec3{X: t / 2, Y: h / 2, Z: d / 2},
			true)
	}
	if flags.HasRight {
		add(models.PanelRight,
			models.Vec3{X: t, Y: h, Z: d},
			models.Vec3{X: w - t/2, Y: h / 2, Z: d / 2},
			true)
	}
	if flags.HasBack {
		backHeight := h - 2*t
		add(models.PanelBack,
			models.Vec3{X: innerWidth, Y: backHeight, Z: conv.BackThickness},
			models.Vec3{X: centerX, Y: t + backHeight/2, Z: conv.BackThickness / 2},
			flags.BackVisible())
	}

	count := module.Shelves.Count
	if count > 0 {
		shelfDepth := d - t - conv.FrontClearance
		spacing := (h - 2*t) / float64(count+1)
		for i := 0; i < count; i++ {
			index := i
			out = append(out, models.PanelDescriptor{
				ID:            ShelfID(module.ID, i),
				PanelType:     models.PanelShelf,
				Size:          models.Vec3{X: innerWidth, Y: t, Z: shelfDepth},
				LocalPosition: models.Vec3{X: centerX, Y: t + spacing*float64(i+1), Z: t + shelfDepth/2},
				Visible:       module.Shelves.Visible(i),
				ShelfIndex:    &index,
			})
		}
	}

	return out
}

// Visible оставляет панели, которые попадают в отрисовку и экспорт.
func Visible(panels []models.PanelDescriptor) []models.PanelDescriptor {
	out := make([]models.PanelDescriptor, 0, len(panels))
	for _, p := range panels {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}

func PanelID(moduleID string, pt models.PanelType) string {
	return fmt.Sprintf("%s_%s", moduleID, pt)
}

func ShelfID(moduleID string, index int) string {
	return fmt.Sprintf("%s_shelf_%d", moduleID, index)
}

package store

import "cabinet-configurator/internal/configurator/models"

// ============================================================
// Module Patch
// ============================================================

// ModulePatch частичное обновление модуля. nil означает "поле не передано".
type ModulePatch struct {
	Dimensions     *DimensionsPatch `json:"dimensions,omitempty"`
	PanelThickness *float64         `json:"panelThickness,omitempty"`
	Panels         *PanelsPatch     `json:"panels,omitempty"`
	Shelves        *ShelvesPatch    `json:"shelves,omitempty"`
	Material       *models.Material `json:"material,omitempty"`
	FixedWidth     *bool            `json:"fixedWidth,omitempty"`
	FixedHeight    *bool            `json:"fixedHeight,omitempty"`
}

type DimensionsPatch struct {
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Depth  *float64 `json:"depth,omitempty"`
}

type PanelsPatch struct {
	HasTop        *bool `json:"hasTop,omitempty"`
	HasBottom     *bool `json:"hasBottom,omitempty"`
	HasLeft       *bool `json:"hasLeft,omitempty"`
	HasRight      *bool `json:"hasRight,omitempty"`
	HasBack       *bool `json:"hasBack,omitempty"`
	IsBackVisible *bool `json:"isBackVisible,omitempty"`
}

type ShelvesPatch struct {
	Count      *int   `json:"count,omitempty"`
	Visibility []bool `json:"visibility,omitempty"`
}

// merge применяет патч к копии модуля. Панели и полки сливаются по полям.
func (p ModulePatch) merge(m models.Module) models.Module {
	out := m.Clone()

	if d := p.Dimensions; d != nil {
		setFloat(&out.Dimensions.Width, d.Width)
		setFloat(&out.Dimensions.Height, d.Height)
		setFloat(&out.Dimensions.Depth, d.Depth)
	}
	setFloat(&out.PanelThickness, p.PanelThickness)

	if pp := p.Panels; pp != nil {
		setBool(&out.Panels.HasTop, pp.HasTop)
		setBool(&out.Panels.HasBottom, pp.HasBottom)
		setBool(&out.Panels.HasLeft, pp.HasLeft)
		setBool(&out.Panels.HasRight, pp.HasRight)
		setBool(&out.Panels.HasBack, pp.HasBack)
		if pp.IsBackVisible != nil {
			v := *pp.IsBackVisible
			out.Panels.IsBackVisible = &v
		}
	}

	if sp := p.Shelves; sp != nil {
		// поэлементно: хвост старого массива сохраняется
		for i, v := range sp.Visibility {
			if i < len(out.Shelves.Visibility) {
				out.Shelves.Visibility[i] = v
			} else {
				out.Shelves.Visibility = append(out.Shelves.Visibility, v)
			}
		}
		if sp.Count != nil {
			out.Shelves.Count = *sp.Count
		}
		out.Shelves = out.Shelves.Padded()
	}

	if p.Material != nil {
		out.Material = *p.Material
	}
	setBool(&out.FixedWidth, p.FixedWidth)
	setBool(&out.FixedHeight, p.FixedHeight)
	return out
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

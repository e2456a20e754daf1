package bom

import (
	"sort"
	"strconv"

	"cabinet-configurator/internal/configurator/layout"
	"cabinet-configurator/internal/configurator/models"
	"cabinet-configurator/internal/configurator/panels"
)

// ============================================================
// Bill of Materials
// ============================================================

type Line struct {
	PanelType models.PanelType `json:"panelType" yaml:"panelType"`
	Size      string           `json:"size" yaml:"size"`
	Width     float64          `json:"width" yaml:"width"`
	Height    float64          `json:"height" yaml:"height"`
	Depth     float64          `json:"depth" yaml:"depth"`
	Quantity  int              `json:"quantity" yaml:"quantity"`
}

type Report struct {
	Name  string  `json:"name" yaml:"name"`
	Lines []Line  `json:"lines" yaml:"lines"`
	Total int     `json:"total" yaml:"total"`
	Area  float64 `json:"areaM2" yaml:"areaM2"`
}

type groupKey struct {
	panelType models.PanelType
	size      string
}

// Build собирает спецификацию по всем модулям. Скрытые панели в спецификацию не попадают.
// Группировка по (тип панели, строка размера), количество суммируется по модулям.
func Build(state models.FurnitureState) Report {
	groups := make(map[groupKey]*Line)
	report := Report{Name: state.Name}

	for _, r := range layout.ResolveAll(state) {
		for _, p := range panels.Visible(panels.Decompose(r.Module, r.Placement.Dimensions)) {
			key := groupKey{panelType: p.PanelType, size: SizeString(p.Size)}
			line, ok := groups[key]
			if !ok {
				line = &Line{
					PanelType: p.PanelType,
					Size:      key.size,
					Width:     p.Size.X,
					Height:    p.Size.Y,
					Depth:     p.Size.Z,
				}
				groups[key] = line
			}
			line.Quantity++
			report.Total++
			report.Area += faceArea(p)
		}
	}

	report.Lines = make([]Line, 0, len(groups))
	for _, line := range groups {
		report.Lines = append(report.Lines, *line)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if a.PanelType != b.PanelType {
			return models.PanelOrder[a.PanelType] < models.PanelOrder[b.PanelType]
		}
		return a.Size < b.Size
	})

	return report
}

// SizeString формат "564 x 18 x 577".
func SizeString(size models.Vec3) string {
	return formatFloat(size.X) + " x " + formatFloat(size.Y) + " x " + formatFloat(size.Z)
}

// faceArea площадь лицевой стороны панели в м².
func faceArea(p models.PanelDescriptor) float64 {
	switch p.PanelType {
	case models.PanelTop, models.PanelBottom, models.PanelShelf:
		return p.Size.X * p.Size.Z / 1e6
	case models.PanelLeft, models.PanelRight:
		return p.Size.Y * p.Size.Z / 1e6
	default:
		return p.Size.X * p.Size.Y / 1e6
	}
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

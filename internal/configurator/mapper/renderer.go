package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"cabinet-configurator/internal/configurator/layout"
	"cabinet-configurator/internal/configurator/models"
	"cabinet-configurator/internal/configurator/panels"
)

// ============================================================
// Renderer
// ============================================================

const margin = 20.0

// Цвета заливки по типу панели.
var panelFill = map[models.PanelType]string{
	models.PanelTop:    "#d9d9d9",
	models.PanelBottom: "#d9d9d9",
	models.PanelLeft:   "#c8c8c8",
	models.PanelRight:  "#c8c8c8",
	models.PanelBack:   "#f0f0f0",
	models.PanelShelf:  "#e6e6e6",
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает SVG фронтального вида мебели из видимых панелей.
func (r *Renderer) Render(state models.FurnitureState) (string, error) {
	if len(state.Modules) == 0 {
		return "", fmt.Errorf("state has no modules")
	}
	if _, ok := state.Lower(); !ok {
		return "", fmt.Errorf("state has no lower module")
	}

	resolved := layout.ResolveAll(state)
	box := layout.Bounds(resolved)
	size := box.Size()
	width, height := size.X+2*margin, size.Y+2*margin

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, res := range resolved {
		builder.WriteString(fmt.Sprintf(`  <g id="%s" data-role="%s">`, res.Module.ID, res.Module.Role))
		builder.WriteString("\n")
		for _, elem := range r.renderModule(res, box) {
			builder.WriteString("    ")
			builder.WriteString(elem)
			builder.WriteString("\n")
		}
		builder.WriteString("  </g>\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderModule(res layout.Resolved, box layout.Box) []string {
	var out []string

	origin := res.Placement.Position
	for _, p := range panels.Visible(panels.Decompose(res.Module, res.Placement.Dimensions)) {
		center := origin.Add(p.LocalPosition)

		// ось Y в SVG направлена вниз: пол внизу рисунка
		x := center.X - p.Size.X/2 - box.Min.X + margin
		y := box.Max.Y - (center.Y + p.Size.Y/2) + margin

		out = append(out, fmt.Sprintf(`<rect id="%s" data-panel="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="#000" />`,
			p.ID, p.PanelType, formatFloat(x), formatFloat(y), formatFloat(p.Size.X), formatFloat(p.Size.Y), fillFor(p.PanelType)))
	}

	return out
}

func fillFor(pt models.PanelType) string {
	if fill, ok := panelFill[pt]; ok {
		return fill
	}
	return "none"
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

package layout

import (
	"cabinet-configurator/internal/configurator/models"
	"cabinet-configurator/internal/configurator/panels"
)

// ============================================================
// Scene
// ============================================================

type ModuleScene struct {
	Module    models.Module            `json:"module" yaml:"module"`
	Placement Placement                `json:"placement" yaml:"placement"`
	Panels    []models.PanelDescriptor `json:"panels" yaml:"panels"`
}

// Scene всё, что нужно 3D-движку для одного снимка состояния.
type Scene struct {
	Bounds  Box           `json:"bounds" yaml:"bounds"`
	Modules []ModuleScene `json:"modules" yaml:"modules"`
}

// BuildScene прогоняет Resolve и Decompose по всему снимку заново.
func BuildScene(state models.FurnitureState) Scene {
	resolved := ResolveAll(state)
	scene := Scene{
		Bounds:  Bounds(resolved),
		Modules: make([]ModuleScene, 0, len(resolved)),
	}
	for _, r := range resolved {
		scene.Modules = append(scene.Modules, ModuleScene{
			Module:    r.Module,
			Placement: r.Placement,
			Panels:    panels.Decompose(r.Module, r.Placement.Dimensions),
		})
	}
	return scene
}

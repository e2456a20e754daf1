package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"cabinet-configurator/internal/configurator/bom"
	"cabinet-configurator/internal/configurator/layout"
	"cabinet-configurator/internal/configurator/mapper"
	"cabinet-configurator/internal/configurator/models"
	"cabinet-configurator/internal/configurator/service"
	"cabinet-configurator/internal/configurator/store"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Configurator Handler
// ============================================================

type ConfiguratorHandler struct {
	sessions *service.SessionManager
	renderer *mapper.Renderer
}

func NewConfiguratorHandler(sessions *service.SessionManager) *ConfiguratorHandler {
	return &ConfiguratorHandler{
		sessions: sessions,
		renderer: mapper.NewRenderer(),
	}
}

// Register вешает маршруты конфигуратора на router (обычно /api/v1).
func (h *ConfiguratorHandler) Register(router fiber.Router) {
	router.Post("/sessions", h.CreateSession)
	router.Get("/sessions/:id", h.GetState)
	router.Delete("/sessions/:id", h.DeleteSession)
	router.Patch("/sessions/:id", h.Rename)
	router.Post("/sessions/:id/reset", h.Reset)
	router.Post("/sessions/:id/modules", h.AddModule)
	router.Patch("/sessions/:id/modules/:moduleId", h.UpdateModule)
	router.Put("/sessions/:id/modules/:moduleId/shelves/:index", h.SetShelfVisibility)
	router.Get("/sessions/:id/layout", h.GetLayout)
	router.Get("/sessions/:id/bom", h.GetBOM)
	router.Get("/sessions/:id/export", h.Export)
	router.Post("/sessions/:id/import", h.Import)
	router.Get("/sessions/:id/render", h.Render)
}

type sessionResponse struct {
	ID    string                `json:"id"`
	State models.FurnitureState `json:"state"`
}

type addModuleRequest struct {
	Role string `json:"role"`
}

type renameRequest struct {
	Name string      `json:"name"`
	Kind models.Kind `json:"kind"`
}

type shelfVisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// ============================================================
// Sessions
// ============================================================

// CreateSession создаёт сессию с состоянием по умолчанию.
func (h *ConfiguratorHandler) CreateSession(c fiber.Ctx) error {
	id, s, err := h.sessions.Create()
	if err != nil {
		log.Printf("[CONFIGURATOR] create session: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	c.Locals("session", id)
	return c.Status(http.StatusCreated).JSON(sessionResponse{ID: id, State: s.Snapshot()})
}

// GetState отдаёт текущий снимок состояния.
func (h *ConfiguratorHandler) GetState(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(s.Snapshot())
}

func (h *ConfiguratorHandler) DeleteSession(c fiber.Ctx) error {
	if !h.sessions.Delete(c.Params("id")) {
		return sessionNotFound(c)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Mutations
// ============================================================

func (h *ConfiguratorHandler) Reset(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(s.Reset())
}

// Rename меняет имя и тип мебели.
func (h *ConfiguratorHandler) Rename(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req renameRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := s.Rename(req.Name, req.Kind)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(state)
}

// AddModule добавляет верхний или правый модуль.
func (h *ConfiguratorHandler) AddModule(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req addModuleRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	role, ok := models.ParseRole(req.Role)
	if !ok || role == models.RoleLower {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "role must be upper or right"})
	}

	state, err := s.AddModule(role)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(state)
}

// UpdateModule применяет частичное обновление модуля.
func (h *ConfiguratorHandler) UpdateModule(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	var patch store.ModulePatch
	if err := decodeBody(c, &patch); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validatePatch(patch); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := s.UpdateModule(c.Params("moduleId"), patch)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(state)
}

// SetShelfVisibility показывает или скрывает полку.
func (h *ConfiguratorHandler) SetShelfVisibility(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid shelf index"})
	}

	var req shelfVisibilityRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Visible == nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "visible required"})
	}

	state, err := s.SetShelfVisibility(c.Params("moduleId"), index, *req.Visible)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(state)
}

// ============================================================
// Derived views
// ============================================================

// GetLayout отдаёт размещение и панели каждого модуля.
func (h *ConfiguratorHandler) GetLayout(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(layout.BuildScene(s.Snapshot()))
}

func (h *ConfiguratorHandler) GetBOM(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	return c.JSON(bom.Build(s.Snapshot()))
}

// Render отдаёт фронтальный вид в SVG.
func (h *ConfiguratorHandler) Render(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	svg, err := h.renderer.Render(s.Snapshot())
	if err != nil {
		log.Printf("[CONFIGURATOR] render error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// ============================================================
// Export / Import
// ============================================================

// Export отдаёт документ JSON для скачивания.
func (h *ConfiguratorHandler) Export(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}

	state := s.Snapshot()
	var buf bytes.Buffer
	if err := models.Encode(&buf, state); err != nil {
		log.Printf("[CONFIGURATOR] export error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode state"})
	}

	name := state.Name
	if name == "" {
		name = "module"
	}
	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".json"))
	return c.Send(buf.Bytes())
}

// Import заменяет состояние сессии документом из тела запроса.
func (h *ConfiguratorHandler) Import(c fiber.Ctx) error {
	s, ok := h.lookup(c)
	if !ok {
		return sessionNotFound(c)
	}
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	imported, err := models.DecodeBytes(c.Body())
	if err != nil {
		log.Printf("[CONFIGURATOR] import error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state, err := s.Replace(imported)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(state)
}

// ============================================================
// Helpers
// ============================================================

func (h *ConfiguratorHandler) lookup(c fiber.Ctx) (*store.Store, bool) {
	id := c.Params("id")
	c.Locals("session", id)
	return h.sessions.Get(id)
}

func sessionNotFound(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
}

func decodeBody(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return errors.New("empty body")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return errors.New("invalid json")
	}
	return nil
}

// storeError переводит ошибки Module Store в HTTP-статусы.
func storeError(c fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrPreconditionFailed), errors.Is(err, store.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, store.ErrInvalidKind),
		errors.Is(err, store.ErrShelfIndex),
		errors.Is(err, store.ErrInvalidState):
		status = http.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// validatePatch отсекает заведомо некорректный ввод формы; сам Store вводу доверяет.
func validatePatch(p store.ModulePatch) error {
	if d := p.Dimensions; d != nil {
		for name, v := range map[string]*float64{"width": d.Width, "height": d.Height, "depth": d.Depth} {
			if v != nil && *v <= 0 {
				return fmt.Errorf("%s must be positive", name)
			}
		}
	}
	if p.PanelThickness != nil && *p.PanelThickness <= 0 {
		return errors.New("panelThickness must be positive")
	}
	if p.Shelves != nil && p.Shelves.Count != nil && *p.Shelves.Count < 0 {
		return errors.New("shelves.count must not be negative")
	}
	if p.Material != nil && !p.Material.Valid() {
		return fmt.Errorf("unknown material %q", *p.Material)
	}
	return nil
}

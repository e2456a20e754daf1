package store

import (
	"log"
	"sync"

	"cabinet-configurator/internal/configurator/models"

	"github.com/google/uuid"
)

// ============================================================
// Store
// ============================================================

// Recorder получает результат каждого действия (метрики).
type Recorder interface {
	Observe(action string, success bool)
}

type noopRecorder struct{}

func (noopRecorder) Observe(string, bool) {}

type Option func(*Store)

// WithIDGenerator задаёт генератор id новых модулей.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Store владеет текущим снимком FurnitureState. Снимки, отданные наружу, не изменяются.
type Store struct {
	mu          sync.Mutex
	state       models.FurnitureState
	newID       func() string
	recorder    Recorder
	subscribers map[int]func(models.FurnitureState)
	nextSub     int
}

func New(opts ...Option) *Store {
	s := &Store{
		state:       Reset(),
		newID:       func() string { return "module_" + uuid.NewString() },
		recorder:    noopRecorder{},
		subscribers: make(map[int]func(models.FurnitureState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() models.FurnitureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe регистрирует получателя новых снимков. Вызов cancel отписывает.
func (s *Store) Subscribe(fn func(models.FurnitureState)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Dispatch применяет действие. Ошибка логируется, состояние при этом не меняется.
func (s *Store) Dispatch(action Action) (models.FurnitureState, error) {
	s.mu.Lock()
	next, err := Reduce(s.state, action)
	s.recorder.Observe(action.Type(), err == nil)
	if err != nil {
		current := s.state.Clone()
		s.mu.Unlock()
		log.Printf("[STORE] %s failed: %v", action.Type(), err)
		return current, err
	}

	s.state = next
	subs := make([]func(models.FurnitureState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.Clone())
	}
	return next.Clone(), nil
}

func (s *Store) Reset() models.FurnitureState {
	state, _ := s.Dispatch(ResetAction{})
	return state
}

// AddModule добавляет верхний или правый модуль с новым id.
func (s *Store) AddModule(role models.Role) (models.FurnitureState, error) {
	return s.Dispatch(AddModuleAction{Role: role, ID: s.newID()})
}

func (s *Store) UpdateModule(id string, patch ModulePatch) (models.FurnitureState, error) {
	return s.Dispatch(UpdateModuleAction{ID: id, Patch: patch})
}

func (s *Store) SetShelfVisibility(id string, index int, visible bool) (models.FurnitureState, error) {
	return s.Dispatch(SetShelfVisibilityAction{ID: id, Index: index, Visible: visible})
}

func (s *Store) Rename(name string, kind models.Kind) (models.FurnitureState, error) {
	return s.Dispatch(RenameAction{Name: name, Kind: kind})
}

// Replace устанавливает импортированный документ.
func (s *Store) Replace(state models.FurnitureState) (models.FurnitureState, error) {
	return s.Dispatch(ReplaceAction{State: state})
}

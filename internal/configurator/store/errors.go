package store

import "errors"

// ============================================================
// Errors
// ============================================================

var (
	// ErrPreconditionFailed зависимый модуль добавляется без нижнего модуля.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrNotFound модуль с таким id отсутствует.
	ErrNotFound     = errors.New("module not found")
	ErrInvalidRole  = errors.New("invalid module role")
	ErrInvalidKind  = errors.New("invalid furniture kind")
	ErrDuplicateID  = errors.New("duplicate module id")
	ErrShelfIndex   = errors.New("shelf index out of range")
	ErrInvalidState = errors.New("invalid state")
)

package refbook

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("refbook: not found")
	ErrConflict = errors.New("refbook: unique constraint violated")
)

// MsgCodeValueRequired: текст ошибки check_element без code/value.
const MsgCodeValueRequired = `Параметры "code" и "value" обязательны`

// ValidationError: ошибка входных параметров (HTTP 400).
type ValidationError struct {
	Messages []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return "validation: " + strings.Join(e.Messages, "; ")
}

// ConflictError: нарушение ограничения уникальности.
type ConflictError struct {
	Constraint string
	Err        error // исходная ошибка драйвера, если есть
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

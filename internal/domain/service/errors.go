package service

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection помечает недопустимый ввод пользователя (площадка, диапазон)
var ErrInvalidSelection = errors.New("invalid selection")

// InvalidInputError описывает отклоненное значение элемента управления
type InvalidInputError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s=%q: %v", ErrInvalidSelection, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s=%q", ErrInvalidSelection, e.Field, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Is позволяет errors.Is(err, ErrInvalidSelection)
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidSelection
}

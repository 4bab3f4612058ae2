package entity

import (
	"errors"
	"fmt"
)

// ErrLoad помечает любую ошибку загрузки набора данных
var ErrLoad = errors.New("launch dataset load failed")

// ErrEmptyTable возвращается, если в наборе нет ни одной записи
var ErrEmptyTable = errors.New("launch table is empty")

// LoadError описывает фатальную ошибку загрузки таблицы запусков
type LoadError struct {
	Source string
	Err    error
}

// NewLoadError оборачивает причину ошибки загрузки
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", ErrLoad, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", ErrLoad, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is позволяет errors.Is(err, ErrLoad)
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

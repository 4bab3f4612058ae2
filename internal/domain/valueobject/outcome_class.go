package valueobject

import (
	"errors"
	"strconv"
)

// OutcomeClass представляет исход запуска (Value Object): 1 = успех, 0 = неудача
type OutcomeClass int

const (
	Failure OutcomeClass = 0
	Success OutcomeClass = 1
)

// ErrInvalidOutcomeClass возвращается для значений вне {0,1}
var ErrInvalidOutcomeClass = errors.New("class must be 0 or 1")

// NewOutcomeClass создает OutcomeClass с валидацией
func NewOutcomeClass(value int) (OutcomeClass, error) {
	class := OutcomeClass(value)
	if err := class.Validate(); err != nil {
		return 0, err
	}
	return class, nil
}

// Validate проверяет валидность исхода
func (c OutcomeClass) Validate() error {
	switch c {
	case Failure, Success:
		return nil
	default:
		return ErrInvalidOutcomeClass
	}
}

// Int возвращает числовое значение (используется как ось Y и значение pie)
func (c OutcomeClass) Int() int {
	return int(c)
}

// String возвращает "0" или "1", как подписи категорий в графике
func (c OutcomeClass) String() string {
	return strconv.Itoa(int(c))
}

// AllOutcomeClasses возвращает классы в порядке группировки
func AllOutcomeClasses() []OutcomeClass {
	return []OutcomeClass{Failure, Success}
}

package valueobject

import (
	"errors"
	"fmt"
	"math"
)

// PayloadRange представляет диапазон массы полезной нагрузки в кг (Value Object)
// Иммутабельный объект
type PayloadRange struct {
	low  float64
	high float64
}

// ErrInvalidPayloadRange возвращается для перевернутого или нечислового диапазона
var ErrInvalidPayloadRange = errors.New("invalid payload range")

// NewPayloadRange создает PayloadRange с валидацией
func NewPayloadRange(low, high float64) (PayloadRange, error) {
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return PayloadRange{}, fmt.Errorf("%w: bounds must be finite", ErrInvalidPayloadRange)
	}

	if low > high {
		return PayloadRange{}, fmt.Errorf("%w: low %.0f is greater than high %.0f", ErrInvalidPayloadRange, low, high)
	}

	return PayloadRange{
		low:  low,
		high: high,
	}, nil
}

// Low возвращает нижнюю границу
func (r PayloadRange) Low() float64 {
	return r.low
}

// High возвращает верхнюю границу
func (r PayloadRange) High() float64 {
	return r.high
}

// ContainsExclusive проверяет low < mass < high (граничные значения не входят)
func (r PayloadRange) ContainsExclusive(mass float64) bool {
	return mass > r.low && mass < r.high
}

// Bounds возвращает границы в виде пары, как их отдает slider
func (r PayloadRange) Bounds() [2]float64 {
	return [2]float64{r.low, r.high}
}

// Equals сравнивает два диапазона
func (r PayloadRange) Equals(other PayloadRange) bool {
	return r.low == other.low && r.high == other.high
}

// String возвращает строковое представление
func (r PayloadRange) String() string {
	return fmt.Sprintf("[%.0f, %.0f]", r.low, r.high)
}

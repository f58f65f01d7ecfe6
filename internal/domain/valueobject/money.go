package valueobject

import (
	"math"

	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// HourlyRate - почасовая ставка в валюте отчёта.
type HourlyRate float64

func NewHourlyRate(amount float64) (HourlyRate, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, apperror.Validation("зарплата должна быть конечным числом")
	}
	if amount < 0 {
		return 0, apperror.Validation("зарплата не может быть отрицательной")
	}
	return HourlyRate(amount), nil
}

// NewOptionalAmount проверяет необязательную сумму (бонус).
func NewOptionalAmount(amount *float64) (*float64, error) {
	if amount == nil {
		return nil, nil
	}
	if math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount < 0 {
		return nil, apperror.Validation("бонус должен быть неотрицательным числом")
	}
	v := *amount
	return &v, nil
}

func (r HourlyRate) Float64() float64 {
	return float64(r)
}

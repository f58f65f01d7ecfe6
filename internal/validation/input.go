package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxTextFieldLength = 200
	MaxLocationLength  = 100
	MinReportYear      = 1990
	MinTerm            = 1
	MaxTerm            = 12
)

// Допустимые форматы работы.
const (
	ArrangementRemote = "remote"
	ArrangementHybrid = "hybrid"
	ArrangementOnsite = "onsite"
)

var validArrangements = map[string]struct{}{
	ArrangementRemote: {},
	ArrangementHybrid: {},
	ArrangementOnsite: {},
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(fmt.Sprintf("%s должен быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.Validation(fmt.Sprintf("%s должен быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateNonEmpty проверяет обязательное текстовое поле и возвращает его без крайних пробелов.
func ValidateNonEmpty(fieldName, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperror.Validation(fmt.Sprintf("%s обязательно", fieldName))
	}
	if err := ValidateLength(fieldName, value, 0, MaxTextFieldLength); err != nil {
		return "", err
	}
	return value, nil
}

// ValidateYear проверяет, что год попадает в правдоподобный диапазон.
func ValidateYear(year, currentYear int) error {
	if year < MinReportYear || year > currentYear+1 {
		return apperror.Validation(fmt.Sprintf("год должен быть от %d до %d", MinReportYear, currentYear+1))
	}
	return nil
}

// ValidateTerm проверяет номер стажировки.
func ValidateTerm(term *int) error {
	if term == nil {
		return nil
	}
	if *term < MinTerm || *term > MaxTerm {
		return apperror.Validation(fmt.Sprintf("номер срока стажировки должен быть от %d до %d", MinTerm, MaxTerm))
	}
	return nil
}

// ValidateLocation проверяет длину локации (до нормализации формы).
func ValidateLocation(location *string) error {
	if location == nil {
		return nil
	}
	return ValidateLength("локация", *location, 0, MaxLocationLength)
}

// NormalizeArrangement приводит формат работы к нижнему регистру и проверяет допустимость.
func NormalizeArrangement(arrangement *string) (*string, error) {
	if arrangement == nil {
		return nil, nil
	}
	value := strings.ToLower(strings.TrimSpace(*arrangement))
	if value == "" {
		return nil, nil
	}
	if _, ok := validArrangements[value]; !ok {
		return nil, apperror.Validation("формат работы должен быть remote, hybrid или onsite")
	}
	return &value, nil
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest     ErrorCode = "BAD_REQUEST"
	ErrCodeAlreadyDecided ErrorCode = "ALREADY_DECIDED"
	ErrCodeRateLimited    ErrorCode = "RATE_LIMITED"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError  ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is работал с обёрнутыми sentinel-значениями.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation - короткая форма для ошибок валидации входных данных.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeAlreadyDecided:
		return http.StatusConflict
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

func IsAlreadyDecided(err error) bool { return hasCode(err, ErrCodeAlreadyDecided) }

func IsRateLimited(err error) bool { return hasCode(err, ErrCodeRateLimited) }

var (
	ErrSubmissionNotFound   = New(ErrCodeNotFound, "заявка не найдена")
	ErrCompanyNotFound      = New(ErrCodeNotFound, "по компании нет данных")
	ErrAlreadyDecided       = New(ErrCodeAlreadyDecided, "по заявке уже принято решение")
	ErrUnauthorized         = New(ErrCodeUnauthorized, "требуется авторизация администратора")
	ErrInvalidCredentials   = New(ErrCodeUnauthorized, "неверное имя пользователя или пароль")
	ErrRateLimitExceeded    = New(ErrCodeRateLimited, "слишком много запросов, попробуйте позже")
	ErrRateLimitUnavailable = New(ErrCodeInternal, "не удалось проверить лимит запросов")
)

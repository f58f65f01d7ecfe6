package valueobject

import (
	"database/sql/driver"
	"fmt"

	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

// SubmissionStatus - закрытое перечисление статусов заявки.
//
//	pending ──approve──► approved
//	   │
//	   └─────reject────► rejected
//
// approved и rejected терминальные.
type SubmissionStatus uint8

const (
	SubmissionPending SubmissionStatus = iota + 1
	SubmissionApproved
	SubmissionRejected
)

func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionPending:
		return "pending"
	case SubmissionApproved:
		return "approved"
	case SubmissionRejected:
		return "rejected"
	}
	return fmt.Sprintf("SubmissionStatus(%d)", uint8(s))
}

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionPending, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса нет переходов.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case SubmissionApproved, SubmissionRejected:
		return true
	case SubmissionPending:
		return false
	}
	return true
}

// CanTransitionTo разрешает только pending → approved и pending → rejected.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return next == SubmissionApproved || next == SubmissionRejected
}

func ParseSubmissionStatus(raw string) (SubmissionStatus, error) {
	switch raw {
	case "pending":
		return SubmissionPending, nil
	case "approved":
		return SubmissionApproved, nil
	case "rejected":
		return SubmissionRejected, nil
	}
	return 0, apperror.Validation(fmt.Sprintf("некорректный статус заявки %q", raw))
}

func (s SubmissionStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("некорректный статус заявки %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *SubmissionStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSubmissionStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value хранит статус в БД как текст.
func (s SubmissionStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("некорректный статус заявки %d", uint8(s))
	}
	return s.String(), nil
}

func (s *SubmissionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	}
	return fmt.Errorf("статус заявки: неподдерживаемый тип %T", src)
}

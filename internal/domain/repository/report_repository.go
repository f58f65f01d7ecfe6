package repository

import (
	"context"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
)

// ReportColumn - колонка одобренных отчётов, по которой разрешены distinct/group запросы.
type ReportColumn string

const (
	ColumnCompany    ReportColumn = "company"
	ColumnUniversity ReportColumn = "university"
	ColumnLocation   ReportColumn = "location"
	ColumnRole       ReportColumn = "role"
)

func (c ReportColumn) IsValid() bool {
	switch c {
	case ColumnCompany, ColumnUniversity, ColumnLocation, ColumnRole:
		return true
	}
	return false
}

// YearCount - число отчётов за год.
type YearCount struct {
	Year  int `db:"year"`
	Count int `db:"count"`
}

// ValueCount - значение колонки и число отчётов с ним.
type ValueCount struct {
	Value string `db:"value"`
	Count int    `db:"count"`
}

// LocationFix - изменение локации, выполненное обслуживающим проходом.
type LocationFix struct {
	ID     int64
	Before string
	After  string
}

type ReportRepository interface {
	// List возвращает страницу отчётов (год по убыванию) и общее количество.
	List(ctx context.Context, limit, offset int) ([]*entity.ApprovedReport, int, error)
	ListAll(ctx context.Context) ([]*entity.ApprovedReport, error)
	ListByCompany(ctx context.Context, company string) ([]*entity.ApprovedReport, error)
	Distinct(ctx context.Context, column ReportColumn) ([]string, error)
	CountByYear(ctx context.Context) ([]YearCount, error)
	// MostFrequentForCompany возвращает самое частое значение колонки в отчётах компании.
	MostFrequentForCompany(ctx context.Context, company string, column ReportColumn) (*ValueCount, error)
	// NormalizeLocations переписывает локации через fn и возвращает применённые изменения.
	NormalizeLocations(ctx context.Context, fn func(string) string) ([]LocationFix, error)
}

type UniversityRepository interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Package catalog отдаёт справочные списки и выборки по компании для клиентских форм и страниц.
package catalog

import (
	"context"
	"strings"

	stats "github.com/ignatzorin/salary-backend/internal/analytics"
	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/repository"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// InternshipRoles - подсказки для поля "должность" в форме отправки.
var InternshipRoles = []string{
	"Software Developer",
	"Business Analyst",
	"Chemical Engineer Intern",
	"Civil Engineer Intern",
	"Consulting Intern",
	"Data Scientist",
	"Electrical Engineer Intern",
	"Environmental Engineer Intern",
	"Finance Intern",
	"Designer Intern",
	"Human Resources Intern",
	"Industrial Engineer Intern",
	"IT Intern",
	"Journalism Intern",
	"Marketing Intern",
	"Mechanical Engineer Intern",
	"Operations Intern",
	"Product Manager",
	"Sales Intern",
	"Other",
}

type Catalog struct {
	reportRepo     repository.ReportRepository
	universityRepo repository.UniversityRepository
}

func NewCatalog(reportRepo repository.ReportRepository, universityRepo repository.UniversityRepository) *Catalog {
	return &Catalog{reportRepo: reportRepo, universityRepo: universityRepo}
}

// Page - нормализованные параметры пагинации.
type Page struct {
	Limit  int
	Offset int
}

func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// ListSalaries возвращает страницу одобренных отчётов, новые годы первыми.
func (c *Catalog) ListSalaries(ctx context.Context, page Page) ([]*entity.ApprovedReport, int, error) {
	reports, total, err := c.reportRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отчёты")
	}
	return reports, total, nil
}

func (c *Catalog) Companies(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, repository.ColumnCompany)
}

func (c *Catalog) Locations(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, repository.ColumnLocation)
}

func (c *Catalog) Roles(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, repository.ColumnRole)
}

func (c *Catalog) distinct(ctx context.Context, column repository.ReportColumn) ([]string, error) {
	values, err := c.reportRepo.Distinct(ctx, column)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить список")
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (c *Catalog) Universities(ctx context.Context) ([]string, error) {
	names, err := c.universityRepo.ListNames(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить университеты")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (c *Catalog) CompanySalaries(ctx context.Context, company string) ([]*entity.ApprovedReport, error) {
	company, err := requireCompany(company)
	if err != nil {
		return nil, err
	}
	reports, err := c.reportRepo.ListByCompany(ctx, company)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить отчёты компании")
	}
	if reports == nil {
		reports = []*entity.ApprovedReport{}
	}
	return reports, nil
}

// CompanyAverage - средняя зарплата компании, 0 если отчётов нет.
func (c *Catalog) CompanyAverage(ctx context.Context, company string) (float64, error) {
	reports, err := c.CompanySalaries(ctx, company)
	if err != nil {
		return 0, err
	}
	return stats.Mean(stats.Salaries(reports)), nil
}

func (c *Catalog) CompanyTopUniversity(ctx context.Context, company string) (*repository.ValueCount, error) {
	return c.mostFrequent(ctx, company, repository.ColumnUniversity)
}

func (c *Catalog) CompanyTopLocation(ctx context.Context, company string) (*repository.ValueCount, error) {
	return c.mostFrequent(ctx, company, repository.ColumnLocation)
}

func (c *Catalog) mostFrequent(ctx context.Context, company string, column repository.ReportColumn) (*repository.ValueCount, error) {
	company, err := requireCompany(company)
	if err != nil {
		return nil, err
	}
	vc, err := c.reportRepo.MostFrequentForCompany(ctx, company, column)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить данные компании")
	}
	return vc, nil
}

func requireCompany(company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", apperror.Validation("параметр company обязателен")
	}
	return company, nil
}

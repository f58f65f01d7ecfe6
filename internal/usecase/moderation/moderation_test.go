package moderation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/salary-backend/internal/domain/entity"
	"github.com/ignatzorin/salary-backend/internal/domain/valueobject"
	"github.com/ignatzorin/salary-backend/internal/logger"
	"github.com/ignatzorin/salary-backend/internal/pkg/apperror"
	"github.com/ignatzorin/salary-backend/internal/ratelimit"
	"github.com/ignatzorin/salary-backend/internal/usecase/analytics"
	"github.com/ignatzorin/salary-backend/internal/usecase/moderation"
)

func (denyLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: false, Limit: 5}, nil
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func validInput() moderation.SubmitInput {
	return moderation.SubmitInput{
		Company:    "Shopify",
		Role:       "Software Developer",
		Salary:     25.5,
		Year:       2024,
		Term:       intPtr(2),
		University: "Concordia",
		Location:   strPtr("Montreal, QC"),
		Origin:     "203.0.113.7",
	}
}

type fixture struct {
	store   *memoryStore
	cache   *spyCache
	submit  *moderation.SubmitSalaryUseCase
	approve *moderation.ApproveSubmissionUseCase
	reject  *moderation.RejectSubmissionUseCase
	pending *moderation.ListPendingUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger.Silence()

	store := newMemoryStore()
	cache := &spyCache{}
	return &fixture{
		store:   store,
		cache:   cache,
		submit:  moderation.NewSubmitSalaryUseCase(store, ratelimit.Unlimited{}, fixedClock),
		approve: moderation.NewApproveSubmissionUseCase(store, cache, fixedClock),
		reject:  moderation.NewRejectSubmissionUseCase(store, fixedClock),
		pending: moderation.NewListPendingUseCase(store),
	}
}

func TestSubmit_CreatesPendingOnly(t *testing.T) {
	f := newFixture(t)

	s, err := f.submit.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, s.ID)
	assert.Equal(t, valueobject.SubmissionPending, s.Status)
	assert.Equal(t, "203.0.113.7", s.SubmitterAddress)
	assert.Equal(t, fixedClock(), s.SubmittedAt)
	assert.Nil(t, s.DecidedAt)
	assert.Equal(t, entity.CurrentSchemaVersion, s.SchemaVersion)
	assert.Equal(t, 0, f.store.reportCount(), "отправка не должна создавать одобренный отчёт")

	list, err := f.pending.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
}

func TestSubmit_NormalizesLocation(t *testing.T) {
	f := newFixture(t)
	input := validInput()
	input.Location = strPtr("Toronto, ON, Canada")

	s, err := f.submit.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, s.Location)
	assert.Equal(t, "Toronto, ON", *s.Location)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*moderation.SubmitInput)
	}{
		{"negative salary", func(in *moderation.SubmitInput) { in.Salary = -1 }},
		{"year too old", func(in *moderation.SubmitInput) { in.Year = 1900 }},
		{"year in far future", func(in *moderation.SubmitInput) { in.Year = 2030 }},
		{"blank company", func(in *moderation.SubmitInput) { in.Company = "   " }},
		{"blank role", func(in *moderation.SubmitInput) { in.Role = "" }},
		{"blank university", func(in *moderation.SubmitInput) { in.University = "" }},
		{"term out of range", func(in *moderation.SubmitInput) { in.Term = intPtr(0) }},
		{"unknown arrangement", func(in *moderation.SubmitInput) { in.Arrangement = strPtr("moon") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			input := validInput()
			tc.modify(&input)

			_, err := f.submit.Execute(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err), "ожидалась ошибка валидации, получено %v", err)

			list, _ := f.pending.Execute(context.Background())
			assert.Empty(t, list)
		})
	}
}

func TestSubmit_AcceptsNextYear(t *testing.T) {
	f := newFixture(t)
	input := validInput()
	input.Year = fixedClock().Year() + 1

	_, err := f.submit.Execute(context.Background(), input)
	assert.NoError(t, err)
}

func TestSubmit_RateLimitedWritesNothing(t *testing.T) {
	logger.Silence()
	store := newMemoryStore()
	uc := moderation.NewSubmitSalaryUseCase(store, denyLimiter{}, fixedClock)

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, apperror.IsRateLimited(err))

	count, _ := store.CountByStatus(context.Background(), valueobject.SubmissionPending)
	assert.Equal(t, 0, count)
}

func TestSubmit_QuotaCheckedBeforeValidation(t *testing.T) {
	logger.Silence()
	uc := moderation.NewSubmitSalaryUseCase(newMemoryStore(), denyLimiter{}, fixedClock)

	input := validInput()
	input.Salary = -5

	_, err := uc.Execute(context.Background(), input)
	assert.True(t, apperror.IsRateLimited(err))
}

func TestSubmit_LimiterFailure(t *testing.T) {
	logger.Silence()
	uc := moderation.NewSubmitSalaryUseCase(newMemoryStore(), failingLimiter{}, fixedClock)

	_, err := uc.Execute(context.Background(), validInput())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.ErrCodeInternal, appErr.Code)
}

func TestSubmit_QuotaPerOrigin(t *testing.T) {
	logger.Silence()
	limiter, err := ratelimit.New("5-H", "submit", nil)
	require.NoError(t, err)
	store := newMemoryStore()
	uc := moderation.NewSubmitSalaryUseCase(store, limiter, fixedClock)

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(context.Background(), validInput())
		require.NoError(t, err)
	}

	_, err = uc.Execute(context.Background(), validInput())
	assert.True(t, apperror.IsRateLimited(err), "шестая отправка за час должна быть отклонена")

	other := validInput()
	other.Origin = "198.51.100.1"
	_, err = uc.Execute(context.Background(), other)
	assert.NoError(t, err)

	count, _ := store.CountByStatus(context.Background(), valueobject.SubmissionPending)
	assert.Equal(t, 6, count)
}

func TestApprove_CopiesFieldsIntoOneReport(t *testing.T) {
	f := newFixture(t)
	input := validInput()
	input.Bonus = func() *float64 { b := 1500.0; return &b }()
	input.Arrangement = strPtr("Hybrid")

	s, err := f.submit.Execute(context.Background(), input)
	require.NoError(t, err)

	report, err := f.approve.Execute(context.Background(), s.ID)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotZero(t, report.ID)
	assert.Equal(t, s.ReportFields, report.ReportFields)
	assert.Equal(t, "hybrid", *report.Arrangement)
	assert.Equal(t, 1, f.store.reportCount())

	stored := f.store.submission(s.ID)
	require.NotNil(t, stored)
	assert.Equal(t, valueobject.SubmissionApproved, stored.Status)
	require.NotNil(t, stored.DecidedAt)
	assert.Equal(t, fixedClock(), *stored.DecidedAt)

	assert.Equal(t, []string{moderation.AnalyticsCachePrefix}, f.cache.prefixes)
}

func TestApprove_SecondDecisionFails(t *testing.T) {
	f := newFixture(t)
	s, err := f.submit.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = f.approve.Execute(context.Background(), s.ID)
	require.NoError(t, err)

	_, err = f.approve.Execute(context.Background(), s.ID)
	assert.True(t, apperror.IsAlreadyDecided(err))

	err = f.reject.Execute(context.Background(), s.ID)
	assert.True(t, apperror.IsAlreadyDecided(err))

	assert.Equal(t, 1, f.store.reportCount())
	stored := f.store.submission(s.ID)
	assert.Equal(t, valueobject.SubmissionApproved, stored.Status)
}

func TestApprove_UnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.approve.Execute(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))

	err = f.reject.Execute(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.cache.prefixes)
}

func TestApprove_ConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	s, err := f.submit.Execute(context.Background(), validInput())
	require.NoError(t, err)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.approve.Execute(context.Background(), s.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperror.IsAlreadyDecided(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.store.reportCount())
}

func TestReject_CreatesNoReport(t *testing.T) {
	f := newFixture(t)
	s, err := f.submit.Execute(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, f.reject.Execute(context.Background(), s.ID))
	assert.Equal(t, 0, f.store.reportCount())

	stored := f.store.submission(s.ID)
	assert.Equal(t, valueobject.SubmissionRejected, stored.Status)

	_, err = f.approve.Execute(context.Background(), s.ID)
	assert.True(t, apperror.IsAlreadyDecided(err))
	assert.Equal(t, 0, f.store.reportCount())

	list, _ := f.pending.Execute(context.Background())
	assert.Empty(t, list)
}

func TestListPending_OldestFirst(t *testing.T) {
	logger.Silence()
	store := newMemoryStore()
	tick := fixedClock()
	clock := func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	uc := moderation.NewSubmitSalaryUseCase(store, ratelimit.Unlimited{}, clock)

	var ids []int64
	for _, company := range []string{"A", "B", "C"} {
		input := validInput()
		input.Company = company
		s, err := uc.Execute(context.Background(), input)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	reject := moderation.NewRejectSubmissionUseCase(store, fixedClock)
	require.NoError(t, reject.Execute(context.Background(), ids[1]))

	list, err := moderation.NewListPendingUseCase(store).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)

	count, err := moderation.NewListPendingUseCase(store).CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNormalizeLocations_Idempotent(t *testing.T) {
	logger.Silence()
	store := newMemoryStore()
	store.insertReport(entity.ApprovedReport{ReportFields: entity.ReportFields{
		Company: "A", Role: "Dev", University: "U", Salary: 20, Year: 2023,
		Location: strPtr("Toronto, ON, Canada"),
	}})
	store.insertReport(entity.ApprovedReport{ReportFields: entity.ReportFields{
		Company: "B", Role: "Dev", University: "U", Salary: 22, Year: 2023,
		Location: strPtr("Waterloo, ON"),
	}})
	store.insertReport(entity.ApprovedReport{ReportFields: entity.ReportFields{
		Company: "C", Role: "Dev", University: "U", Salary: 24, Year: 2023,
		Location: strPtr(" , "),
	}})

	cache := &spyCache{}
	uc := moderation.NewNormalizeLocationsUseCase(store, cache)

	fixes, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, fixes, 2)
	assert.Equal(t, "Toronto, ON, Canada", fixes[0].Before)
	assert.Equal(t, "Toronto, ON", fixes[0].After)
	assert.Equal(t, "", fixes[1].After)
	assert.Len(t, cache.prefixes, 1)

	locations, _ := store.Distinct(context.Background(), "location")
	assert.Equal(t, []string{"Toronto, ON", "Waterloo, ON"}, locations)

	fixes, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fixes)
	assert.Len(t, cache.prefixes, 1, "без изменений кэш не сбрасывается")
}

func TestNormalizeLocations_EmptyStringBecomesNull(t *testing.T) {
	logger.Silence()
	store := newMemoryStore()
	store.insertReport(entity.ApprovedReport{ReportFields: entity.ReportFields{
		Company: "A", Role: "Dev", University: "U", Salary: 20, Year: 2023,
		Location: strPtr(""),
	}})
	store.insertReport(entity.ApprovedReport{ReportFields: entity.ReportFields{
		Company: "B", Role: "Dev", University: "U", Salary: 22, Year: 2023,
		Location: strPtr("Waterloo, ON"),
	}})

	uc := moderation.NewNormalizeLocationsUseCase(store, &spyCache{})

	fixes, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, fixes, 1)
	assert.Equal(t, "", fixes[0].Before)
	assert.Equal(t, "", fixes[0].After)

	reports, err := store.ListAll(context.Background())
	require.NoError(t, err)
	nulls := 0
	for _, r := range reports {
		if r.Location == nil {
			nulls++
		}
	}
	assert.Equal(t, 1, nulls)

	fixes, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fixes)
}

func TestEndToEnd_ApprovedReportAffectsAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stats := analytics.NewReportAnalytics(f.store, nil, fixedClock)

	input := validInput()
	input.Company = "Acme"
	input.Salary = 25.5

	first, err := f.submit.Execute(ctx, input)
	require.NoError(t, err)
	_, err = f.approve.Execute(ctx, first.ID)
	require.NoError(t, err)

	comparison, err := stats.CompanyComparison(ctx, "Acme")
	require.NoError(t, err)
	require.Contains(t, comparison, "Acme")
	assert.Equal(t, 25.5, comparison["Acme"].Mean)
	assert.Equal(t, 1, comparison["Acme"].Count)

	input.Salary = 90
	second, err := f.submit.Execute(ctx, input)
	require.NoError(t, err)
	require.NoError(t, f.reject.Execute(ctx, second.ID))

	comparison, err = stats.CompanyComparison(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, 25.5, comparison["Acme"].Mean)
	assert.Equal(t, 1, comparison["Acme"].Count)
}

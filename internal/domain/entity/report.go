package entity

// CurrentSchemaVersion - ревизия схемы записи (2: добавлены role, bonus, arrangement).
const CurrentSchemaVersion = 2

// ReportFields - общие поля отчёта о зарплате, которые копируются при одобрении.
type ReportFields struct {
	Company       string
	Role          string
	Salary        float64
	Bonus         *float64
	Year          int
	Term          *int
	University    string
	Location      *string
	Arrangement   *string
	SchemaVersion int
}

// ApprovedReport - одобренный отчёт, участвующий в аналитике.
// После вставки не меняется, кроме разовой нормализации локации.
type ApprovedReport struct {
	ID int64
	ReportFields
}

// LocationValue возвращает локацию или пустую строку.
func (f ReportFields) LocationValue() string {
	if f.Location == nil {
		return ""
	}
	return *f.Location
}

package dto

import "github.com/ignatzorin/salary-backend/internal/domain/repository"

type CompanyAverageResponse struct {
	Company       string  `json:"company"`
	AverageSalary float64 `json:"average_salary"`
}

func ToCompanyAverageResponse(company string, avg float64) CompanyAverageResponse {
	return CompanyAverageResponse{Company: company, AverageSalary: money(avg)}
}

type CompanyTopValueResponse struct {
	Company string `json:"company"`
	Value   string `json:"value"`
	Count   int    `json:"count"`
}

func ToCompanyTopValueResponse(company string, vc *repository.ValueCount) CompanyTopValueResponse {
	return CompanyTopValueResponse{Company: company, Value: vc.Value, Count: vc.Count}
}

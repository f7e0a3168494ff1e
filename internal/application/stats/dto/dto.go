package dto

import "github.com/shopspring/decimal"

type RechargeStatsDTO struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalCount  int64           `json:"totalCount"`
	Period      string          `json:"period"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
}

type MemberStatsDTO struct {
	TotalCount int64  `json:"totalCount"`
	NewCount   int64  `json:"newCount"`
	Period     string `json:"period"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

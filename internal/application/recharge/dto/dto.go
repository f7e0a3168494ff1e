package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/domain/recharge"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type RechargeDTO struct {
	ID              uint                   `json:"id"`
	MemberID        uint                   `json:"memberId"`
	PackID          *uint                  `json:"packId"`
	PackageName     string                 `json:"packageName,omitempty"`
	Type            string                 `json:"type"`
	RechargeAmount  decimal.Decimal        `json:"rechargeAmount"`
	BonusAmount     decimal.Decimal        `json:"bonusAmount"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	TotalTimes      *int                   `json:"totalTimes"`
	UsedTimes       int                    `json:"usedTimes"`
	RemainingTimes  *int                   `json:"remainingTimes"`
	StartDate       *time.Time             `json:"startDate"`
	EndDate         *time.Time             `json:"endDate"`
	ValidityDays    *int                   `json:"validityDays,omitempty"`
	PaymentType     string                 `json:"paymentType,omitempty"`
	Seq             string                 `json:"seq"`
	State           string                 `json:"state"`
	RechargeAt      time.Time              `json:"rechargeAt"`
	OperatorID      *uint                  `json:"operatorId,omitempty"`
	Remark          string                 `json:"remark,omitempty"`
	Payload         map[string]interface{} `json:"payload,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func ToRechargeDTO(r *recharge.Recharge) *RechargeDTO {
	if r == nil {
		return nil
	}
	return &RechargeDTO{
		ID:              r.ID(),
		MemberID:        r.MemberID(),
		PackID:          r.PackID(),
		PackageName:     r.PackageName(),
		Type:            string(r.Type()),
		RechargeAmount:  r.RechargeAmount(),
		BonusAmount:     r.BonusAmount(),
		TotalAmount:     r.TotalAmount(),
		RemainingAmount: r.RemainingAmount(),
		TotalTimes:      r.TotalTimes(),
		UsedTimes:       r.UsedTimes(),
		RemainingTimes:  r.RemainingTimes(),
		StartDate:       r.StartDate(),
		EndDate:         r.EndDate(),
		ValidityDays:    r.ValidityDays(),
		PaymentType:     r.PaymentType(),
		Seq:             r.Seq(),
		State:           r.State().String(),
		RechargeAt:      r.RechargeAt(),
		OperatorID:      r.OperatorID(),
		Remark:          r.Remark(),
		Payload:         r.Payload(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func ToRechargeDTOList(recharges []*recharge.Recharge) []*RechargeDTO {
	return mapper.MapSlice(recharges, ToRechargeDTO)
}

type StatisticsDTO struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalCount    int64           `json:"totalCount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

func ToStatisticsDTO(s *recharge.Statistics) *StatisticsDTO {
	return &StatisticsDTO{
		TotalAmount:   s.TotalAmount,
		TotalCount:    s.TotalCount,
		AverageAmount: s.AverageAmount,
	}
}

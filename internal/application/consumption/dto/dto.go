package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
)

type ConsumptionDTO struct {
	ID            uint                   `json:"id"`
	MemberID      *uint                  `json:"memberId"`
	RechargeID    *uint                  `json:"rechargeId"`
	PackID        *uint                  `json:"packId"`
	CustomerName  string                 `json:"customerName,omitempty"`
	CustomerPhone string                 `json:"customerPhone,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentType   string                 `json:"paymentType,omitempty"`
	Seq           string                 `json:"seq"`
	State         string                 `json:"state"`
	ConsumptionAt time.Time              `json:"consumptionAt"`
	OperatorID    *uint                  `json:"operatorId,omitempty"`
	Remark        string                 `json:"remark,omitempty"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`

	PackageName  *string          `json:"packageName"`
	PackageType  *string          `json:"packageType"`
	RechargeInfo *RechargeInfoDTO `json:"rechargeInfo"`
}

// RechargeInfoDTO is the slice of the linked recharge shown next to a
// consumption.
type RechargeInfoDTO struct {
	ID              uint            `json:"id"`
	TotalTimes      *int            `json:"totalTimes"`
	RemainingTimes  *int            `json:"remainingTimes"`
	UsedTimes       int             `json:"usedTimes"`
	RechargeAmount  decimal.Decimal `json:"rechargeAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

func ToConsumptionDTO(c *consumption.Consumption) *ConsumptionDTO {
	if c == nil {
		return nil
	}
	return &ConsumptionDTO{
		ID:            c.ID(),
		MemberID:      c.MemberID(),
		RechargeID:    c.RechargeID(),
		PackID:        c.PackID(),
		CustomerName:  c.CustomerName(),
		CustomerPhone: c.CustomerPhone(),
		Amount:        c.Amount(),
		PaymentType:   c.PaymentType(),
		Seq:           c.Seq(),
		State:         c.State().String(),
		ConsumptionAt: c.ConsumptionAt(),
		OperatorID:    c.OperatorID(),
		Remark:        c.Remark(),
		Payload:       c.Payload(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

// WithPack fills the pack columns; a nil pack leaves them null.
func (d *ConsumptionDTO) WithPack(p *pack.Pack) *ConsumptionDTO {
	if p != nil {
		name := p.Name()
		packType := p.PackType().String()
		d.PackageName = &name
		d.PackageType = &packType
	}
	return d
}

func (d *ConsumptionDTO) WithRecharge(r *recharge.Recharge) *ConsumptionDTO {
	if r != nil {
		d.RechargeInfo = &RechargeInfoDTO{
			ID:              r.ID(),
			TotalTimes:      r.TotalTimes(),
			RemainingTimes:  r.RemainingTimes(),
			UsedTimes:       r.UsedTimes(),
			RechargeAmount:  r.RechargeAmount(),
			TotalAmount:     r.TotalAmount(),
			RemainingAmount: r.RemainingAmount(),
		}
	}
	return d
}

type StatisticsDTO struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalCount    int64           `json:"totalCount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// RechargeCountersDTO reports a recharge's counters after reconciliation.
type RechargeCountersDTO struct {
	RechargeID     uint   `json:"rechargeId"`
	UsedTimes      int    `json:"usedTimes"`
	RemainingTimes *int   `json:"remainingTimes"`
	State          string `json:"state"`
}

type BatchResetItemDTO struct {
	RechargeID uint   `json:"rechargeId"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type BatchResetResultDTO struct {
	UpdatedCount int                 `json:"updatedCount"`
	FailedIDs    []uint              `json:"failedIds"`
	Results      []BatchResetItemDTO `json:"results"`
}

type ResetAllResultDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
	FailedIDs    []uint `json:"failedIds"`
}

type VerifyResultDTO struct {
	RechargeID               uint   `json:"rechargeId"`
	TotalTimes               *int   `json:"totalTimes"`
	CurrentUsedTimes         int    `json:"currentUsedTimes"`
	CurrentRemainingTimes    *int   `json:"currentRemainingTimes"`
	ActualUsedTimes          int    `json:"actualUsedTimes"`
	CalculatedRemainingTimes *int   `json:"calculatedRemainingTimes"`
	IsCorrect                bool   `json:"isCorrect"`
	Message                  string `json:"message"`
}

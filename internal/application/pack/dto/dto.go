package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type PackDTO struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	DescriptionHTML string                 `json:"descriptionHtml,omitempty"`
	PackType        string                 `json:"packType"`
	Category        string                 `json:"category,omitempty"`
	Icon            string                 `json:"icon,omitempty"`
	MemberPrice     decimal.Decimal        `json:"memberPrice"`
	SalePrice       decimal.Decimal        `json:"salePrice"`
	Price           decimal.Decimal        `json:"price"`
	TotalTimes      *int                   `json:"totalTimes"`
	ValidDay        int                    `json:"validDay"`
	State           string                 `json:"state"`
	Position        int                    `json:"position"`
	SalesCount      int                    `json:"salesCount"`
	Payload         map[string]interface{} `json:"payload,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func ToPackDTO(p *pack.Pack) *PackDTO {
	if p == nil {
		return nil
	}
	return &PackDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		PackType:    p.PackType().String(),
		Category:    p.Category(),
		Icon:        p.Icon(),
		MemberPrice: p.MemberPrice(),
		SalePrice:   p.SalePrice(),
		Price:       p.Price(),
		TotalTimes:  p.TotalTimes(),
		ValidDay:    p.ValidDay(),
		State:       string(p.State()),
		Position:    p.Position(),
		SalesCount:  p.SalesCount(),
		Payload:     p.Payload(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func ToPackDTOList(packs []*pack.Pack) []*PackDTO {
	return mapper.MapSlice(packs, ToPackDTO)
}

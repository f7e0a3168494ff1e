package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/shared/mapper"
)

type MemberDTO struct {
	ID         uint                   `json:"id"`
	Name       string                 `json:"name"`
	Phone      string                 `json:"phone"`
	Email      string                 `json:"email,omitempty"`
	Gender     string                 `json:"gender,omitempty"`
	Birthday   *time.Time             `json:"birthday,omitempty"`
	Level      string                 `json:"level"`
	Balance    decimal.Decimal        `json:"balance"`
	Points     int                    `json:"points"`
	State      string                 `json:"state"`
	Avatar     map[string]interface{} `json:"avatar,omitempty"`
	RegisterAt time.Time              `json:"registerAt"`
	Remark     string                 `json:"remark,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

func ToMemberDTO(m *member.Member) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{
		ID:         m.ID(),
		Name:       m.Name(),
		Phone:      m.Phone(),
		Email:      m.Email(),
		Gender:     m.Gender(),
		Birthday:   m.Birthday(),
		Level:      m.Level(),
		Balance:    m.Balance(),
		Points:     m.Points(),
		State:      m.State().String(),
		Avatar:     m.Avatar(),
		RegisterAt: m.RegisterAt(),
		Remark:     m.Remark(),
		Payload:    m.Payload(),
		CreatedAt:  m.CreatedAt(),
		UpdatedAt:  m.UpdatedAt(),
	}
}

func ToMemberDTOList(members []*member.Member) []*MemberDTO {
	return mapper.MapSlice(members, ToMemberDTO)
}

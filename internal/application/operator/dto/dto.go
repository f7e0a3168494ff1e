package dto

import (
	"time"

	"github.com/orris-inc/memberhub/internal/domain/operator"
)

type OperatorDTO struct {
	ID          uint       `json:"id"`
	Account     string     `json:"account"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func ToOperatorDTO(o *operator.Operator) *OperatorDTO {
	if o == nil {
		return nil
	}
	return &OperatorDTO{
		ID:          o.ID(),
		Account:     o.Account(),
		Name:        o.Name(),
		Role:        string(o.Role()),
		Status:      string(o.Status()),
		LastLoginAt: o.LastLoginAt(),
		CreatedAt:   o.CreatedAt(),
	}
}

// LoginResultDTO is returned by POST /auth/login.
type LoginResultDTO struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	Operator    *OperatorDTO `json:"operator"`
}

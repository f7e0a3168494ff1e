package operator

import "context"

type Repository interface {
	Create(ctx context.Context, operator *Operator) error
	GetByID(ctx context.Context, id uint) (*Operator, error)
	GetByAccount(ctx context.Context, account string) (*Operator, error)
	Update(ctx context.Context, operator *Operator) error
}

// Session is the token store entry created on login.
type Session struct {
	OperatorID uint   `json:"id"`
	Account    string `json:"account"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
}

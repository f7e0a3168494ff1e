package operator

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "":
		return RoleStaff, nil
	case RoleAdmin, RoleStaff:
		return Role(raw), nil
	}
	return "", fmt.Errorf("invalid operator role: %s", raw)
}

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// Operator is a staff account that records recharges and consumptions.
type Operator struct {
	id           uint
	account      string
	name         string
	passwordHash string
	role         Role
	status       Status
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewOperator(account, name, passwordHash string, role Role, now time.Time) (*Operator, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, errors.NewValidationError("账号不能为空")
	}
	if len(account) > 20 {
		return nil, errors.NewValidationError("账号不能超过20个字符")
	}
	if name == "" {
		name = account
	}
	if passwordHash == "" {
		return nil, errors.NewValidationError("密码不能为空")
	}
	if role == "" {
		role = RoleStaff
	}
	return &Operator{
		account:      account,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

type ReconstructParams struct {
	ID           uint
	Account      string
	Name         string
	PasswordHash string
	Role         Role
	Status       Status
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstructOperator(p ReconstructParams) (*Operator, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("operator ID cannot be zero")
	}
	return &Operator{
		id:           p.ID,
		account:      p.Account,
		name:         p.Name,
		passwordHash: p.PasswordHash,
		role:         p.Role,
		status:       p.Status,
		lastLoginAt:  p.LastLoginAt,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

func (o *Operator) ID() uint { return o.id }
func (o *Operator) Account() string { return o.account }
func (o *Operator) Name() string { return o.name }
func (o *Operator) PasswordHash() string { return o.passwordHash }
func (o *Operator) Role() Role { return o.role }
func (o *Operator) Status() Status { return o.status }
func (o *Operator) LastLoginAt() *time.Time { return o.lastLoginAt }
func (o *Operator) CreatedAt() time.Time { return o.createdAt }
func (o *Operator) UpdatedAt() time.Time { return o.updatedAt }

func (o *Operator) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("operator ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("operator ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Operator) IsActive() bool {
	return o.status == StatusActive
}

func (o *Operator) RecordLogin(now time.Time) {
	o.lastLoginAt = &now
	o.updatedAt = now
}

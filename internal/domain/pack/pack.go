package pack

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// Pack is a prepaid package template. Recharges copy its times and
// validity when they reference it.
type Pack struct {
	id          uint
	name        string
	description string
	packType    vo.PackType
	category    string
	icon        string
	memberPrice decimal.Decimal
	salePrice   decimal.Decimal
	price       decimal.Decimal
	totalTimes  *int
	validDay    int
	state       vo.PackState
	position    int
	salesCount  int
	payload     map[string]interface{}
	createdAt   time.Time
	updatedAt   time.Time
}

type NewPackParams struct {
	Name        string
	Description string
	PackType    vo.PackType
	Category    string
	Icon        string
	MemberPrice decimal.Decimal
	SalePrice   decimal.Decimal
	Price       decimal.Decimal
	TotalTimes  *int
	ValidDay    int
	State       vo.PackState
	Position    int
	Payload     map[string]interface{}
}

func NewPack(p NewPackParams, now time.Time) (*Pack, error) {
	if p.Name == "" {
		return nil, errors.NewValidationError("套餐名称不能为空")
	}
	if err := validatePrices(p.MemberPrice, p.SalePrice, p.Price); err != nil {
		return nil, err
	}
	if p.TotalTimes != nil && *p.TotalTimes < 0 {
		return nil, errors.NewValidationError("套餐次数不能为负数")
	}
	if p.ValidDay < 0 {
		return nil, errors.NewValidationError("有效天数不能为负数")
	}
	packType := p.PackType
	if packType == "" {
		packType = vo.TypeTimes
	}
	state := p.State
	if state == "" {
		state = vo.StateActive
	}
	return &Pack{
		name:        p.Name,
		description: p.Description,
		packType:    packType,
		category:    p.Category,
		icon:        p.Icon,
		memberPrice: p.MemberPrice,
		salePrice:   p.SalePrice,
		price:       p.Price,
		totalTimes:  p.TotalTimes,
		validDay:    p.ValidDay,
		state:       state,
		position:    p.Position,
		payload:     p.Payload,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type ReconstructParams struct {
	ID          uint
	Name        string
	Description string
	PackType    vo.PackType
	Category    string
	Icon        string
	MemberPrice decimal.Decimal
	SalePrice   decimal.Decimal
	Price       decimal.Decimal
	TotalTimes  *int
	ValidDay    int
	State       vo.PackState
	Position    int
	SalesCount  int
	Payload     map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructPack(p ReconstructParams) (*Pack, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("pack ID cannot be zero")
	}
	return &Pack{
		id:          p.ID,
		name:        p.Name,
		description: p.Description,
		packType:    p.PackType,
		category:    p.Category,
		icon:        p.Icon,
		memberPrice: p.MemberPrice,
		salePrice:   p.SalePrice,
		price:       p.Price,
		totalTimes:  p.TotalTimes,
		validDay:    p.ValidDay,
		state:       p.State,
		position:    p.Position,
		salesCount:  p.SalesCount,
		payload:     p.Payload,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}, nil
}

func (p *Pack) ID() uint { return p.id }
func (p *Pack) Name() string { return p.name }
func (p *Pack) Description() string { return p.description }
func (p *Pack) PackType() vo.PackType { return p.packType }
func (p *Pack) Category() string { return p.category }
func (p *Pack) Icon() string { return p.icon }
func (p *Pack) MemberPrice() decimal.Decimal { return p.memberPrice }
func (p *Pack) SalePrice() decimal.Decimal { return p.salePrice }
func (p *Pack) Price() decimal.Decimal { return p.price }
func (p *Pack) TotalTimes() *int { return p.totalTimes }
func (p *Pack) ValidDay() int { return p.validDay }
func (p *Pack) State() vo.PackState { return p.state }
func (p *Pack) Position() int { return p.position }
func (p *Pack) SalesCount() int { return p.salesCount }
func (p *Pack) Payload() map[string]interface{} { return p.payload }
func (p *Pack) CreatedAt() time.Time { return p.createdAt }
func (p *Pack) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the pack ID (only for persistence layer use)
func (p *Pack) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("pack ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("pack ID cannot be zero")
	}
	p.id = id
	return nil
}

// HasTimes reports whether recharges of this pack track usage times.
func (p *Pack) HasTimes() bool {
	return p.totalTimes != nil && *p.totalTimes > 0
}

type UpdateParams struct {
	Name        *string
	Description *string
	PackType    *vo.PackType
	Category    *string
	Icon        *string
	MemberPrice *decimal.Decimal
	SalePrice   *decimal.Decimal
	Price       *decimal.Decimal
	TotalTimes  *int
	ValidDay    *int
	State       *vo.PackState
	Position    *int
	Payload     map[string]interface{}
}

func (p *Pack) Update(u UpdateParams, now time.Time) error {
	if u.Name != nil && *u.Name == "" {
		return errors.NewValidationError("套餐名称不能为空")
	}
	for _, price := range []*decimal.Decimal{u.MemberPrice, u.SalePrice, u.Price} {
		if price != nil && price.IsNegative() {
			return errors.NewValidationError("价格不能为负数")
		}
	}
	if (u.TotalTimes != nil && *u.TotalTimes < 0) || (u.ValidDay != nil && *u.ValidDay < 0) {
		return errors.NewValidationError("次数和有效天数不能为负数")
	}

	if u.Name != nil {
		p.name = *u.Name
	}
	if u.Description != nil {
		p.description = *u.Description
	}
	if u.PackType != nil {
		p.packType = *u.PackType
	}
	if u.Category != nil {
		p.category = *u.Category
	}
	if u.Icon != nil {
		p.icon = *u.Icon
	}
	if u.MemberPrice != nil {
		p.memberPrice = *u.MemberPrice
	}
	if u.SalePrice != nil {
		p.salePrice = *u.SalePrice
	}
	if u.Price != nil {
		p.price = *u.Price
	}
	if u.TotalTimes != nil {
		p.totalTimes = u.TotalTimes
	}
	if u.ValidDay != nil {
		p.validDay = *u.ValidDay
	}
	if u.State != nil {
		p.state = *u.State
	}
	if u.Position != nil {
		p.position = *u.Position
	}
	if u.Payload != nil {
		p.payload = u.Payload
	}
	p.updatedAt = now
	return nil
}

func validatePrices(prices ...decimal.Decimal) error {
	for _, price := range prices {
		if price.IsNegative() {
			return errors.NewValidationError("价格不能为负数")
		}
	}
	return nil
}

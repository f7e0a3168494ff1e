package consumption

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/consumption/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// Consumption is one spend event. Member and recharge references are
// optional so walk-in and untied balance spends can be recorded.
type Consumption struct {
	id            uint
	memberID      *uint
	rechargeID    *uint
	packID        *uint
	customerName  string
	customerPhone string
	amount        decimal.Decimal
	paymentType   string
	seq           string
	state         vo.ConsumptionState
	consumptionAt time.Time
	operatorID    *uint
	remark        string
	payload       map[string]interface{}
	createdAt     time.Time
	updatedAt     time.Time
}

type NewConsumptionParams struct {
	MemberID      *uint
	RechargeID    *uint
	PackID        *uint
	CustomerName  string
	CustomerPhone string
	Amount        decimal.Decimal
	PaymentType   string
	Seq           string
	State         vo.ConsumptionState
	ConsumptionAt *time.Time
	OperatorID    *uint
	Remark        string
	Payload       map[string]interface{}
}

// NewConsumption builds a consumption with state defaulted to valid and
// consumptionAt defaulted to now.
func NewConsumption(p NewConsumptionParams, now time.Time) (*Consumption, error) {
	if p.Amount.IsNegative() {
		return nil, errors.NewValidationError("消费金额不能为负数")
	}
	state := p.State
	if state == "" {
		state = vo.StateValid
	}
	if !vo.ValidStates[state] {
		return nil, errors.NewValidationError(fmt.Sprintf("无效的消费状态: %s", state))
	}
	consumptionAt := now
	if p.ConsumptionAt != nil && !p.ConsumptionAt.IsZero() {
		consumptionAt = *p.ConsumptionAt
	}
	payload := p.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}

	return &Consumption{
		memberID:      p.MemberID,
		rechargeID:    p.RechargeID,
		packID:        p.PackID,
		customerName:  p.CustomerName,
		customerPhone: p.CustomerPhone,
		amount:        p.Amount,
		paymentType:   p.PaymentType,
		seq:           p.Seq,
		state:         state,
		consumptionAt: consumptionAt,
		operatorID:    p.OperatorID,
		remark:        p.Remark,
		payload:       payload,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructParams struct {
	ID            uint
	MemberID      *uint
	RechargeID    *uint
	PackID        *uint
	CustomerName  string
	CustomerPhone string
	Amount        decimal.Decimal
	PaymentType   string
	Seq           string
	State         vo.ConsumptionState
	ConsumptionAt time.Time
	OperatorID    *uint
	Remark        string
	Payload       map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructConsumption(p ReconstructParams) (*Consumption, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("consumption ID cannot be zero")
	}
	payload := p.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return &Consumption{
		id:            p.ID,
		memberID:      p.MemberID,
		rechargeID:    p.RechargeID,
		packID:        p.PackID,
		customerName:  p.CustomerName,
		customerPhone: p.CustomerPhone,
		amount:        p.Amount,
		paymentType:   p.PaymentType,
		seq:           p.Seq,
		state:         p.State,
		consumptionAt: p.ConsumptionAt,
		operatorID:    p.OperatorID,
		remark:        p.Remark,
		payload:       payload,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (c *Consumption) ID() uint { return c.id }
func (c *Consumption) MemberID() *uint { return c.memberID }
func (c *Consumption) RechargeID() *uint { return c.rechargeID }
func (c *Consumption) PackID() *uint { return c.packID }
func (c *Consumption) CustomerName() string { return c.customerName }
func (c *Consumption) CustomerPhone() string { return c.customerPhone }
func (c *Consumption) Amount() decimal.Decimal { return c.amount }
func (c *Consumption) PaymentType() string { return c.paymentType }
func (c *Consumption) Seq() string { return c.seq }
func (c *Consumption) State() vo.ConsumptionState { return c.state }
func (c *Consumption) ConsumptionAt() time.Time { return c.consumptionAt }
func (c *Consumption) OperatorID() *uint { return c.operatorID }
func (c *Consumption) Remark() string { return c.remark }
func (c *Consumption) Payload() map[string]interface{} { return c.payload }
func (c *Consumption) CreatedAt() time.Time { return c.createdAt }
func (c *Consumption) UpdatedAt() time.Time { return c.updatedAt }

// SetID sets the consumption ID (only for persistence layer use)
func (c *Consumption) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("consumption ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("consumption ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Consumption) SetSeq(seq string) {
	if c.seq == "" {
		c.seq = seq
	}
}

// NeedsCustomerInfo reports whether the customer snapshot should be filled
// from the member record.
func (c *Consumption) NeedsCustomerInfo() bool {
	return c.memberID != nil && (c.customerName == "" || c.customerPhone == "")
}

// FillCustomer copies member contact details into empty snapshot fields and
// reports whether anything changed.
func (c *Consumption) FillCustomer(name, phone string) bool {
	filled := false
	if c.customerName == "" && name != "" {
		c.customerName = name
		filled = true
	}
	if c.customerPhone == "" && phone != "" {
		c.customerPhone = phone
		filled = true
	}
	return filled
}

// NeedsAutoSelect reports whether a recharge should be chosen for the
// member automatically.
func (c *Consumption) NeedsAutoSelect() bool {
	return c.rechargeID == nil && c.memberID != nil && c.amount.IsPositive()
}

// AttachRecharge links the consumption to a recharge and denormalises its pack.
func (c *Consumption) AttachRecharge(rechargeID uint, packID *uint) {
	c.rechargeID = &rechargeID
	if packID != nil {
		c.packID = packID
	}
}

// CountsTowardUsage reports whether this record consumes one use of its
// recharge.
func (c *Consumption) CountsTowardUsage() bool {
	return c.rechargeID != nil && c.state.CountsTowardUsage()
}

// UpdateParams holds optional field edits. Nil leaves the field untouched.
type UpdateParams struct {
	MemberID      *uint
	RechargeID    *uint
	PackID        *uint
	CustomerName  *string
	CustomerPhone *string
	Amount        *decimal.Decimal
	PaymentType   *string
	State         *vo.ConsumptionState
	ConsumptionAt *time.Time
	OperatorID    *uint
	Remark        *string
	Payload       map[string]interface{}
}

func (c *Consumption) Update(p UpdateParams, now time.Time) error {
	if p.Amount != nil && p.Amount.IsNegative() {
		return errors.NewValidationError("消费金额不能为负数")
	}
	if p.State != nil && !vo.ValidStates[*p.State] {
		return errors.NewValidationError(fmt.Sprintf("无效的消费状态: %s", *p.State))
	}

	if p.MemberID != nil {
		c.memberID = p.MemberID
	}
	if p.RechargeID != nil {
		c.rechargeID = p.RechargeID
	}
	if p.PackID != nil {
		c.packID = p.PackID
	}
	if p.CustomerName != nil {
		c.customerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		c.customerPhone = *p.CustomerPhone
	}
	if p.Amount != nil {
		c.amount = *p.Amount
	}
	if p.PaymentType != nil {
		c.paymentType = *p.PaymentType
	}
	if p.State != nil {
		c.state = *p.State
	}
	if p.ConsumptionAt != nil {
		c.consumptionAt = *p.ConsumptionAt
	}
	if p.OperatorID != nil {
		c.operatorID = p.OperatorID
	}
	if p.Remark != nil {
		c.remark = *p.Remark
	}
	if p.Payload != nil {
		c.payload = p.Payload
	}
	c.updatedAt = now
	return nil
}

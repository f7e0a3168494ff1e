package recharge

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// Recharge is a member's purchased credit: money, usage times, or both,
// valid between startDate and endDate.
type Recharge struct {
	id              uint
	memberID        uint
	packID          *uint
	packageName     string
	rechargeType    vo.RechargeType
	rechargeAmount  decimal.Decimal
	bonusAmount     decimal.Decimal
	totalAmount     decimal.Decimal
	remainingAmount decimal.Decimal
	totalTimes      *int
	usedTimes       int
	remainingTimes  *int
	startDate       *time.Time
	endDate         *time.Time
	validityDays    *int
	paymentType     string
	seq             string
	state           vo.RechargeState
	storedState     vo.RechargeState
	rechargeAt      time.Time
	operatorID      *uint
	remark          string
	payload         map[string]interface{}
	createdAt       time.Time
	updatedAt       time.Time
}

// NewRechargeParams carries creation input. Nil amounts and counters mean
// "not supplied" and are defaulted by NewRecharge.
type NewRechargeParams struct {
	MemberID        uint
	PackID          *uint
	PackageName     string
	Type            vo.RechargeType
	RechargeAmount  *decimal.Decimal
	BonusAmount     *decimal.Decimal
	TotalAmount     *decimal.Decimal
	RemainingAmount *decimal.Decimal
	TotalTimes      *int
	UsedTimes       *int
	RemainingTimes  *int
	StartDate       time.Time
	EndDate         time.Time
	ValidityDays    *int
	PaymentType     string
	Seq             string
	RechargeAt      time.Time
	OperatorID      *uint
	Remark          string
	Payload         map[string]interface{}
	State           vo.RechargeState
}

func NewRecharge(p NewRechargeParams) (*Recharge, error) {
	if p.MemberID == 0 {
		return nil, errors.NewValidationError("会员ID不能为空")
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, errors.NewValidationError("有效期结束时间不能早于开始时间")
	}
	for _, amt := range []*decimal.Decimal{p.RechargeAmount, p.BonusAmount, p.TotalAmount, p.RemainingAmount} {
		if amt != nil && amt.IsNegative() {
			return nil, errors.NewValidationError("金额不能为负数")
		}
	}
	if p.TotalTimes != nil && *p.TotalTimes < 0 {
		return nil, errors.NewValidationError("总次数不能为负数")
	}

	rechargeAmount := valueOrZero(p.RechargeAmount)
	bonusAmount := valueOrZero(p.BonusAmount)

	// an explicit total is only trusted when neither component was sent
	totalAmount := rechargeAmount.Add(bonusAmount)
	if p.RechargeAmount == nil && p.BonusAmount == nil && p.TotalAmount != nil {
		totalAmount = *p.TotalAmount
	}

	remainingAmount := totalAmount
	if p.RemainingAmount != nil {
		remainingAmount = *p.RemainingAmount
	}

	usedTimes := 0
	if p.UsedTimes != nil && *p.UsedTimes > 0 {
		usedTimes = *p.UsedTimes
	}

	remainingTimes := cloneInt(p.RemainingTimes)
	if p.TotalTimes != nil && remainingTimes == nil {
		remainingTimes = intPtr(clampZero(*p.TotalTimes - usedTimes))
	}

	rechargeType := p.Type
	if rechargeType == "" {
		rechargeType = vo.TypeBalance
		if p.PackID != nil {
			rechargeType = vo.TypePackage
		}
	}

	state := vo.StateActive
	if p.State == vo.StateDisabled {
		state = vo.StateDisabled
	}

	start := p.StartDate
	end := p.EndDate
	now := time.Now().UTC()
	payload := p.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}

	return &Recharge{
		memberID:        p.MemberID,
		packID:          p.PackID,
		packageName:     p.PackageName,
		rechargeType:    rechargeType,
		rechargeAmount:  rechargeAmount,
		bonusAmount:     bonusAmount,
		totalAmount:     totalAmount,
		remainingAmount: remainingAmount,
		totalTimes:      cloneInt(p.TotalTimes),
		usedTimes:       usedTimes,
		remainingTimes:  remainingTimes,
		startDate:       &start,
		endDate:         &end,
		validityDays:    cloneInt(p.ValidityDays),
		paymentType:     p.PaymentType,
		seq:             p.Seq,
		state:           state,
		rechargeAt:      p.RechargeAt,
		operatorID:      p.OperatorID,
		remark:          p.Remark,
		payload:         payload,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructParams mirrors the persisted columns.
type ReconstructParams struct {
	ID              uint
	MemberID        uint
	PackID          *uint
	PackageName     string
	Type            vo.RechargeType
	RechargeAmount  decimal.Decimal
	BonusAmount     decimal.Decimal
	TotalAmount     decimal.Decimal
	RemainingAmount decimal.Decimal
	TotalTimes      *int
	UsedTimes       int
	RemainingTimes  *int
	StartDate       *time.Time
	EndDate         *time.Time
	ValidityDays    *int
	PaymentType     string
	Seq             string
	State           vo.RechargeState
	RechargeAt      time.Time
	OperatorID      *uint
	Remark          string
	Payload         map[string]interface{}
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructRecharge rebuilds a recharge from storage and derives its state
// against now. The derived state is not persisted.
func ReconstructRecharge(p ReconstructParams, now time.Time) (*Recharge, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("recharge ID cannot be zero")
	}
	payload := p.Payload
	if payload == nil {
		payload = make(map[string]interface{})
	}
	r := &Recharge{
		id:              p.ID,
		memberID:        p.MemberID,
		packID:          p.PackID,
		packageName:     p.PackageName,
		rechargeType:    p.Type,
		rechargeAmount:  p.RechargeAmount,
		bonusAmount:     p.BonusAmount,
		totalAmount:     p.TotalAmount,
		remainingAmount: p.RemainingAmount,
		totalTimes:      p.TotalTimes,
		usedTimes:       p.UsedTimes,
		remainingTimes:  p.RemainingTimes,
		startDate:       p.StartDate,
		endDate:         p.EndDate,
		validityDays:    p.ValidityDays,
		paymentType:     p.PaymentType,
		seq:             p.Seq,
		state:           p.State,
		storedState:     p.State,
		rechargeAt:      p.RechargeAt,
		operatorID:      p.OperatorID,
		remark:          p.Remark,
		payload:         payload,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
	r.DeriveState(now)
	return r, nil
}

func (r *Recharge) ID() uint { return r.id }
func (r *Recharge) MemberID() uint { return r.memberID }
func (r *Recharge) PackID() *uint { return r.packID }
func (r *Recharge) PackageName() string { return r.packageName }
func (r *Recharge) Type() vo.RechargeType { return r.rechargeType }
func (r *Recharge) RechargeAmount() decimal.Decimal { return r.rechargeAmount }
func (r *Recharge) BonusAmount() decimal.Decimal { return r.bonusAmount }
func (r *Recharge) TotalAmount() decimal.Decimal { return r.totalAmount }
func (r *Recharge) RemainingAmount() decimal.Decimal { return r.remainingAmount }
func (r *Recharge) TotalTimes() *int { return r.totalTimes }
func (r *Recharge) UsedTimes() int { return r.usedTimes }
func (r *Recharge) RemainingTimes() *int { return r.remainingTimes }
func (r *Recharge) StartDate() *time.Time { return r.startDate }
func (r *Recharge) EndDate() *time.Time { return r.endDate }
func (r *Recharge) ValidityDays() *int { return r.validityDays }
func (r *Recharge) PaymentType() string { return r.paymentType }
func (r *Recharge) Seq() string { return r.seq }
func (r *Recharge) State() vo.RechargeState { return r.state }
func (r *Recharge) RechargeAt() time.Time { return r.rechargeAt }
func (r *Recharge) OperatorID() *uint { return r.operatorID }
func (r *Recharge) Remark() string { return r.remark }
func (r *Recharge) Payload() map[string]interface{} { return r.payload }
func (r *Recharge) CreatedAt() time.Time { return r.createdAt }
func (r *Recharge) UpdatedAt() time.Time { return r.updatedAt }

// SetID sets the recharge ID (only for persistence layer use)
func (r *Recharge) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("recharge ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("recharge ID cannot be zero")
	}
	r.id = id
	return nil
}

// DeriveState recomputes the state in memory and reports whether it changed.
func (r *Recharge) DeriveState(now time.Time) bool {
	next := vo.DeriveRechargeState(r.state, r.endDate, r.remainingTimes, now)
	if next == r.state {
		return false
	}
	r.state = next
	return true
}

// PrepareForSave runs before every insert and update.
func (r *Recharge) PrepareForSave(now time.Time) {
	r.DeriveState(now)
	r.storedState = r.state
	r.updatedAt = now
}

// StateDirty reports whether the in-memory state differs from the state last
// loaded or prepared for save.
func (r *Recharge) StateDirty() bool {
	return r.state != r.storedState
}

// EnsureConsumable checks the recharge can back a new consumption. On
// expiry or exhaustion the state is flipped in memory and changed reports
// true so the caller can persist it before returning the error.
func (r *Recharge) EnsureConsumable(now time.Time) (changed bool, err error) {
	if r.state == vo.StateDisabled {
		return false, ErrRechargeDisabled()
	}
	if r.endDate != nil && vo.EndDatePassed(*r.endDate, now) {
		r.state = vo.StateExpired
		return r.StateDirty(), ErrRechargeExpired()
	}
	if r.remainingTimes != nil && *r.remainingTimes <= 0 {
		r.state = vo.StateCompleted
		return r.StateDirty(), ErrRechargeExhausted()
	}
	return false, nil
}

// ApplyUsage records one use: usedTimes+1 and, when times are tracked,
// remainingTimes-1 clamped at zero.
func (r *Recharge) ApplyUsage(now time.Time) {
	r.usedTimes++
	if r.remainingTimes != nil {
		r.remainingTimes = intPtr(clampZero(*r.remainingTimes - 1))
	}
	r.PrepareForSave(now)
}

// Reconcile replaces the counters with values recomputed from the
// consumption records that count toward usage.
func (r *Recharge) Reconcile(usedCount int, now time.Time) {
	used, remaining := ExpectedCounters(r.totalTimes, usedCount)
	r.usedTimes = used
	r.remainingTimes = remaining
	r.PrepareForSave(now)
}

// ExpectedCounters returns usedTimes and remainingTimes for a given count of
// usage-counting consumptions. remainingTimes is nil when times are untracked.
func ExpectedCounters(totalTimes *int, usedCount int) (int, *int) {
	if usedCount < 0 {
		usedCount = 0
	}
	if totalTimes == nil {
		return usedCount, nil
	}
	return usedCount, intPtr(clampZero(*totalTimes - usedCount))
}

// CountersMatch reports whether the stored counters equal the expected ones.
func (r *Recharge) CountersMatch(usedCount int) bool {
	used, remaining := ExpectedCounters(r.totalTimes, usedCount)
	if r.usedTimes != used {
		return false
	}
	if (r.remainingTimes == nil) != (remaining == nil) {
		return false
	}
	return remaining == nil || *r.remainingTimes == *remaining
}

// CheckAmountDebit validates a direct spend against the remaining amount.
func (r *Recharge) CheckAmountDebit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.NewValidationError("消费金额必须大于0")
	}
	if r.remainingAmount.LessThan(amount) {
		return ErrInsufficientBalance()
	}
	return nil
}

// CheckTimesDebit validates a direct spend of usage times.
func (r *Recharge) CheckTimesDebit(times int) error {
	if times <= 0 {
		return errors.NewValidationError("消费次数必须大于0")
	}
	if r.remainingTimes == nil || *r.remainingTimes < times {
		return ErrInsufficientTimes()
	}
	return nil
}

// UpdateAmounts recomputes totalAmount when either component changes.
func (r *Recharge) UpdateAmounts(rechargeAmount, bonusAmount *decimal.Decimal) error {
	if rechargeAmount == nil && bonusAmount == nil {
		return nil
	}
	if (rechargeAmount != nil && rechargeAmount.IsNegative()) || (bonusAmount != nil && bonusAmount.IsNegative()) {
		return errors.NewValidationError("金额不能为负数")
	}
	if rechargeAmount != nil {
		r.rechargeAmount = *rechargeAmount
	}
	if bonusAmount != nil {
		r.bonusAmount = *bonusAmount
	}
	r.totalAmount = r.rechargeAmount.Add(r.bonusAmount)
	return nil
}

func (r *Recharge) SetRemainingAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewValidationError("剩余金额不能为负数")
	}
	r.remainingAmount = amount
	return nil
}

// UpdateCounters recomputes remainingTimes when totalTimes or usedTimes
// changes and totalTimes is tracked.
func (r *Recharge) UpdateCounters(totalTimes, usedTimes *int) error {
	if totalTimes == nil && usedTimes == nil {
		return nil
	}
	if (totalTimes != nil && *totalTimes < 0) || (usedTimes != nil && *usedTimes < 0) {
		return errors.NewValidationError("次数不能为负数")
	}
	if totalTimes != nil {
		r.totalTimes = cloneInt(totalTimes)
	}
	if usedTimes != nil {
		r.usedTimes = *usedTimes
	}
	if r.totalTimes != nil {
		r.remainingTimes = intPtr(clampZero(*r.totalTimes - r.usedTimes))
	}
	return nil
}

// UpdateValidity moves the validity window.
func (r *Recharge) UpdateValidity(startDate, endDate *time.Time) error {
	start, end := r.startDate, r.endDate
	if startDate != nil {
		start = startDate
	}
	if endDate != nil {
		end = endDate
	}
	if start != nil && end != nil && end.Before(*start) {
		return errors.NewValidationError("有效期结束时间不能早于开始时间")
	}
	r.startDate, r.endDate = start, end
	return nil
}

// SetState applies an administrative state change. disabled is the explicit
// admin action; any other value lifts a disable and lets derivation decide.
func (r *Recharge) SetState(state vo.RechargeState) {
	if state == vo.StateDisabled {
		r.state = vo.StateDisabled
		return
	}
	r.state = vo.StateActive
}

func (r *Recharge) UpdateDetails(packageName, paymentType, remark *string, operatorID *uint, payload map[string]interface{}) {
	if packageName != nil {
		r.packageName = *packageName
	}
	if paymentType != nil {
		r.paymentType = *paymentType
	}
	if remark != nil {
		r.remark = *remark
	}
	if operatorID != nil {
		r.operatorID = operatorID
	}
	if payload != nil {
		r.payload = payload
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func intPtr(v int) *int {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return intPtr(*v)
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

package member

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// Member is a registered customer. Balance and points are informational and
// never debited by the recharge engine.
type Member struct {
	id         uint
	name       string
	phone      string
	email      string
	gender     string
	birthday   *time.Time
	level      string
	balance    decimal.Decimal
	points     int
	state      vo.MemberState
	avatar     map[string]interface{}
	registerAt time.Time
	remark     string
	payload    map[string]interface{}
	createdAt  time.Time
	updatedAt  time.Time
}

type NewMemberParams struct {
	Name       string
	Phone      string
	Email      string
	Gender     string
	Birthday   *time.Time
	Level      string
	Balance    decimal.Decimal
	Points     int
	State      vo.MemberState
	Avatar     map[string]interface{}
	RegisterAt *time.Time
	Remark     string
	Payload    map[string]interface{}
}

func NewMember(p NewMemberParams, now time.Time) (*Member, error) {
	if p.Name == "" {
		return nil, errors.NewValidationError("会员姓名不能为空")
	}
	phone, err := vo.NewPhone(p.Phone)
	if err != nil {
		return nil, errors.NewValidationError("手机号格式不正确", err.Error())
	}
	email, err := vo.NormalizeEmail(p.Email)
	if err != nil {
		return nil, errors.NewValidationError("邮箱格式不正确", err.Error())
	}
	state := p.State
	if state == "" {
		state = vo.StateActive
	}
	level := p.Level
	if level == "" {
		level = "normal"
	}
	registerAt := now
	if p.RegisterAt != nil {
		registerAt = *p.RegisterAt
	}

	return &Member{
		name:       p.Name,
		phone:      phone.String(),
		email:      email,
		gender:     p.Gender,
		birthday:   p.Birthday,
		level:      level,
		balance:    p.Balance,
		points:     p.Points,
		state:      state,
		avatar:     p.Avatar,
		registerAt: registerAt,
		remark:     p.Remark,
		payload:    p.Payload,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

type ReconstructParams struct {
	ID         uint
	Name       string
	Phone      string
	Email      string
	Gender     string
	Birthday   *time.Time
	Level      string
	Balance    decimal.Decimal
	Points     int
	State      vo.MemberState
	Avatar     map[string]interface{}
	RegisterAt time.Time
	Remark     string
	Payload    map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ReconstructMember(p ReconstructParams) (*Member, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("member ID cannot be zero")
	}
	return &Member{
		id:         p.ID,
		name:       p.Name,
		phone:      p.Phone,
		email:      p.Email,
		gender:     p.Gender,
		birthday:   p.Birthday,
		level:      p.Level,
		balance:    p.Balance,
		points:     p.Points,
		state:      p.State,
		avatar:     p.Avatar,
		registerAt: p.RegisterAt,
		remark:     p.Remark,
		payload:    p.Payload,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
	}, nil
}

func (m *Member) ID() uint { return m.id }
func (m *Member) Name() string { return m.name }
func (m *Member) Phone() string { return m.phone }
func (m *Member) Email() string { return m.email }
func (m *Member) Gender() string { return m.gender }
func (m *Member) Birthday() *time.Time { return m.birthday }
func (m *Member) Level() string { return m.level }
func (m *Member) Balance() decimal.Decimal { return m.balance }
func (m *Member) Points() int { return m.points }
func (m *Member) State() vo.MemberState { return m.state }
func (m *Member) Avatar() map[string]interface{} { return m.avatar }
func (m *Member) RegisterAt() time.Time { return m.registerAt }
func (m *Member) Remark() string { return m.remark }
func (m *Member) Payload() map[string]interface{} { return m.payload }
func (m *Member) CreatedAt() time.Time { return m.createdAt }
func (m *Member) UpdatedAt() time.Time { return m.updatedAt }

// SetID sets the member ID (only for persistence layer use)
func (m *Member) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("member ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("member ID cannot be zero")
	}
	m.id = id
	return nil
}

type UpdateParams struct {
	Name       *string
	Phone      *string
	Email      *string
	Gender     *string
	Birthday   *time.Time
	Level      *string
	State      *vo.MemberState
	Avatar     map[string]interface{}
	RegisterAt *time.Time
	Remark     *string
	Payload    map[string]interface{}
}

// Update applies profile edits. Balance and points change only through
// the guarded adjust operations.
func (m *Member) Update(p UpdateParams, now time.Time) error {
	if p.Name != nil {
		if *p.Name == "" {
			return errors.NewValidationError("会员姓名不能为空")
		}
		m.name = *p.Name
	}
	if p.Phone != nil {
		phone, err := vo.NewPhone(*p.Phone)
		if err != nil {
			return errors.NewValidationError("手机号格式不正确", err.Error())
		}
		m.phone = phone.String()
	}
	if p.Email != nil {
		email, err := vo.NormalizeEmail(*p.Email)
		if err != nil {
			return errors.NewValidationError("邮箱格式不正确", err.Error())
		}
		m.email = email
	}
	if p.Gender != nil {
		m.gender = *p.Gender
	}
	if p.Birthday != nil {
		m.birthday = p.Birthday
	}
	if p.Level != nil {
		m.level = *p.Level
	}
	if p.State != nil {
		m.state = *p.State
	}
	if p.Avatar != nil {
		m.avatar = p.Avatar
	}
	if p.RegisterAt != nil {
		m.registerAt = *p.RegisterAt
	}
	if p.Remark != nil {
		m.remark = *p.Remark
	}
	if p.Payload != nil {
		m.payload = p.Payload
	}
	m.updatedAt = now
	return nil
}

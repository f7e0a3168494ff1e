package member

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/memberhub/internal/domain/member/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

var testNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewMember(t *testing.T) {
	m, err := NewMember(NewMemberParams{
		Name:    "张三",
		Phone:   "１３８００００００００",
		Email:   "Zhang@Example.com",
		Balance: decimal.NewFromInt(20),
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "13800000000", m.Phone())
	assert.Equal(t, "zhang@example.com", m.Email())
	assert.Equal(t, vo.StateActive, m.State())
	assert.Equal(t, "normal", m.Level())
	assert.Equal(t, testNow, m.RegisterAt())
}

func TestNewMember_Validation(t *testing.T) {
	_, err := NewMember(NewMemberParams{Phone: "13800000000"}, testNow)
	assert.True(t, errors.IsValidationError(err))

	_, err = NewMember(NewMemberParams{Name: "张三", Phone: "abc"}, testNow)
	assert.True(t, errors.IsValidationError(err))

	_, err = NewMember(NewMemberParams{Name: "张三", Phone: "13800000000", Email: "bad"}, testNow)
	assert.True(t, errors.IsValidationError(err))
}

func TestMemberUpdate(t *testing.T) {
	m, err := ReconstructMember(ReconstructParams{ID: 1, Name: "张三", Phone: "13800000000", State: vo.StateActive})
	require.NoError(t, err)

	disabled := vo.StateDisabled
	later := testNow.Add(time.Hour)
	require.NoError(t, m.Update(UpdateParams{
		Name:  strPtr("李四"),
		Phone: strPtr("139 0000 0000"),
		State: &disabled,
	}, later))

	assert.Equal(t, "李四", m.Name())
	assert.Equal(t, "13900000000", m.Phone())
	assert.Equal(t, vo.StateDisabled, m.State())
	assert.Equal(t, later, m.UpdatedAt())

	assert.True(t, errors.IsValidationError(m.Update(UpdateParams{Name: strPtr("")}, later)))
}

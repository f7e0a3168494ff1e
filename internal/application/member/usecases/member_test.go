package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/infrastructure/database/testdb"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/services/markdown"
)

func newMemberRepo(t *testing.T) member.Repository {
	return repository.NewMemberRepository(testdb.Open(t), logger.NewNopLogger())
}

func createMember(t *testing.T, repo member.Repository, name, phone string) uint {
	t.Helper()
	uc := NewCreateMemberUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger())
	m, err := uc.Execute(context.Background(), CreateMemberCommand{Name: name, Phone: phone})
	require.NoError(t, err)
	return m.ID
}

func TestCreateMemberUseCase_NormalisesAndRejectsDuplicatePhone(t *testing.T) {
	repo := newMemberRepo(t)
	uc := NewCreateMemberUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger())
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	created, err := uc.Execute(context.Background(), CreateMemberCommand{
		Name:   "张三",
		Phone:  "１３８-0000-0001",
		Remark: "<b>vip</b> customer",
	})
	require.NoError(t, err)
	assert.Equal(t, "13800000001", created.Phone)
	assert.Equal(t, "active", created.State)
	assert.Equal(t, "normal", created.Level)
	assert.Equal(t, "vip customer", created.Remark)
	assert.True(t, fixed.Equal(created.RegisterAt))

	_, err = uc.Execute(context.Background(), CreateMemberCommand{Name: "李四", Phone: "13800000001"})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Equal(t, "手机号已存在", errors.GetAppError(err).Message)
}

func TestCreateMemberUseCase_Validation(t *testing.T) {
	uc := NewCreateMemberUseCase(newMemberRepo(t), markdown.NewRenderer(), logger.NewNopLogger())

	tests := []struct {
		name string
		cmd  CreateMemberCommand
	}{
		{name: "missing name", cmd: CreateMemberCommand{Phone: "13800000000"}},
		{name: "bad phone", cmd: CreateMemberCommand{Name: "a", Phone: "abc"}},
		{name: "bad state", cmd: CreateMemberCommand{Name: "a", Phone: "13800000000", State: "frozen"}},
		{name: "negative points", cmd: CreateMemberCommand{Name: "a", Phone: "13800000000", Points: func() *int { v := -1; return &v }()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestGetMemberUseCase_NotFound(t *testing.T) {
	uc := NewGetMemberUseCase(newMemberRepo(t), logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, "会员 ID 42 不存在", errors.GetAppError(err).Message)
}

func TestUpdateMemberUseCase_PhoneConflict(t *testing.T) {
	repo := newMemberRepo(t)
	first := createMember(t, repo, "A", "13800000001")
	createMember(t, repo, "B", "13800000002")

	uc := NewUpdateMemberUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger())

	taken := "13800000002"
	_, err := uc.Execute(context.Background(), UpdateMemberCommand{ID: first, Phone: &taken})
	assert.True(t, errors.IsConflictError(err))

	same := "13800000001"
	name := "A2"
	updated, err := uc.Execute(context.Background(), UpdateMemberCommand{ID: first, Phone: &same, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
}

func TestListMembersUseCase_SearchAndState(t *testing.T) {
	repo := newMemberRepo(t)
	createMember(t, repo, "Alice", "13800000001")
	bob := createMember(t, repo, "Bob", "13900000002")

	disabled := "disabled"
	_, err := NewUpdateMemberUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger()).
		Execute(context.Background(), UpdateMemberCommand{ID: bob, State: &disabled})
	require.NoError(t, err)

	uc := NewListMembersUseCase(repo, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListMembersQuery{Search: "1380"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
	assert.Equal(t, "Alice", result.Members[0].Name)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PageSize)

	result, err = uc.Execute(context.Background(), ListMembersQuery{State: "disabled"})
	require.NoError(t, err)
	require.Len(t, result.Members, 1)
	assert.Equal(t, bob, result.Members[0].ID)

	_, err = uc.Execute(context.Background(), ListMembersQuery{State: "gone"})
	assert.True(t, errors.IsValidationError(err))
}

func TestAdjustMemberUseCase(t *testing.T) {
	repo := newMemberRepo(t)
	id := createMember(t, repo, "Alice", "13800000001")
	uc := NewAdjustMemberUseCase(repo, logger.NewNopLogger())
	ctx := context.Background()

	m, err := uc.AdjustBalance(ctx, id, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(m.Balance))

	_, err = uc.AdjustBalance(ctx, id, decimal.NewFromInt(-150))
	assert.Equal(t, "余额不足", errors.GetAppError(err).Message)

	m, err = uc.AdjustPoints(ctx, id, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, m.Points)

	_, err = uc.AdjustPoints(ctx, id, -21)
	assert.Equal(t, "积分不足", errors.GetAppError(err).Message)

	_, err = uc.AdjustPoints(ctx, id, 0)
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.AdjustBalance(ctx, 999, decimal.NewFromInt(1))
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeleteMemberUseCase(t *testing.T) {
	repo := newMemberRepo(t)
	id := createMember(t, repo, "Alice", "13800000001")
	uc := NewDeleteMemberUseCase(repo, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), id))
	assert.True(t, errors.IsNotFoundError(uc.Execute(context.Background(), id)))
}

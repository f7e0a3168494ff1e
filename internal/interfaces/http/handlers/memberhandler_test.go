package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberdto "github.com/orris-inc/memberhub/internal/application/member/dto"
	memberUsecases "github.com/orris-inc/memberhub/internal/application/member/usecases"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateMemberUC struct {
	result *memberdto.MemberDTO
	err    error
	cmd    memberUsecases.CreateMemberCommand
}

func (m *mockCreateMemberUC) Execute(ctx context.Context, cmd memberUsecases.CreateMemberCommand) (*memberdto.MemberDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetMemberUC struct {
	result *memberdto.MemberDTO
	err    error
}

func (m *mockGetMemberUC) Execute(ctx context.Context, id uint) (*memberdto.MemberDTO, error) {
	return m.result, m.err
}

type mockListMembersUC struct {
	result *memberUsecases.ListMembersResult
	err    error
	query  memberUsecases.ListMembersQuery
}

func (m *mockListMembersUC) Execute(ctx context.Context, q memberUsecases.ListMembersQuery) (*memberUsecases.ListMembersResult, error) {
	m.query = q
	return m.result, m.err
}

type mockUpdateMemberUC struct {
	result *memberdto.MemberDTO
	err    error
	cmd    memberUsecases.UpdateMemberCommand
}

func (m *mockUpdateMemberUC) Execute(ctx context.Context, cmd memberUsecases.UpdateMemberCommand) (*memberdto.MemberDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockDeleteMemberUC struct {
	err error
}

func (m *mockDeleteMemberUC) Execute(ctx context.Context, id uint) error {
	return m.err
}

type mockAdjustMemberUC struct {
	result       *memberdto.MemberDTO
	err          error
	balanceDelta decimal.Decimal
	pointsDelta  int
}

func (m *mockAdjustMemberUC) AdjustBalance(ctx context.Context, id uint, delta decimal.Decimal) (*memberdto.MemberDTO, error) {
	m.balanceDelta = delta
	return m.result, m.err
}

func (m *mockAdjustMemberUC) AdjustPoints(ctx context.Context, id uint, delta int) (*memberdto.MemberDTO, error) {
	m.pointsDelta = delta
	return m.result, m.err
}

type memberHandlerMocks struct {
	create *mockCreateMemberUC
	get    *mockGetMemberUC
	list   *mockListMembersUC
	update *mockUpdateMemberUC
	delete *mockDeleteMemberUC
	adjust *mockAdjustMemberUC
}

func newTestMemberHandler() (*MemberHandler, *memberHandlerMocks) {
	m := &memberHandlerMocks{
		create: &mockCreateMemberUC{},
		get:    &mockGetMemberUC{},
		list:   &mockListMembersUC{},
		update: &mockUpdateMemberUC{},
		delete: &mockDeleteMemberUC{},
		adjust: &mockAdjustMemberUC{},
	}
	h := NewMemberHandler(m.create, m.get, m.list, m.update, m.delete, m.adjust, testutil.NewMockLogger())
	return h, m
}

// =====================================================================
// CreateMember
// =====================================================================

func TestMemberHandler_CreateMember_Success(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.create.result = &memberdto.MemberDTO{ID: 1, Name: "Alice", Phone: "13800000000"}

	c, w := testutil.NewTestContext(http.MethodPost, "/members", map[string]interface{}{
		"name":     "Alice",
		"phone":    "１３８0000 0000",
		"birthday": "1990-05-01",
		"balance":  "12.50",
	})

	h.CreateMember(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	assert.Equal(t, "Alice", mocks.create.cmd.Name)
	require.NotNil(t, mocks.create.cmd.Birthday)
	require.NotNil(t, mocks.create.cmd.Balance)
	assert.Equal(t, "12.5", mocks.create.cmd.Balance.String())
}

func TestMemberHandler_CreateMember_InvalidPhone(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/members", map[string]interface{}{
		"name":  "Alice",
		"phone": "not-a-phone",
	})

	h.CreateMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
}

func TestMemberHandler_CreateMember_MissingName(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/members", map[string]interface{}{
		"phone": "13800000000",
	})

	h.CreateMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberHandler_CreateMember_BadBirthday(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/members", map[string]interface{}{
		"name":     "Alice",
		"phone":    "13800000000",
		"birthday": "01/05/1990",
	})

	h.CreateMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberHandler_CreateMember_DuplicatePhone(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.create.err = errors.NewConflictError("手机号已存在")

	c, w := testutil.NewTestContext(http.MethodPost, "/members", map[string]interface{}{
		"name":  "Alice",
		"phone": "13800000000",
	})

	h.CreateMember(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "手机号已存在", resp.Error.Message)
}

// =====================================================================
// GetMember / ListMembers
// =====================================================================

func TestMemberHandler_GetMember(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, mocks := newTestMemberHandler()
		mocks.get.result = &memberdto.MemberDTO{ID: 5, Name: "Bob"}

		c, w := testutil.NewTestContext(http.MethodGet, "/members/5", nil)
		testutil.SetURLParam(c, "id", "5")

		h.GetMember(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got memberdto.MemberDTO
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, uint(5), got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		h, mocks := newTestMemberHandler()
		mocks.get.err = errors.NewNotFoundError("会员 ID 9 不存在")

		c, w := testutil.NewTestContext(http.MethodGet, "/members/9", nil)
		testutil.SetURLParam(c, "id", "9")

		h.GetMember(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		h, _ := newTestMemberHandler()

		c, w := testutil.NewTestContext(http.MethodGet, "/members/abc", nil)
		testutil.SetURLParam(c, "id", "abc")

		h.GetMember(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMemberHandler_ListMembers(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.list.result = &memberUsecases.ListMembersResult{
		Members:  []*memberdto.MemberDTO{{ID: 1}, {ID: 2}},
		Total:    12,
		Page:     2,
		PageSize: 5,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/members", nil)
	testutil.SetQueryParams(c, map[string]string{
		"page":      "2",
		"page_size": "5",
		"search":    "138",
		"state":     "active",
	})

	h.ListMembers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "138", mocks.list.query.Search)
	assert.Equal(t, "active", mocks.list.query.State)
	assert.Equal(t, 2, mocks.list.query.Page)
	assert.Equal(t, 5, mocks.list.query.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(12), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

// =====================================================================
// UpdateMember / DeleteMember
// =====================================================================

func TestMemberHandler_UpdateMember(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.update.result = &memberdto.MemberDTO{ID: 3, Name: "Carol"}

	c, w := testutil.NewTestContext(http.MethodPut, "/members/3", map[string]interface{}{
		"name":  "Carol",
		"state": "disabled",
	})
	testutil.SetURLParam(c, "id", "3")

	h.UpdateMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), mocks.update.cmd.ID)
	require.NotNil(t, mocks.update.cmd.State)
	assert.Equal(t, "disabled", *mocks.update.cmd.State)
	assert.Nil(t, mocks.update.cmd.Phone)
}

func TestMemberHandler_UpdateMember_InvalidState(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, w := testutil.NewTestContext(http.MethodPut, "/members/3", map[string]interface{}{
		"state": "frozen",
	})
	testutil.SetURLParam(c, "id", "3")

	h.UpdateMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberHandler_DeleteMember(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, _ := testutil.NewTestContext(http.MethodDelete, "/members/3", nil)
	testutil.SetURLParam(c, "id", "3")

	h.DeleteMember(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

// =====================================================================
// AdjustBalance / AdjustPoints
// =====================================================================

func TestMemberHandler_AdjustBalance(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.adjust.result = &memberdto.MemberDTO{ID: 3}

	c, w := testutil.NewTestContext(http.MethodPost, "/members/3/balance", map[string]interface{}{
		"delta": -20.5,
	})
	testutil.SetURLParam(c, "id", "3")

	h.AdjustBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "-20.5", mocks.adjust.balanceDelta.String())
}

func TestMemberHandler_AdjustBalance_Insufficient(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.adjust.err = errors.NewInvalidStateError("余额不足")

	c, w := testutil.NewTestContext(http.MethodPost, "/members/3/balance", map[string]interface{}{
		"delta": "-1000",
	})
	testutil.SetURLParam(c, "id", "3")

	h.AdjustBalance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, string(errors.ErrorTypeInvalidState), resp.Error.Type)
}

func TestMemberHandler_AdjustPoints_ZeroRejected(t *testing.T) {
	h, _ := newTestMemberHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/members/3/points", map[string]interface{}{
		"delta": 0,
	})
	testutil.SetURLParam(c, "id", "3")

	h.AdjustPoints(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberHandler_AdjustPoints(t *testing.T) {
	h, mocks := newTestMemberHandler()
	mocks.adjust.result = &memberdto.MemberDTO{ID: 3, Points: 15}

	c, w := testutil.NewTestContext(http.MethodPost, "/members/3/points", map[string]interface{}{
		"delta": 15,
	})
	testutil.SetURLParam(c, "id", "3")

	h.AdjustPoints(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 15, mocks.adjust.pointsDelta)
}

package recharge

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

// --- helpers ---

var testNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newRecharge(t *testing.T, totalTimes *int, end time.Time) *Recharge {
	t.Helper()
	r, err := NewRecharge(NewRechargeParams{
		MemberID:       1,
		RechargeAmount: dec("100"),
		TotalTimes:     totalTimes,
		StartDate:      day(2024, 1, 1),
		EndDate:        end,
		RechargeAt:     day(2024, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, r.SetID(7))
	r.PrepareForSave(testNow)
	return r
}

// =====================================================================
// NewRecharge
// =====================================================================

func TestNewRecharge_TotalsAndDefaults(t *testing.T) {
	r, err := NewRecharge(NewRechargeParams{
		MemberID:       1,
		RechargeAmount: dec("1000"),
		BonusAmount:    dec("100"),
		TotalAmount:    dec("1"),
		StartDate:      day(2024, 1, 1),
		EndDate:        day(2024, 1, 31),
		RechargeAt:     day(2024, 1, 1),
	})
	require.NoError(t, err)
	r.PrepareForSave(testNow)

	assert.True(t, decimal.RequireFromString("1100").Equal(r.TotalAmount()), "explicit total ignored when components are sent")
	assert.True(t, r.TotalAmount().Equal(r.RemainingAmount()))
	assert.Equal(t, 0, r.UsedTimes())
	assert.Nil(t, r.RemainingTimes())
	assert.Equal(t, vo.TypeBalance, r.Type())
	assert.Equal(t, vo.StateActive, r.State())
	assert.Equal(t, day(2024, 1, 31), *r.EndDate())
}

func TestNewRecharge_ExplicitTotalWithoutComponents(t *testing.T) {
	r, err := NewRecharge(NewRechargeParams{
		MemberID:    1,
		TotalAmount: dec("88.50"),
		StartDate:   day(2024, 1, 1),
		EndDate:     day(2025, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "88.5", r.TotalAmount().String())
	assert.True(t, decimal.Zero.Equal(r.RechargeAmount()))
}

func TestNewRecharge_TimesDefaulting(t *testing.T) {
	ten := 10
	packID := uint(3)
	r, err := NewRecharge(NewRechargeParams{
		MemberID:   1,
		PackID:     &packID,
		TotalTimes: &ten,
		StartDate:  day(2024, 1, 1),
		EndDate:    day(2024, 6, 1),
	})
	require.NoError(t, err)
	require.NotNil(t, r.RemainingTimes())
	assert.Equal(t, 10, *r.RemainingTimes())
	assert.Equal(t, vo.TypePackage, r.Type())
}

func TestNewRecharge_Validation(t *testing.T) {
	_, err := NewRecharge(NewRechargeParams{StartDate: day(2024, 1, 1), EndDate: day(2024, 2, 1)})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewRecharge(NewRechargeParams{MemberID: 1, StartDate: day(2024, 2, 1), EndDate: day(2024, 1, 1)})
	assert.True(t, errors.IsValidationError(err))

	_, err = NewRecharge(NewRechargeParams{MemberID: 1, RechargeAmount: dec("-1"), StartDate: day(2024, 1, 1), EndDate: day(2024, 2, 1)})
	assert.True(t, errors.IsValidationError(err))
}

// =====================================================================
// Reconstruct
// =====================================================================

func TestReconstructRecharge_DerivesStaleStateInMemory(t *testing.T) {
	end := day(2023, 12, 31)
	five := 5
	r, err := ReconstructRecharge(ReconstructParams{
		ID:             9,
		MemberID:       1,
		RemainingTimes: &five,
		EndDate:        &end,
		State:          vo.StateActive,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, vo.StateExpired, r.State())
	assert.True(t, r.StateDirty())

	changed, err := r.EnsureConsumable(testNow)
	assert.True(t, changed, "derived expiry still needs persisting")
	assert.True(t, errors.IsInvalidStateError(err))

	r.PrepareForSave(testNow)
	assert.False(t, r.StateDirty())

	_, err = ReconstructRecharge(ReconstructParams{}, testNow)
	assert.Error(t, err)
}

// =====================================================================
// EnsureConsumable
// =====================================================================

func TestEnsureConsumable(t *testing.T) {
	t.Run("active passes", func(t *testing.T) {
		r := newRecharge(t, intPtr(3), day(2024, 6, 1))
		changed, err := r.EnsureConsumable(testNow)
		assert.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("disabled cites the disable even when times remain", func(t *testing.T) {
		r := newRecharge(t, intPtr(5), day(2024, 6, 1))
		r.SetState(vo.StateDisabled)
		r.PrepareForSave(testNow)
		require.Equal(t, vo.StateDisabled, r.State())

		changed, err := r.EnsureConsumable(testNow)
		assert.False(t, changed)
		require.Error(t, err)
		assert.Equal(t, "充值记录已被禁用，无法消费", errors.GetAppError(err).Message)
	})

	t.Run("expired flips state", func(t *testing.T) {
		r := newRecharge(t, intPtr(5), day(2024, 6, 1))
		changed, err := r.EnsureConsumable(day(2024, 7, 1))
		assert.True(t, changed)
		assert.True(t, errors.IsInvalidStateError(err))
		assert.Equal(t, "充值记录已过期，无法消费", errors.GetAppError(err).Message)
		assert.Equal(t, vo.StateExpired, r.State())
	})

	t.Run("exhausted flips state", func(t *testing.T) {
		r := newRecharge(t, intPtr(1), day(2024, 6, 1))
		r.ApplyUsage(testNow)
		// state already derived to completed, so nothing new to persist
		changed, err := r.EnsureConsumable(testNow)
		assert.False(t, changed)
		assert.True(t, errors.IsInvalidStateError(err))
		assert.Contains(t, errors.GetAppError(err).Message, "剩余次数不足")
		assert.Equal(t, vo.StateCompleted, r.State())
	})

	t.Run("untracked times never exhaust", func(t *testing.T) {
		r := newRecharge(t, nil, day(2024, 6, 1))
		_, err := r.EnsureConsumable(testNow)
		assert.NoError(t, err)
	})
}

// =====================================================================
// Usage and reconciliation
// =====================================================================

func TestApplyUsage_RunsDownToCompleted(t *testing.T) {
	r := newRecharge(t, intPtr(10), day(2024, 6, 1))

	for i := 0; i < 10; i++ {
		require.NoError(t, func() error { _, err := r.EnsureConsumable(testNow); return err }())
		r.ApplyUsage(testNow)
	}

	assert.Equal(t, 10, r.UsedTimes())
	assert.Equal(t, 0, *r.RemainingTimes())
	assert.Equal(t, vo.StateCompleted, r.State())

	r.ApplyUsage(testNow)
	assert.Equal(t, 0, *r.RemainingTimes(), "remaining clamps at zero")
}

func TestApplyUsage_UntrackedTimes(t *testing.T) {
	r := newRecharge(t, nil, day(2024, 6, 1))
	r.ApplyUsage(testNow)
	assert.Equal(t, 1, r.UsedTimes())
	assert.Nil(t, r.RemainingTimes())
	assert.Equal(t, vo.StateActive, r.State())
}

func TestReconcile(t *testing.T) {
	r := newRecharge(t, intPtr(10), day(2024, 6, 1))
	r.ApplyUsage(testNow)

	assert.False(t, r.CountersMatch(4))
	r.Reconcile(4, testNow)
	assert.Equal(t, 4, r.UsedTimes())
	assert.Equal(t, 6, *r.RemainingTimes())
	assert.True(t, r.CountersMatch(4))

	r.Reconcile(12, testNow)
	assert.Equal(t, 0, *r.RemainingTimes())
	assert.Equal(t, vo.StateCompleted, r.State())
}

func TestReconcile_KeepsDisabled(t *testing.T) {
	r := newRecharge(t, intPtr(10), day(2024, 6, 1))
	r.SetState(vo.StateDisabled)
	r.Reconcile(0, testNow)
	assert.Equal(t, vo.StateDisabled, r.State())
}

func TestExpectedCounters(t *testing.T) {
	used, remaining := ExpectedCounters(nil, 3)
	assert.Equal(t, 3, used)
	assert.Nil(t, remaining)

	used, remaining = ExpectedCounters(intPtr(2), 5)
	assert.Equal(t, 5, used)
	assert.Equal(t, 0, *remaining)
}

// =====================================================================
// Direct debits
// =====================================================================

func TestCheckAmountDebit(t *testing.T) {
	r := newRecharge(t, nil, day(2024, 6, 1))
	require.NoError(t, r.SetRemainingAmount(decimal.NewFromInt(50)))

	err := r.CheckAmountDebit(decimal.NewFromInt(100))
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Equal(t, "余额不足", errors.GetAppError(err).Message)
	assert.True(t, decimal.NewFromInt(50).Equal(r.RemainingAmount()))

	assert.True(t, errors.IsValidationError(r.CheckAmountDebit(decimal.Zero)))
	assert.NoError(t, r.CheckAmountDebit(decimal.NewFromInt(50)))
}

func TestCheckTimesDebit(t *testing.T) {
	r := newRecharge(t, intPtr(2), day(2024, 6, 1))
	assert.NoError(t, r.CheckTimesDebit(2))
	assert.Equal(t, "剩余次数不足", errors.GetAppError(r.CheckTimesDebit(3)).Message)

	untracked := newRecharge(t, nil, day(2024, 6, 1))
	assert.True(t, errors.IsInvalidStateError(untracked.CheckTimesDebit(1)))
}

// =====================================================================
// Administrative edits
// =====================================================================

func TestUpdateAmounts_RecomputesTotal(t *testing.T) {
	r := newRecharge(t, nil, day(2024, 6, 1))
	require.NoError(t, r.UpdateAmounts(nil, dec("20")))
	assert.Equal(t, "120", r.TotalAmount().String())
}

func TestUpdateCounters_RecomputesRemaining(t *testing.T) {
	r := newRecharge(t, intPtr(10), day(2024, 6, 1))
	require.NoError(t, r.UpdateCounters(nil, intPtr(4)))
	assert.Equal(t, 6, *r.RemainingTimes())

	require.NoError(t, r.UpdateCounters(intPtr(3), nil))
	assert.Equal(t, 0, *r.RemainingTimes())

	assert.Error(t, r.UpdateCounters(intPtr(-1), nil))
}

func TestSetState_ReenableDerives(t *testing.T) {
	r := newRecharge(t, intPtr(1), day(2024, 6, 1))
	r.SetState(vo.StateDisabled)
	r.PrepareForSave(testNow)
	assert.Equal(t, vo.StateDisabled, r.State())

	r.SetState(vo.StateActive)
	r.PrepareForSave(day(2024, 7, 1))
	assert.Equal(t, vo.StateExpired, r.State())
}

func TestEnsureConsumable_ValidThroughEndDate(t *testing.T) {
	r := newRecharge(t, intPtr(5), day(2024, 1, 31))

	// 10:00 Asia/Shanghai on the end date
	changed, err := r.EnsureConsumable(time.Date(2024, 1, 31, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, vo.StateActive, r.State())

	// 23:59 local is still the end date
	_, err = r.EnsureConsumable(time.Date(2024, 1, 31, 15, 59, 0, 0, time.UTC))
	assert.NoError(t, err)

	// 00:30 local the next day
	changed, err = r.EnsureConsumable(time.Date(2024, 1, 31, 16, 30, 0, 0, time.UTC))
	assert.True(t, changed)
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Equal(t, vo.StateExpired, r.State())
}

package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/memberhub/internal/domain/consumption"
	"github.com/orris-inc/memberhub/internal/domain/member"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	packvo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/recharge"
	rechargevo "github.com/orris-inc/memberhub/internal/domain/recharge/valueobjects"
	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/infrastructure/database/testdb"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/memberhub/internal/infrastructure/persistence/models"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/shared/db"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/id"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

var testNow = time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.AccountingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.AccountingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type fixture struct {
	gdb             *gorm.DB
	clock           *testClock
	rechargeRepo    recharge.Repository
	consumptionRepo consumption.Repository
	memberRepo      member.Repository
	packRepo        pack.Repository
	txManager       *db.TransactionManager
	counters        *RechargeCounters
	publisher       *recordingPublisher
	log             logger.Interface
}

func newFixture(t *testing.T) *fixture {
	gdb := testdb.Open(t)
	log := logger.NewNopLogger()
	clock := &testClock{now: testNow}
	rechargeRepo := repository.NewRechargeRepositoryWithMapper(gdb, mappers.NewRechargeMapperWithClock(clock.Now), log)
	consumptionRepo := repository.NewConsumptionRepository(gdb, log)

	counters := NewRechargeCounters(rechargeRepo, consumptionRepo, log)
	counters.now = clock.Now

	return &fixture{
		gdb:             gdb,
		clock:           clock,
		rechargeRepo:    rechargeRepo,
		consumptionRepo: consumptionRepo,
		memberRepo:      repository.NewMemberRepository(gdb, log),
		packRepo:        repository.NewPackRepository(gdb, log),
		txManager:       db.NewTransactionManager(gdb),
		counters:        counters,
		publisher:       &recordingPublisher{},
		log:             log,
	}
}

func (f *fixture) createUseCase() *CreateConsumptionUseCase {
	uc := NewCreateConsumptionUseCase(f.consumptionRepo, f.rechargeRepo, f.memberRepo, f.publisher, f.log)
	uc.now = f.clock.Now
	return uc
}

func (f *fixture) updateUseCase() *UpdateConsumptionUseCase {
	uc := NewUpdateConsumptionUseCase(f.consumptionRepo, f.rechargeRepo, f.counters, f.txManager, f.log)
	uc.now = f.clock.Now
	return uc
}

func (f *fixture) resetUseCase() *ResetRechargeTimesUseCase {
	uc := NewResetRechargeTimesUseCase(f.rechargeRepo, f.counters, f.publisher, f.log)
	uc.now = f.clock.Now
	return uc
}

func (f *fixture) member(t *testing.T, phone string) uint {
	t.Helper()
	m, err := member.NewMember(member.NewMemberParams{Name: "李四", Phone: phone}, testNow)
	require.NoError(t, err)
	require.NoError(t, f.memberRepo.Create(context.Background(), m))
	return m.ID()
}

type rechargeOpts struct {
	totalTimes *int
	end        time.Time
	state      rechargevo.RechargeState
	packID     *uint
}

func (f *fixture) recharge(t *testing.T, memberID uint, opts rechargeOpts) *recharge.Recharge {
	t.Helper()
	amount := decimal.NewFromInt(100)
	r, err := recharge.NewRecharge(recharge.NewRechargeParams{
		MemberID:       memberID,
		PackID:         opts.packID,
		RechargeAmount: &amount,
		TotalTimes:     opts.totalTimes,
		StartDate:      day(2024, 1, 1),
		EndDate:        opts.end,
		RechargeAt:     day(2024, 1, 1),
		Seq:            id.NewSeq(),
		State:          opts.state,
	})
	require.NoError(t, err)
	r.PrepareForSave(f.clock.now)
	require.NoError(t, f.rechargeRepo.Create(context.Background(), r))
	return r
}

func (f *fixture) storedState(t *testing.T, rechargeID uint) string {
	t.Helper()
	var model models.RechargeModel
	require.NoError(t, f.gdb.First(&model, rechargeID).Error)
	return model.State
}

func (f *fixture) reload(t *testing.T, rechargeID uint) *recharge.Recharge {
	t.Helper()
	r, err := f.rechargeRepo.GetByID(context.Background(), rechargeID)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

func TestCreateConsumption_RunsRechargeDownToCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000001")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(10), end: day(2024, 6, 1)})

	uc := f.createUseCase()
	cmd := CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
	}
	for i := 0; i < 10; i++ {
		c, err := uc.Execute(ctx, cmd)
		require.NoError(t, err, "consumption %d", i+1)
		assert.Equal(t, "valid", c.State)
		assert.NotEmpty(t, c.Seq)
	}

	stored := f.reload(t, r.ID())
	assert.Equal(t, 10, stored.UsedTimes())
	assert.Equal(t, 0, *stored.RemainingTimes())
	assert.Equal(t, rechargevo.StateCompleted, stored.State())
	assert.Equal(t, "completed", f.storedState(t, r.ID()))

	_, err := uc.Execute(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Contains(t, errors.GetAppError(err).Message, "剩余次数不足")
	assert.Equal(t, "completed", f.storedState(t, r.ID()))
	assert.Equal(t, 10, f.publisher.count(events.EventTypeConsumptionCreated))
}

func TestCreateConsumption_FillsCustomerFromMember(t *testing.T) {
	f := newFixture(t)
	memberID := f.member(t, "13900000002")

	c, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		MemberID:     uintPtr(memberID),
		CustomerName: "前台登记",
		Amount:       decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "前台登记", c.CustomerName)
	assert.Equal(t, "13900000002", c.CustomerPhone)
	assert.Nil(t, c.RechargeID, "zero amount never auto-selects")
}

func TestCreateConsumption_MemberLookupIsBestEffort(t *testing.T) {
	f := newFixture(t)

	c, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		MemberID: uintPtr(404),
		Amount:   decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Empty(t, c.CustomerName)
	assert.Nil(t, c.RechargeID)
}

func TestCreateConsumption_ExpiredRechargeIsPersisted(t *testing.T) {
	f := newFixture(t)
	memberID := f.member(t, "13900000003")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 3, 10)})
	require.Equal(t, "active", f.storedState(t, r.ID()))

	f.clock.now = time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, rechargevo.StateExpired, f.reload(t, r.ID()).State(), "derived on load")
	assert.Equal(t, "active", f.storedState(t, r.ID()), "loading does not write")

	_, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateError(err))
	assert.Equal(t, "充值记录已过期，无法消费", errors.GetAppError(err).Message)
	assert.Equal(t, "expired", f.storedState(t, r.ID()))

	_, total, err := f.consumptionRepo.List(context.Background(), consumption.ListFilter{RechargeID: uintPtr(r.ID())})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateConsumption_DisabledRechargeCitesDisable(t *testing.T) {
	f := newFixture(t)
	memberID := f.member(t, "13900000004")
	r := f.recharge(t, memberID, rechargeOpts{
		totalTimes: intPtr(5),
		end:        day(2024, 12, 31),
		state:      rechargevo.StateDisabled,
	})
	assert.Equal(t, rechargevo.StateDisabled, f.reload(t, r.ID()).State())

	_, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, "充值记录已被禁用，无法消费", errors.GetAppError(err).Message)
	assert.Equal(t, "disabled", f.storedState(t, r.ID()))
	assert.Equal(t, 5, *f.reload(t, r.ID()).RemainingTimes())
}

func TestCreateConsumption_MissingLinkedRecharge(t *testing.T) {
	f := newFixture(t)

	_, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		RechargeID: uintPtr(999),
		Amount:     decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, "关联的充值记录不存在", errors.GetAppError(err).Message)
}

func TestCreateConsumption_AutoSelectsSoonestExpiring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000005")

	p, err := pack.NewPack(pack.NewPackParams{
		Name:        "五次卡",
		PackType:    packvo.TypeTimes,
		MemberPrice: decimal.NewFromInt(100),
		TotalTimes:  intPtr(5),
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, f.packRepo.Create(ctx, p))

	f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 6, 1)})
	soonest := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 4, 1), packID: uintPtr(p.ID())})
	f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 4, 1)})
	f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 3, 10), state: rechargevo.StateDisabled})
	f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 2, 1)})
	f.recharge(t, memberID, rechargeOpts{end: day(2024, 3, 5)})

	for i := 0; i < 2; i++ {
		picked, err := f.rechargeRepo.FindAutoSelectable(ctx, memberID, testNow)
		require.NoError(t, err)
		require.NotNil(t, picked)
		assert.Equal(t, soonest.ID(), picked.ID())
	}

	c, err := f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		MemberID: uintPtr(memberID),
		Amount:   decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	require.NotNil(t, c.RechargeID)
	assert.Equal(t, soonest.ID(), *c.RechargeID)
	require.NotNil(t, c.PackID)
	assert.Equal(t, p.ID(), *c.PackID)
	assert.Equal(t, 4, *f.reload(t, soonest.ID()).RemainingTimes())

	other := f.member(t, "13900000006")
	c, err = f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		MemberID: uintPtr(other),
		Amount:   decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Nil(t, c.RechargeID)
}

func TestCreateConsumption_CancelledDoesNotCount(t *testing.T) {
	f := newFixture(t)
	memberID := f.member(t, "13900000007")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 6, 1)})

	c, err := f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
		State:      "disabled",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", c.State)
	assert.Equal(t, 5, *f.reload(t, r.ID()).RemainingTimes())

	_, err = f.createUseCase().Execute(context.Background(), CreateConsumptionCommand{State: "bogus"})
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateConsumption_MovesUsageBetweenRecharges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000008")
	first := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 6, 1)})
	second := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(5), end: day(2024, 6, 1)})

	c, err := f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(first.ID()),
		Amount:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.reload(t, first.ID()).UsedTimes())

	uc := f.updateUseCase()
	updated, err := uc.Execute(ctx, UpdateConsumptionCommand{ID: c.ID, RechargeID: uintPtr(second.ID())})
	require.NoError(t, err)
	assert.Equal(t, second.ID(), *updated.RechargeID)

	assert.Equal(t, 0, f.reload(t, first.ID()).UsedTimes())
	assert.Equal(t, 5, *f.reload(t, first.ID()).RemainingTimes())
	assert.Equal(t, 1, f.reload(t, second.ID()).UsedTimes())
	assert.Equal(t, 4, *f.reload(t, second.ID()).RemainingTimes())

	_, err = uc.Execute(ctx, UpdateConsumptionCommand{ID: c.ID, State: strPtr("cancelled")})
	require.NoError(t, err)
	assert.Equal(t, 0, f.reload(t, second.ID()).UsedTimes())

	_, err = uc.Execute(ctx, UpdateConsumptionCommand{ID: c.ID, RechargeID: uintPtr(999)})
	assert.Equal(t, "关联的充值记录不存在", errors.GetAppError(err).Message)

	_, err = uc.Execute(ctx, UpdateConsumptionCommand{ID: 999})
	assert.Equal(t, "消费记录 ID 999 不存在", errors.GetAppError(err).Message)
}

func TestRemoveConsumption_GivesUseBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000009")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(2), end: day(2024, 6, 1)})

	create := f.createUseCase()
	var ids []uint
	for i := 0; i < 2; i++ {
		c, err := create.Execute(ctx, CreateConsumptionCommand{
			MemberID:   uintPtr(memberID),
			RechargeID: uintPtr(r.ID()),
			Amount:     decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	require.Equal(t, "completed", f.storedState(t, r.ID()))

	uc := NewRemoveConsumptionUseCase(f.consumptionRepo, f.counters, f.txManager, f.log)
	require.NoError(t, uc.Execute(ctx, ids[0]))

	stored := f.reload(t, r.ID())
	assert.Equal(t, 1, stored.UsedTimes())
	assert.Equal(t, 1, *stored.RemainingTimes())
	assert.Equal(t, "active", f.storedState(t, r.ID()))

	assert.True(t, errors.IsNotFoundError(uc.Execute(ctx, ids[0])))
}

func TestResetRechargeTimes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000010")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(10), end: day(2024, 6, 1)})
	untracked := f.recharge(t, memberID, rechargeOpts{end: day(2024, 6, 1)})

	create := f.createUseCase()
	for _, target := range []uint{r.ID(), r.ID(), r.ID(), untracked.ID()} {
		_, err := create.Execute(ctx, CreateConsumptionCommand{RechargeID: uintPtr(target), Amount: decimal.NewFromInt(5)})
		require.NoError(t, err)
	}

	// counters drift through a direct edit
	require.NoError(t, f.gdb.Model(&models.RechargeModel{}).Where("id = ?", r.ID()).
		Updates(map[string]interface{}{"used_times": 9, "remaining_times": 1}).Error)

	verify := NewVerifyRechargeTimesUseCase(f.rechargeRepo, f.counters, f.log)
	result, err := verify.Execute(ctx, r.ID())
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, 9, result.CurrentUsedTimes)
	assert.Equal(t, 3, result.ActualUsedTimes)
	assert.Equal(t, 7, *result.CalculatedRemainingTimes)
	assert.Equal(t, "次数统计错误: 已使用次数应为 3，剩余次数应为 7", result.Message)
	assert.Equal(t, 9, f.reload(t, r.ID()).UsedTimes(), "verify never writes")

	reset := f.resetUseCase()
	counters, err := reset.Reset(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, counters.UsedTimes)
	assert.Equal(t, 7, *counters.RemainingTimes)
	assert.Equal(t, "active", counters.State)

	result, err = verify.Execute(ctx, r.ID())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "次数统计正确", result.Message)

	result, err = verify.Execute(ctx, untracked.ID())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Nil(t, result.CalculatedRemainingTimes)

	_, err = reset.Reset(ctx, 999)
	assert.Equal(t, "充值记录 ID 999 不存在", errors.GetAppError(err).Message)
	_, err = verify.Execute(ctx, 999)
	assert.True(t, errors.IsNotFoundError(err))

	batch, err := reset.ResetBatch(ctx, []uint{r.ID(), 999, untracked.ID()})
	require.NoError(t, err)
	assert.Equal(t, 2, batch.UpdatedCount)
	assert.Equal(t, []uint{999}, batch.FailedIDs)
	require.Len(t, batch.Results, 3)
	assert.False(t, batch.Results[1].Success)
	assert.Equal(t, "充值记录 ID 999 不存在", batch.Results[1].Error)

	_, err = reset.ResetBatch(ctx, nil)
	assert.True(t, errors.IsValidationError(err))

	assert.Equal(t, 3, f.publisher.count(events.EventTypeRechargeCountersReset))
}

func TestResetAllRechargeTimes_WalksEveryBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000011")

	var ids []uint
	for i := 0; i < 5; i++ {
		r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(3), end: day(2024, 6, 1)})
		ids = append(ids, r.ID())
	}
	require.NoError(t, f.gdb.Model(&models.RechargeModel{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"used_times": 2, "remaining_times": 1}).Error)

	uc := f.resetUseCase()
	uc.SetBatchSize(2)
	result, err := uc.ResetAll(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 5, result.UpdatedCount)
	assert.Empty(t, result.FailedIDs)
	assert.Equal(t, "已重置 5 条充值记录的次数统计", result.Message)

	for _, rechargeID := range ids {
		stored := f.reload(t, rechargeID)
		assert.Equal(t, 0, stored.UsedTimes())
		assert.Equal(t, 3, *stored.RemainingTimes())
	}
}

func TestGetAndListConsumptions_Enriched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000012")

	p, err := pack.NewPack(pack.NewPackParams{
		Name:        "月卡",
		PackType:    packvo.TypeTimes,
		MemberPrice: decimal.NewFromInt(300),
		TotalTimes:  intPtr(4),
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, f.packRepo.Create(ctx, p))
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(4), end: day(2024, 6, 1), packID: uintPtr(p.ID())})

	create := f.createUseCase()
	for _, amount := range []int64{10, 30} {
		_, err := create.Execute(ctx, CreateConsumptionCommand{
			MemberID:   uintPtr(memberID),
			RechargeID: uintPtr(r.ID()),
			PackID:     uintPtr(p.ID()),
			Amount:     decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
	}
	walkIn, err := create.Execute(ctx, CreateConsumptionCommand{CustomerName: "散客", Amount: decimal.NewFromInt(60)})
	require.NoError(t, err)

	list := NewListConsumptionsUseCase(f.consumptionRepo, f.rechargeRepo, f.packRepo, f.log)
	result, err := list.Execute(ctx, ListConsumptionsQuery{RechargeID: uintPtr(r.ID()), SortBy: "amount", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
	require.Len(t, result.Consumptions, 2)
	first := result.Consumptions[0]
	assert.Equal(t, "10", first.Amount.String())
	assert.Equal(t, "月卡", *first.PackageName)
	assert.Equal(t, "times", *first.PackageType)
	require.NotNil(t, first.RechargeInfo)
	assert.Equal(t, 2, first.RechargeInfo.UsedTimes)
	assert.Equal(t, 2, *first.RechargeInfo.RemainingTimes)

	_, err = list.Execute(ctx, ListConsumptionsQuery{State: "nope"})
	assert.True(t, errors.IsValidationError(err))

	got, err := NewGetConsumptionUseCase(f.consumptionRepo, f.rechargeRepo, f.packRepo, f.log).Execute(ctx, walkIn.ID)
	require.NoError(t, err)
	assert.Equal(t, "散客", got.CustomerName)
	assert.Nil(t, got.PackageName)
	assert.Nil(t, got.RechargeInfo)

	_, err = NewGetConsumptionUseCase(f.consumptionRepo, f.rechargeRepo, f.packRepo, f.log).Execute(ctx, 999)
	assert.True(t, errors.IsNotFoundError(err))

	stats, err := NewGetConsumptionStatisticsUseCase(f.consumptionRepo, f.log).Execute(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "100", stats.TotalAmount.String())
	assert.EqualValues(t, 3, stats.TotalCount)
	assert.Equal(t, "33.33", stats.AverageAmount.String())
}

func TestCreateConsumption_RechargeUsableOnItsEndDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000020")

	// testNow is 10:00 Asia/Shanghai on 2024-03-01
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(3), end: day(2024, 3, 1)})
	assert.Equal(t, rechargevo.StateActive, f.reload(t, r.ID()).State())

	c, err := f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		MemberID:   uintPtr(memberID),
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, r.ID(), *c.RechargeID)

	c, err = f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		MemberID: uintPtr(memberID),
		Amount:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.NotNil(t, c.RechargeID, "auto-selection keeps the record on its end date")
	assert.Equal(t, r.ID(), *c.RechargeID)
	assert.Equal(t, 1, *f.reload(t, r.ID()).RemainingTimes())
	assert.Equal(t, "active", f.storedState(t, r.ID()))

	f.clock.now = time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC)
	_, err = f.createUseCase().Execute(ctx, CreateConsumptionCommand{
		RechargeID: uintPtr(r.ID()),
		Amount:     decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, "充值记录已过期，无法消费", errors.GetAppError(err).Message)
}

func TestVerifyAndResetRechargeTimes_AreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := f.member(t, "13900000021")
	r := f.recharge(t, memberID, rechargeOpts{totalTimes: intPtr(8), end: day(2024, 6, 1)})

	create := f.createUseCase()
	for i := 0; i < 2; i++ {
		_, err := create.Execute(ctx, CreateConsumptionCommand{RechargeID: uintPtr(r.ID()), Amount: decimal.NewFromInt(5)})
		require.NoError(t, err)
	}
	require.NoError(t, f.gdb.Model(&models.RechargeModel{}).Where("id = ?", r.ID()).
		Updates(map[string]interface{}{"used_times": 7, "remaining_times": 1}).Error)

	verify := NewVerifyRechargeTimesUseCase(f.rechargeRepo, f.counters, f.log)
	first, err := verify.Execute(ctx, r.ID())
	require.NoError(t, err)
	second, err := verify.Execute(ctx, r.ID())
	require.NoError(t, err)
	assert.False(t, first.IsCorrect)
	assert.Equal(t, first.IsCorrect, second.IsCorrect)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, 7, f.reload(t, r.ID()).UsedTimes())

	reset := f.resetUseCase()
	once, err := reset.Reset(ctx, r.ID())
	require.NoError(t, err)
	afterOnce := f.reload(t, r.ID())

	twice, err := reset.Reset(ctx, r.ID())
	require.NoError(t, err)
	afterTwice := f.reload(t, r.ID())

	assert.Equal(t, once.UsedTimes, twice.UsedTimes)
	assert.Equal(t, *once.RemainingTimes, *twice.RemainingTimes)
	assert.Equal(t, once.State, twice.State)
	assert.Equal(t, 2, afterTwice.UsedTimes())
	assert.Equal(t, afterOnce.UsedTimes(), afterTwice.UsedTimes())
	assert.Equal(t, *afterOnce.RemainingTimes(), *afterTwice.RemainingTimes())
	assert.Equal(t, afterOnce.State(), afterTwice.State())
	assert.Equal(t, f.storedState(t, r.ID()), string(afterTwice.State()))

	result, err := verify.Execute(ctx, r.ID())
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

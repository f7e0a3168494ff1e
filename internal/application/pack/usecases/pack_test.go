package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/domain/pack"
	"github.com/orris-inc/memberhub/internal/infrastructure/database/testdb"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/services/markdown"
)

type fakeSalesCounter struct {
	counts map[uint]int64
}

func (f *fakeSalesCounter) CountByPack(_ context.Context, packID uint) (int64, error) {
	return f.counts[packID], nil
}

func newPackRepo(t *testing.T) pack.Repository {
	return repository.NewPackRepository(testdb.Open(t), logger.NewNopLogger())
}

func intPtr(v int) *int { return &v }

func TestCreateAndGetPack(t *testing.T) {
	repo := newPackRepo(t)
	create := NewCreatePackUseCase(repo, logger.NewNopLogger())

	created, err := create.Execute(context.Background(), CreatePackCommand{
		Name:        "十次卡",
		Description: "**超值** <script>alert(1)</script>",
		MemberPrice: decimal.NewFromInt(199),
		TotalTimes:  intPtr(10),
		ValidDay:    90,
	})
	require.NoError(t, err)
	assert.Equal(t, "times", created.PackType)
	assert.Equal(t, "active", created.State)
	assert.Empty(t, created.DescriptionHTML)

	got, err := NewGetPackUseCase(repo, markdown.NewRenderer(), logger.NewNopLogger()).
		Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Contains(t, got.DescriptionHTML, "<strong>超值</strong>")
	assert.NotContains(t, got.DescriptionHTML, "<script>")
	assert.Equal(t, 10, *got.TotalTimes)
}

func TestCreatePackUseCase_Validation(t *testing.T) {
	uc := NewCreatePackUseCase(newPackRepo(t), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreatePackCommand{Name: "x", PackType: "weird"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreatePackCommand{Name: ""})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreatePackCommand{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.True(t, errors.IsValidationError(err))
}

func TestListPacksUseCase_OrdersByPosition(t *testing.T) {
	repo := newPackRepo(t)
	create := NewCreatePackUseCase(repo, logger.NewNopLogger())
	for _, cmd := range []CreatePackCommand{
		{Name: "B", Position: 2, PackType: "normal"},
		{Name: "A", Position: 1, PackType: "times"},
		{Name: "C", Position: 3, PackType: "times", State: "inactive"},
	} {
		_, err := create.Execute(context.Background(), cmd)
		require.NoError(t, err)
	}

	uc := NewListPacksUseCase(repo, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListPacksQuery{})
	require.NoError(t, err)
	require.Len(t, result.Packs, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{result.Packs[0].Name, result.Packs[1].Name, result.Packs[2].Name})

	result, err = uc.Execute(context.Background(), ListPacksQuery{PackType: "times", State: "active"})
	require.NoError(t, err)
	require.Len(t, result.Packs, 1)
	assert.Equal(t, "A", result.Packs[0].Name)
}

func TestUpdatePackUseCase(t *testing.T) {
	repo := newPackRepo(t)
	created, err := NewCreatePackUseCase(repo, logger.NewNopLogger()).
		Execute(context.Background(), CreatePackCommand{Name: "A"})
	require.NoError(t, err)

	uc := NewUpdatePackUseCase(repo, logger.NewNopLogger())
	name := "A+"
	normal := "normal"
	updated, err := uc.Execute(context.Background(), UpdatePackCommand{ID: created.ID, Name: &name, PackType: &normal})
	require.NoError(t, err)
	assert.Equal(t, "A+", updated.Name)
	assert.Equal(t, "normal", updated.PackType)

	_, err = uc.Execute(context.Background(), UpdatePackCommand{ID: 404, Name: &name})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRecountSalesAndDelete(t *testing.T) {
	repo := newPackRepo(t)
	created, err := NewCreatePackUseCase(repo, logger.NewNopLogger()).
		Execute(context.Background(), CreatePackCommand{Name: "A"})
	require.NoError(t, err)

	counter := &fakeSalesCounter{counts: map[uint]int64{created.ID: 4}}
	count, err := NewRecountSalesUseCase(repo, counter, logger.NewNopLogger()).Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	reloaded, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.SalesCount())

	del := NewDeletePackUseCase(repo, logger.NewNopLogger())
	require.NoError(t, del.Execute(context.Background(), created.ID))
	assert.True(t, errors.IsNotFoundError(del.Execute(context.Background(), created.ID)))
}

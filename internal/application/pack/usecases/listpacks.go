package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/memberhub/internal/application/pack/dto"
	"github.com/orris-inc/memberhub/internal/domain/pack"
	vo "github.com/orris-inc/memberhub/internal/domain/pack/valueobjects"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/query"
)

type ListPacksQuery struct {
	Search    string
	PackType  string
	Category  string
	State     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListPacksResult struct {
	Packs    []*dto.PackDTO
	Total    int64
	Page     int
	PageSize int
}

type ListPacksUseCase struct {
	packRepo pack.Repository
	logger   logger.Interface
}

func NewListPacksUseCase(packRepo pack.Repository, logger logger.Interface) *ListPacksUseCase {
	return &ListPacksUseCase{
		packRepo: packRepo,
		logger:   logger,
	}
}

func (uc *ListPacksUseCase) Execute(ctx context.Context, q ListPacksQuery) (*ListPacksResult, error) {
	filter := pack.ListFilter{
		Search:   q.Search,
		Category: q.Category,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		BaseFilter: query.BaseFilter{
			PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
			SortFilter: query.SortFilter{SortBy: q.SortBy, SortOrder: q.SortOrder},
		},
	}
	if q.PackType != "" {
		packType, err := vo.ParsePackType(q.PackType)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.PackType = &packType
	}
	if q.State != "" {
		state, err := vo.ParsePackState(q.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = &state
	}

	packs, total, err := uc.packRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list packs", "error", err)
		return nil, err
	}

	return &ListPacksResult{
		Packs:    dto.ToPackDTOList(packs),
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	statsdto "github.com/orris-inc/memberhub/internal/application/stats/dto"
	statsUsecases "github.com/orris-inc/memberhub/internal/application/stats/usecases"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

type getRechargeStatsUseCase interface {
	Execute(ctx context.Context, q statsUsecases.StatsQuery) (*statsdto.RechargeStatsDTO, error)
}

type getMemberStatsUseCase interface {
	Execute(ctx context.Context, q statsUsecases.StatsQuery) (*statsdto.MemberStatsDTO, error)
}

type StatsHandler struct {
	rechargeStatsUC getRechargeStatsUseCase
	memberStatsUC   getMemberStatsUseCase
}

func NewStatsHandler(rechargeStatsUC getRechargeStatsUseCase, memberStatsUC getMemberStatsUseCase) *StatsHandler {
	return &StatsHandler{
		rechargeStatsUC: rechargeStatsUC,
		memberStatsUC:   memberStatsUC,
	}
}

func statsQueryFrom(c *gin.Context) statsUsecases.StatsQuery {
	return statsUsecases.StatsQuery{
		Period:    c.Query("period"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

func (h *StatsHandler) RechargeStats(c *gin.Context) {
	result, err := h.rechargeStatsUC.Execute(c.Request.Context(), statsQueryFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *StatsHandler) MemberStats(c *gin.Context) {
	result, err := h.memberStatsUC.Execute(c.Request.Context(), statsQueryFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

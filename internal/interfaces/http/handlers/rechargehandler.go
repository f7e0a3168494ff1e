package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	rechargeUsecases "github.com/orris-inc/memberhub/internal/application/recharge/usecases"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

type RechargeHandler struct {
	createRechargeUC  createRechargeUseCase
	getRechargeUC     getRechargeUseCase
	listRechargesUC   listRechargesUseCase
	getStatisticsUC   getRechargeStatisticsUseCase
	updateRechargeUC  updateRechargeUseCase
	removeRechargeUC  removeRechargeUseCase
	consumeRechargeUC consumeRechargeUseCase
	logger            logger.Interface
}

func NewRechargeHandler(
	createRechargeUC createRechargeUseCase,
	getRechargeUC getRechargeUseCase,
	listRechargesUC listRechargesUseCase,
	getStatisticsUC getRechargeStatisticsUseCase,
	updateRechargeUC updateRechargeUseCase,
	removeRechargeUC removeRechargeUseCase,
	consumeRechargeUC consumeRechargeUseCase,
	logger logger.Interface,
) *RechargeHandler {
	return &RechargeHandler{
		createRechargeUC:  createRechargeUC,
		getRechargeUC:     getRechargeUC,
		listRechargesUC:   listRechargesUC,
		getStatisticsUC:   getStatisticsUC,
		updateRechargeUC:  updateRechargeUC,
		removeRechargeUC:  removeRechargeUC,
		consumeRechargeUC: consumeRechargeUC,
		logger:            logger,
	}
}

type CreateRechargeRequest struct {
	MemberID        uint                   `json:"memberId" binding:"required"`
	PackID          *uint                  `json:"packId"`
	PackageName     string                 `json:"packageName" binding:"max=128"`
	Type            string                 `json:"type"`
	RechargeAmount  *decimal.Decimal       `json:"rechargeAmount"`
	BonusAmount     *decimal.Decimal       `json:"bonusAmount"`
	TotalAmount     *decimal.Decimal       `json:"totalAmount"`
	RemainingAmount *decimal.Decimal       `json:"remainingAmount"`
	TotalTimes      *int                   `json:"totalTimes" binding:"omitempty,min=0"`
	UsedTimes       *int                   `json:"usedTimes" binding:"omitempty,min=0"`
	RemainingTimes  *int                   `json:"remainingTimes" binding:"omitempty,min=0"`
	ValidityDays    *int                   `json:"validityDays" binding:"omitempty,min=0"`
	PaymentType     string                 `json:"paymentType" binding:"max=32"`
	Seq             string                 `json:"seq" binding:"max=64"`
	State           string                 `json:"state"`
	RechargeAt      *string                `json:"rechargeAt"`
	OperatorID      *uint                  `json:"operatorId"`
	Remark          string                 `json:"remark" binding:"max=500"`
	Payload         map[string]interface{} `json:"payload"`
}

type UpdateRechargeRequest struct {
	PackageName     *string                `json:"packageName" binding:"omitempty,max=128"`
	RechargeAmount  *decimal.Decimal       `json:"rechargeAmount"`
	BonusAmount     *decimal.Decimal       `json:"bonusAmount"`
	RemainingAmount *decimal.Decimal       `json:"remainingAmount"`
	TotalTimes      *int                   `json:"totalTimes" binding:"omitempty,min=0"`
	UsedTimes       *int                   `json:"usedTimes" binding:"omitempty,min=0"`
	StartDate       *string                `json:"startDate"`
	EndDate         *string                `json:"endDate"`
	PaymentType     *string                `json:"paymentType" binding:"omitempty,max=32"`
	State           *string                `json:"state"`
	OperatorID      *uint                  `json:"operatorId"`
	Remark          *string                `json:"remark" binding:"omitempty,max=500"`
	Payload         map[string]interface{} `json:"payload"`
}

type ConsumeAmountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

type ConsumeTimesRequest struct {
	Times int `json:"times" binding:"required,min=1"`
}

func (h *RechargeHandler) CreateRecharge(c *gin.Context) {
	var req CreateRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create recharge", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	rechargeAt, err := utils.ParseOptionalTime("rechargeAt", req.RechargeAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := rechargeUsecases.CreateRechargeCommand{
		MemberID:        req.MemberID,
		PackID:          req.PackID,
		PackageName:     req.PackageName,
		Type:            req.Type,
		RechargeAmount:  req.RechargeAmount,
		BonusAmount:     req.BonusAmount,
		TotalAmount:     req.TotalAmount,
		RemainingAmount: req.RemainingAmount,
		TotalTimes:      req.TotalTimes,
		UsedTimes:       req.UsedTimes,
		RemainingTimes:  req.RemainingTimes,
		ValidityDays:    req.ValidityDays,
		PaymentType:     req.PaymentType,
		Seq:             req.Seq,
		State:           req.State,
		RechargeAt:      rechargeAt,
		OperatorID:      operatorOrCaller(c, req.OperatorID),
		Remark:          req.Remark,
		Payload:         req.Payload,
	}

	result, err := h.createRechargeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Recharge created successfully")
}

func (h *RechargeHandler) GetRecharge(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "id", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getRechargeUC.Execute(c.Request.Context(), rechargeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *RechargeHandler) ListRecharges(c *gin.Context) {
	p := utils.ParsePagination(c)

	memberID, err := utils.QueryUint(c, "memberId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	packID, err := utils.QueryUint(c, "packId")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := rechargeUsecases.ListRechargesQuery{
		Search:   c.Query("search"),
		MemberID: memberID,
		PackID:   packID,
		State:    c.Query("state"),
		Page:     p.Page,
		PageSize: p.PageSize,
	}

	result, err := h.listRechargesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Recharges, result.Total, result.Page, result.PageSize)
}

func (h *RechargeHandler) GetStatistics(c *gin.Context) {
	from, err := utils.QueryTime(c, "startDate", false)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	to, err := utils.QueryTime(c, "endDate", true)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getStatisticsUC.Execute(c.Request.Context(), from, to)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *RechargeHandler) UpdateRecharge(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "id", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update recharge",
			"recharge_id", rechargeID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	startDate, err := utils.ParseOptionalDate("startDate", req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	endDate, err := utils.ParseOptionalDate("endDate", req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := rechargeUsecases.UpdateRechargeCommand{
		ID:              rechargeID,
		PackageName:     req.PackageName,
		RechargeAmount:  req.RechargeAmount,
		BonusAmount:     req.BonusAmount,
		RemainingAmount: req.RemainingAmount,
		TotalTimes:      req.TotalTimes,
		UsedTimes:       req.UsedTimes,
		StartDate:       startDate,
		EndDate:         endDate,
		PaymentType:     req.PaymentType,
		State:           req.State,
		OperatorID:      req.OperatorID,
		Remark:          req.Remark,
		Payload:         req.Payload,
	}

	result, err := h.updateRechargeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Recharge updated successfully", result)
}

func (h *RechargeHandler) RemoveRecharge(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "id", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeRechargeUC.Execute(c.Request.Context(), rechargeID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *RechargeHandler) ConsumeAmount(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "id", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConsumeAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for consume amount", "recharge_id", rechargeID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.consumeRechargeUC.ConsumeAmount(c.Request.Context(), rechargeID, *req.Amount)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Amount consumed successfully", result)
}

func (h *RechargeHandler) ConsumeTimes(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "id", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConsumeTimesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for consume times", "recharge_id", rechargeID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.consumeRechargeUC.ConsumeTimes(c.Request.Context(), rechargeID, req.Times)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Times consumed successfully", result)
}

// operatorOrCaller defaults a missing operatorId to the authenticated operator.
func operatorOrCaller(c *gin.Context, requested *uint) *uint {
	if requested != nil {
		return requested
	}
	if id, ok := utils.GetOperatorID(c); ok {
		return &id
	}
	return nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	consumptionUsecases "github.com/orris-inc/memberhub/internal/application/consumption/usecases"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

// ConsumptionHandler serves consumption records and the recharge counter
// maintenance endpoints that live under /consumptions.
type ConsumptionHandler struct {
	createConsumptionUC   createConsumptionUseCase
	getConsumptionUC      getConsumptionUseCase
	listConsumptionsUC    listConsumptionsUseCase
	getStatisticsUC       getConsumptionStatisticsUseCase
	updateConsumptionUC   updateConsumptionUseCase
	removeConsumptionUC   removeConsumptionUseCase
	resetRechargeTimesUC  resetRechargeTimesUseCase
	verifyRechargeTimesUC verifyRechargeTimesUseCase
	logger                logger.Interface
}

func NewConsumptionHandler(
	createConsumptionUC createConsumptionUseCase,
	getConsumptionUC getConsumptionUseCase,
	listConsumptionsUC listConsumptionsUseCase,
	getStatisticsUC getConsumptionStatisticsUseCase,
	updateConsumptionUC updateConsumptionUseCase,
	removeConsumptionUC removeConsumptionUseCase,
	resetRechargeTimesUC resetRechargeTimesUseCase,
	verifyRechargeTimesUC verifyRechargeTimesUseCase,
	logger logger.Interface,
) *ConsumptionHandler {
	return &ConsumptionHandler{
		createConsumptionUC:   createConsumptionUC,
		getConsumptionUC:      getConsumptionUC,
		listConsumptionsUC:    listConsumptionsUC,
		getStatisticsUC:       getStatisticsUC,
		updateConsumptionUC:   updateConsumptionUC,
		removeConsumptionUC:   removeConsumptionUC,
		resetRechargeTimesUC:  resetRechargeTimesUC,
		verifyRechargeTimesUC: verifyRechargeTimesUC,
		logger:                logger,
	}
}

type CreateConsumptionRequest struct {
	MemberID      *uint                  `json:"memberId"`
	RechargeID    *uint                  `json:"rechargeId"`
	PackID        *uint                  `json:"packId"`
	CustomerName  string                 `json:"customerName" binding:"max=64"`
	CustomerPhone string                 `json:"customerPhone" binding:"omitempty,cnphone"`
	Amount        *decimal.Decimal       `json:"amount" binding:"required"`
	PaymentType   string                 `json:"paymentType" binding:"max=32"`
	Seq           string                 `json:"seq" binding:"max=64"`
	State         string                 `json:"state"`
	ConsumptionAt *string                `json:"consumptionAt"`
	OperatorID    *uint                  `json:"operatorId"`
	Remark        string                 `json:"remark" binding:"max=500"`
	Payload       map[string]interface{} `json:"payload"`
}

type UpdateConsumptionRequest struct {
	MemberID      *uint                  `json:"memberId"`
	RechargeID    *uint                  `json:"rechargeId"`
	PackID        *uint                  `json:"packId"`
	CustomerName  *string                `json:"customerName" binding:"omitempty,max=64"`
	CustomerPhone *string                `json:"customerPhone" binding:"omitempty,cnphone"`
	Amount        *decimal.Decimal       `json:"amount"`
	PaymentType   *string                `json:"paymentType" binding:"omitempty,max=32"`
	State         *string                `json:"state"`
	ConsumptionAt *string                `json:"consumptionAt"`
	OperatorID    *uint                  `json:"operatorId"`
	Remark        *string                `json:"remark" binding:"omitempty,max=500"`
	Payload       map[string]interface{} `json:"payload"`
}

type BatchResetRequest struct {
	RechargeIDs []uint `json:"rechargeIds" binding:"required,min=1,dive,min=1"`
}

func (h *ConsumptionHandler) CreateConsumption(c *gin.Context) {
	var req CreateConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create consumption", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	consumptionAt, err := utils.ParseOptionalTime("consumptionAt", req.ConsumptionAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := consumptionUsecases.CreateConsumptionCommand{
		MemberID:      req.MemberID,
		RechargeID:    req.RechargeID,
		PackID:        req.PackID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Amount:        *req.Amount,
		PaymentType:   req.PaymentType,
		Seq:           req.Seq,
		State:         req.State,
		ConsumptionAt: consumptionAt,
		OperatorID:    operatorOrCaller(c, req.OperatorID),
		Remark:        req.Remark,
		Payload:       req.Payload,
	}

	result, err := h.createConsumptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Consumption created successfully")
}

func (h *ConsumptionHandler) GetConsumption(c *gin.Context) {
	consumptionID, err := utils.ParseIDParam(c, "id", "consumption")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getConsumptionUC.Execute(c.Request.Context(), consumptionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ConsumptionHandler) ListConsumptions(c *gin.Context) {
	query, err := parseListConsumptionsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listConsumptionsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Consumptions, result.Total, result.Page, result.PageSize)
}

func parseListConsumptionsQuery(c *gin.Context) (consumptionUsecases.ListConsumptionsQuery, error) {
	p := utils.ParsePagination(c)
	q := consumptionUsecases.ListConsumptionsQuery{
		PaymentType: c.Query("paymentType"),
		State:       c.Query("state"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Page:        p.Page,
		PageSize:    p.PageSize,
	}

	var err error
	if q.MemberID, err = utils.QueryUint(c, "memberId"); err != nil {
		return q, err
	}
	if q.PackID, err = utils.QueryUint(c, "packId"); err != nil {
		return q, err
	}
	if q.RechargeID, err = utils.QueryUint(c, "rechargeId"); err != nil {
		return q, err
	}
	if q.OperatorID, err = utils.QueryUint(c, "operatorId"); err != nil {
		return q, err
	}
	if q.StartDate, err = utils.QueryTime(c, "startDate", false); err != nil {
		return q, err
	}
	if q.EndDate, err = utils.QueryTime(c, "endDate", true); err != nil {
		return q, err
	}
	if q.MinAmount, err = utils.QueryDecimal(c, "minAmount"); err != nil {
		return q, err
	}
	if q.MaxAmount, err = utils.QueryDecimal(c, "maxAmount"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *ConsumptionHandler) GetStatistics(c *gin.Context) {
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

func (h *ConsumptionHandler) UpdateConsumption(c *gin.Context) {
	consumptionID, err := utils.ParseIDParam(c, "id", "consumption")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update consumption",
			"consumption_id", consumptionID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	consumptionAt, err := utils.ParseOptionalTime("consumptionAt", req.ConsumptionAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := consumptionUsecases.UpdateConsumptionCommand{
		ID:            consumptionID,
		MemberID:      req.MemberID,
		RechargeID:    req.RechargeID,
		PackID:        req.PackID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Amount:        req.Amount,
		PaymentType:   req.PaymentType,
		State:         req.State,
		ConsumptionAt: consumptionAt,
		OperatorID:    req.OperatorID,
		Remark:        req.Remark,
		Payload:       req.Payload,
	}

	result, err := h.updateConsumptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consumption updated successfully", result)
}

func (h *ConsumptionHandler) RemoveConsumption(c *gin.Context) {
	consumptionID, err := utils.ParseIDParam(c, "id", "consumption")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeConsumptionUC.Execute(c.Request.Context(), consumptionID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *ConsumptionHandler) ResetRechargeTimes(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "rechargeId", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resetRechargeTimesUC.Reset(c.Request.Context(), rechargeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Recharge times reset successfully", result)
}

func (h *ConsumptionHandler) BatchResetRechargeTimes(c *gin.Context) {
	var req BatchResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for batch reset recharge times", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.resetRechargeTimesUC.ResetBatch(c.Request.Context(), req.RechargeIDs)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ConsumptionHandler) ResetAllRechargeTimes(c *gin.Context) {
	result, err := h.resetRechargeTimesUC.ResetAll(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

func (h *ConsumptionHandler) VerifyRechargeTimes(c *gin.Context) {
	rechargeID, err := utils.ParseIDParam(c, "rechargeId", "recharge")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.verifyRechargeTimesUC.Execute(c.Request.Context(), rechargeID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

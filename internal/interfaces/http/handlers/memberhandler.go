package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	memberUsecases "github.com/orris-inc/memberhub/internal/application/member/usecases"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

type MemberHandler struct {
	createMemberUC createMemberUseCase
	getMemberUC    getMemberUseCase
	listMembersUC  listMembersUseCase
	updateMemberUC updateMemberUseCase
	deleteMemberUC deleteMemberUseCase
	adjustMemberUC adjustMemberUseCase
	logger         logger.Interface
}

func NewMemberHandler(
	createMemberUC createMemberUseCase,
	getMemberUC getMemberUseCase,
	listMembersUC listMembersUseCase,
	updateMemberUC updateMemberUseCase,
	deleteMemberUC deleteMemberUseCase,
	adjustMemberUC adjustMemberUseCase,
	logger logger.Interface,
) *MemberHandler {
	return &MemberHandler{
		createMemberUC: createMemberUC,
		getMemberUC:    getMemberUC,
		listMembersUC:  listMembersUC,
		updateMemberUC: updateMemberUC,
		deleteMemberUC: deleteMemberUC,
		adjustMemberUC: adjustMemberUC,
		logger:         logger,
	}
}

type CreateMemberRequest struct {
	Name       string                 `json:"name" binding:"required,max=64"`
	Phone      string                 `json:"phone" binding:"required,cnphone"`
	Email      string                 `json:"email" binding:"omitempty,email"`
	Gender     string                 `json:"gender" binding:"omitempty,max=16"`
	Birthday   *string                `json:"birthday"`
	Level      string                 `json:"level" binding:"max=32"`
	Balance    *decimal.Decimal       `json:"balance"`
	Points     *int                   `json:"points" binding:"omitempty,min=0"`
	State      string                 `json:"state" binding:"omitempty,oneof=active disabled"`
	Avatar     map[string]interface{} `json:"avatar"`
	RegisterAt *string                `json:"registerAt"`
	Remark     string                 `json:"remark" binding:"max=500"`
	Payload    map[string]interface{} `json:"payload"`
}

type UpdateMemberRequest struct {
	Name       *string                `json:"name" binding:"omitempty,min=1,max=64"`
	Phone      *string                `json:"phone" binding:"omitempty,cnphone"`
	Email      *string                `json:"email" binding:"omitempty,email"`
	Gender     *string                `json:"gender" binding:"omitempty,max=16"`
	Birthday   *string                `json:"birthday"`
	Level      *string                `json:"level" binding:"omitempty,max=32"`
	State      *string                `json:"state" binding:"omitempty,oneof=active disabled"`
	Avatar     map[string]interface{} `json:"avatar"`
	RegisterAt *string                `json:"registerAt"`
	Remark     *string                `json:"remark" binding:"omitempty,max=500"`
	Payload    map[string]interface{} `json:"payload"`
}

type AdjustBalanceRequest struct {
	Delta *decimal.Decimal `json:"delta" binding:"required"`
}

type AdjustPointsRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create member", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	birthday, err := utils.ParseOptionalDate("birthday", req.Birthday)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	registerAt, err := utils.ParseOptionalTime("registerAt", req.RegisterAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := memberUsecases.CreateMemberCommand{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Gender:     req.Gender,
		Birthday:   birthday,
		Level:      req.Level,
		Balance:    req.Balance,
		Points:     req.Points,
		State:      req.State,
		Avatar:     req.Avatar,
		RegisterAt: registerAt,
		Remark:     req.Remark,
		Payload:    req.Payload,
	}

	result, err := h.createMemberUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Member created successfully")
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getMemberUC.Execute(c.Request.Context(), memberID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := memberUsecases.ListMembersQuery{
		Search:    c.Query("search"),
		Level:     c.Query("level"),
		State:     c.Query("state"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	}

	result, err := h.listMembersUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Members, result.Total, result.Page, result.PageSize)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update member",
			"member_id", memberID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	birthday, err := utils.ParseOptionalDate("birthday", req.Birthday)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	registerAt, err := utils.ParseOptionalTime("registerAt", req.RegisterAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := memberUsecases.UpdateMemberCommand{
		ID:         memberID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Gender:     req.Gender,
		Birthday:   birthday,
		Level:      req.Level,
		State:      req.State,
		Avatar:     req.Avatar,
		RegisterAt: registerAt,
		Remark:     req.Remark,
		Payload:    req.Payload,
	}

	result, err := h.updateMemberUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Member updated successfully", result)
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteMemberUC.Execute(c.Request.Context(), memberID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *MemberHandler) AdjustBalance(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for adjust balance", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if req.Delta.IsZero() {
		utils.ErrorResponseWithError(c, errors.NewValidationError("调整金额不能为0"))
		return
	}

	result, err := h.adjustMemberUC.AdjustBalance(c.Request.Context(), memberID, *req.Delta)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Balance adjusted successfully", result)
}

func (h *MemberHandler) AdjustPoints(c *gin.Context) {
	memberID, err := utils.ParseIDParam(c, "id", "member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for adjust points", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if *req.Delta == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("调整积分不能为0"))
		return
	}

	result, err := h.adjustMemberUC.AdjustPoints(c.Request.Context(), memberID, *req.Delta)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Points adjusted successfully", result)
}

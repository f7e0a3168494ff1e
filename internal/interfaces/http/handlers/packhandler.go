package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	packUsecases "github.com/orris-inc/memberhub/internal/application/pack/usecases"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

type PackHandler struct {
	createPackUC   createPackUseCase
	getPackUC      getPackUseCase
	listPacksUC    listPacksUseCase
	updatePackUC   updatePackUseCase
	deletePackUC   deletePackUseCase
	recountSalesUC recountSalesUseCase
	logger         logger.Interface
}

func NewPackHandler(
	createPackUC createPackUseCase,
	getPackUC getPackUseCase,
	listPacksUC listPacksUseCase,
	updatePackUC updatePackUseCase,
	deletePackUC deletePackUseCase,
	recountSalesUC recountSalesUseCase,
	logger logger.Interface,
) *PackHandler {
	return &PackHandler{
		createPackUC:   createPackUC,
		getPackUC:      getPackUC,
		listPacksUC:    listPacksUC,
		updatePackUC:   updatePackUC,
		deletePackUC:   deletePackUC,
		recountSalesUC: recountSalesUC,
		logger:         logger,
	}
}

type CreatePackRequest struct {
	Name        string                 `json:"name" binding:"required,max=128"`
	Description string                 `json:"description"`
	PackType    string                 `json:"packType" binding:"omitempty,oneof=normal times amount"`
	Category    string                 `json:"category" binding:"max=64"`
	Icon        string                 `json:"icon" binding:"max=255"`
	MemberPrice decimal.Decimal        `json:"memberPrice"`
	SalePrice   decimal.Decimal        `json:"salePrice"`
	Price       decimal.Decimal        `json:"price"`
	TotalTimes  *int                   `json:"totalTimes" binding:"omitempty,min=0"`
	ValidDay    int                    `json:"validDay" binding:"min=0"`
	State       string                 `json:"state" binding:"omitempty,oneof=active inactive"`
	Position    int                    `json:"position"`
	Payload     map[string]interface{} `json:"payload"`
}

type UpdatePackRequest struct {
	Name        *string                `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string                `json:"description"`
	PackType    *string                `json:"packType" binding:"omitempty,oneof=normal times amount"`
	Category    *string                `json:"category" binding:"omitempty,max=64"`
	Icon        *string                `json:"icon" binding:"omitempty,max=255"`
	MemberPrice *decimal.Decimal       `json:"memberPrice"`
	SalePrice   *decimal.Decimal       `json:"salePrice"`
	Price       *decimal.Decimal       `json:"price"`
	TotalTimes  *int                   `json:"totalTimes" binding:"omitempty,min=0"`
	ValidDay    *int                   `json:"validDay" binding:"omitempty,min=0"`
	State       *string                `json:"state" binding:"omitempty,oneof=active inactive"`
	Position    *int                   `json:"position"`
	Payload     map[string]interface{} `json:"payload"`
}

type RecountSalesResponse struct {
	PackID     uint  `json:"packId"`
	SalesCount int64 `json:"salesCount"`
}

func (h *PackHandler) CreatePack(c *gin.Context) {
	var req CreatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create pack", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := packUsecases.CreatePackCommand{
		Name:        req.Name,
		Description: req.Description,
		PackType:    req.PackType,
		Category:    req.Category,
		Icon:        req.Icon,
		MemberPrice: req.MemberPrice,
		SalePrice:   req.SalePrice,
		Price:       req.Price,
		TotalTimes:  req.TotalTimes,
		ValidDay:    req.ValidDay,
		State:       req.State,
		Position:    req.Position,
		Payload:     req.Payload,
	}

	result, err := h.createPackUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Package created successfully")
}

func (h *PackHandler) GetPack(c *gin.Context) {
	packID, err := utils.ParseIDParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPackUC.Execute(c.Request.Context(), packID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PackHandler) ListPacks(c *gin.Context) {
	p := utils.ParsePagination(c)

	minPrice, err := utils.QueryDecimal(c, "minPrice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	maxPrice, err := utils.QueryDecimal(c, "maxPrice")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := packUsecases.ListPacksQuery{
		Search:    c.Query("search"),
		PackType:  c.Query("packType"),
		Category:  c.Query("category"),
		State:     c.Query("state"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	}

	result, err := h.listPacksUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Packs, result.Total, result.Page, result.PageSize)
}

func (h *PackHandler) UpdatePack(c *gin.Context) {
	packID, err := utils.ParseIDParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update pack",
			"pack_id", packID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := packUsecases.UpdatePackCommand{
		ID:          packID,
		Name:        req.Name,
		Description: req.Description,
		PackType:    req.PackType,
		Category:    req.Category,
		Icon:        req.Icon,
		MemberPrice: req.MemberPrice,
		SalePrice:   req.SalePrice,
		Price:       req.Price,
		TotalTimes:  req.TotalTimes,
		ValidDay:    req.ValidDay,
		State:       req.State,
		Position:    req.Position,
		Payload:     req.Payload,
	}

	result, err := h.updatePackUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package updated successfully", result)
}

func (h *PackHandler) DeletePack(c *gin.Context) {
	packID, err := utils.ParseIDParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePackUC.Execute(c.Request.Context(), packID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PackHandler) RecountSales(c *gin.Context) {
	packID, err := utils.ParseIDParam(c, "id", "package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	count, err := h.recountSalesUC.Execute(c.Request.Context(), packID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", RecountSalesResponse{PackID: packID, SalesCount: count})
}

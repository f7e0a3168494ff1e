package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
	"github.com/orris-inc/memberhub/internal/shared/errors"
	"github.com/orris-inc/memberhub/internal/shared/logger"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

type AuthHandler struct {
	loginUC  loginUseCase
	logoutUC logoutUseCase
	logger   logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, logoutUC logoutUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:  loginUC,
		logoutUC: logoutUC,
		logger:   logger,
	}
}

type LoginRequest struct {
	Account  string `json:"account" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), operatorUsecases.LoginCommand{
		Account:  req.Account,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// Logout runs behind RequireAuth and drops the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := utils.GetSessionID(c)
	if sessionID == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("operator not authenticated"))
		return
	}

	if err := h.logoutUC.Execute(c.Request.Context(), sessionID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logout successful", nil)
}

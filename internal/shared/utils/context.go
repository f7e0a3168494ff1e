package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/memberhub/internal/shared/constants"
)

// GetOperatorID returns the authenticated operator, if the auth middleware ran.
func GetOperatorID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyOperatorID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func GetOperatorRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyOperatorRole)
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionToken)
}

// GetRequestID returns the id assigned by the request id middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}

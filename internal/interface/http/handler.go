// Package handlers holds the Gin handlers. Handlers bind and validate input,
// call one service method and either render the payload or attach the error
// with c.Error for middleware.ErrorHandler.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/udconnect/udconnect-api/pkg/apperror"
	"github.com/udconnect/udconnect-api/pkg/validation"
)

const msgInvalidPayload = "Datos inválidos"

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Validation(msgInvalidPayload).WithDetails(validation.ToDetails(err)))
		return false
	}
	return true
}

// queryInt returns def when the parameter is missing or not a number.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

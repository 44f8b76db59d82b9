package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/Allen-Brian/AGRICHAIN/internal/api/errors"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

// respondOK wraps data in the success envelope
func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, apierrors.Success(data))
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	apiErr := apierrors.NewBadRequestError(message, details...)
	c.JSON(apiErr.Status, apierrors.Failure(apiErr))
}

// respondUnauthorized responds when no caller is attached to the request
func respondUnauthorized(c *gin.Context) {
	apiErr := apierrors.NewUnauthorizedError("Authentication required")
	c.JSON(apiErr.Status, apierrors.Failure(apiErr))
}

// respondError maps a domain error to its status. Server-side failures are logged.
func respondError(c *gin.Context, err error, message string, fields ...zap.Field) {
	apiErr := apierrors.FromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		fields = append(fields,
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(apiErr.Code)),
		)
		if apiErr.ReconciliationID != "" {
			fields = append(fields, zap.String("reconciliation_id", apiErr.ReconciliationID))
		}
		logger.ErrorCtx(c.Request.Context(), err, append([]zap.Field{zap.String("message", message)}, fields...)...)
	}
	c.JSON(apiErr.Status, apierrors.Failure(apiErr))
}

// orEmpty keeps empty listings as [] rather than null
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

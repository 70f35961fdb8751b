package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// ErrorHandler renders the last error attached with c.Error. Domain errors
// keep their status and message; anything else is logged and becomes a
// generic 500. It must run before every middleware that can fail.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := apperror.As(err); ok && appErr.Code != apperror.CodeInternal {
			c.JSON(appErr.HTTPStatus(), model.ErrorResponse{
				Error:   appErr.Message,
				Code:    string(appErr.Code),
				Details: appErr.Details,
			})
			return
		}

		log.Error("unhandled error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error: internalErrorMessage,
			Code:  string(apperror.CodeInternal),
		})
	}
}

// Recovery turns panics into the generic 500 response and logs them.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
			Error: internalErrorMessage,
			Code:  string(apperror.CodeInternal),
		})
	})
}

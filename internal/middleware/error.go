package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
)

// ErrorHandler returns a Gin middleware that turns the last error recorded on
// the context into the JSON error body, unless a handler already responded.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// WriteError writes err as {"error":{"code","message"}}. Errors that are not
// an *AppError are reported as INTERNAL_ERROR so their details stay in the
// log. Storage and internal failures are logged with the request id.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"request_id", RequestID(c),
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		log := logger.Get().Warnw
		if appErr.Kind == apperrors.KindPersistence || appErr.Kind == apperrors.KindInternal {
			log = logger.Get().Errorw
		}
		log("app error",
			"request_id", RequestID(c),
			"code", appErr.Code,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

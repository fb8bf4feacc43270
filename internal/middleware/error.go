package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/feedbackboard/backend/internal/types"
)

// ErrorHandler recovers panics, logs them with the stack and answers with a
// generic JSON 500.
func ErrorHandler(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"panic":      err,
					"request_id": c.GetString(ContextRequestID),
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
			}
		}()
		c.Next()
	}
}

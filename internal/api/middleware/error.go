package middleware

import (
	"log"
	"net/http"

	"acopf/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts panics into the standard error envelope. The solver
// traps its own panics and reports them as an error status, so anything
// reaching here is a genuine handler bug and gets logged.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic in %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)

		msg := "An unexpected error occurred"
		if err, ok := recovered.(error); ok {
			msg = err.Error()
		} else if s, ok := recovered.(string); ok {
			msg = s
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
		c.Abort()
	})
}

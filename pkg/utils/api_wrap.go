package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"superagent/internal/models/response_models"
)

const (
	msgSessionExpired = "Your session has expired. Please start again by entering your name."
	msgUnknownPlan    = "Please choose a plan between 1 and 3."
	msgInternal       = "Internal server error"
)

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response_models.StepResponse{Message: message})
}

// RespondRejection answers with HTTP 200 and an error body, which the chat
// client shows inline and then lets the user retry.
func RespondRejection(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response_models.StepResponse{Error: message})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, response_models.StepResponse{Error: message})
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if message, ok := AsRejection(err); ok {
		RespondRejection(c, message)
		return
	}

	traceID := c.GetString("trace_id")

	switch {
	case errors.Is(err, ErrSessionNotFound):
		RespondRejection(c, msgSessionExpired)
	case errors.Is(err, ErrUnknownPlan):
		RespondError(c, http.StatusBadRequest, msgUnknownPlan)
	default:
		logger.Error("unhandled service error", zap.String("trace_id", traceID), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, msgInternal)
	}
}

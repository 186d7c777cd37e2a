package util

import (
	"errors"

	"sals_backend/internal/concept"
	"sals_backend/internal/grader"
	"sals_backend/internal/llm"
	"sals_backend/internal/model"
	"sals_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HandleError writes the response for a service error: 400 for bad input,
// 404 for missing records, 502 for LLM failures and 500 for the rest.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, grader.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidChoice),
		errors.Is(err, concept.ErrEmptyConcept):
		BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c)
	case llm.IsUpstreamError(err):
		logger.Log.Warn("LLM request failed", zap.String("path", c.FullPath()), zap.Error(err))
		BadGateway(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}

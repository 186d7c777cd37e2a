package util

import (
	"net/http"

	"sals_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Code: code, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, "created", data)
}

// Error replies without data and stops the handler chain.
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

func BadRequest(c *gin.Context, message string) { Error(c, http.StatusBadRequest, message) }

func NotFound(c *gin.Context) { Error(c, http.StatusNotFound, "Resource not found") }

func BadGateway(c *gin.Context, message string) { Error(c, http.StatusBadGateway, message) }

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	_ = c.Error(err)
	InternalServerError(c)
}

package controller

import (
	"context"
	"net/http"
	"time"

	"sals_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
	Model func() string
}

func NewHealthController(db *gorm.DB, rdb *redis.Client, model func() string) *HealthController {
	return &HealthController{DB: db, Redis: rdb, Model: model}
}

// @Summary Health check
// @Description Reports database and cache status
// @Tags System
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up", "cache": "disabled"}
	if c.Redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			// the cache is optional, so a dead redis only degrades
			components["cache"] = "down"
		} else {
			components["cache"] = "up"
		}
	}

	out := gin.H{"status": "ok", "components": components}
	if c.Model != nil {
		out["model"] = c.Model()
	}
	util.Success(ctx, out)
}

package controller

import (
	"sals_backend/internal/service"
	"sals_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary Get progress for a topic
// @Tags Progress
// @Produce json
// @Param topic path string true "Topic name"
// @Success 200 {object} util.Response{data=service.ProgressView}
// @Failure 404 {object} util.Response
// @Router /api/progress/{topic} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	view, err := c.Service.GetByTopic(ctx.Param("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary List progress for all topics
// @Tags Progress
// @Produce json
// @Success 200 {object} util.Response{data=[]service.ProgressView}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	views, err := c.Service.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

package controller

import (
	"sals_backend/internal/service"
	"sals_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// @Summary Create a learning path
// @Description Builds study material for the weak concepts of a diagnostic attempt.
// @Tags Learning Path
// @Accept json
// @Produce json
// @Param body body service.LearningPathRequest true "Attempt and optional weak concepts"
// @Success 201 {object} util.Response{data=service.LearningPathResult}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/learning-path [post]
func (c *LearningPathController) Create(ctx *gin.Context) {
	var req service.LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, res)
}

// @Summary Get a learning path
// @Tags Learning Path
// @Produce json
// @Param id path int true "Learning path ID"
// @Success 200 {object} util.Response{data=service.LearningPathResult}
// @Failure 404 {object} util.Response
// @Router /api/learning-path/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	id := util.ParseID(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid learning path id")
		return
	}

	res, err := c.Service.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Mark a learning path completed
// @Tags Learning Path
// @Produce json
// @Param id path int true "Learning path ID"
// @Success 200 {object} util.Response{data=service.LearningPathResult}
// @Failure 404 {object} util.Response
// @Router /api/learning-path/{id}/complete [post]
func (c *LearningPathController) Complete(ctx *gin.Context) {
	id := util.ParseID(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid learning path id")
		return
	}

	res, err := c.Service.Complete(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

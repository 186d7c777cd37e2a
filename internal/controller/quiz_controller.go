package controller

import (
	"sals_backend/internal/service"
	"sals_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

func quizPayload(q *service.GeneratedQuiz) gin.H {
	out := gin.H{
		"quiz":        q.Questions,
		"quiz_id":     q.QuizID,
		"title":       q.Title,
		"description": q.Description,
	}
	if q.InitialWeakConcept != nil {
		out["initial_weak_concepts"] = q.InitialWeakConcept
	}
	return out
}

// @Summary Generate a diagnostic quiz
// @Description Asks the LLM for a multiple-choice quiz on the topic and stores it.
// @Tags Quiz
// @Produce json
// @Param topic query string false "Topic name" default(Graphs)
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/generate-quiz [get]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	q, err := c.Service.GenerateQuiz(ctx.Request.Context(), ctx.Query("topic"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizPayload(q))
}

// @Summary Grade a diagnostic quiz
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body service.SubmitQuizRequest true "Answer sheet"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/analyze-quiz [post]
func (c *QuizController) AnalyzeQuiz(ctx *gin.Context) {
	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.SubmitQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Generate a final assessment quiz
// @Description Targets the weak concepts, falling back to the ones from the diagnostic attempt.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body service.FinalQuizRequest true "Topic and weak concepts"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/final-quiz [post]
func (c *QuizController) FinalQuiz(ctx *gin.Context) {
	var req service.FinalQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.GenerateFinalQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizPayload(q))
}

// @Summary Grade the final quiz and compute improvement
// @Tags Quiz
// @Accept json
// @Produce json
// @Param body body service.SubmitQuizRequest true "Answer sheet"
// @Success 200 {object} util.Response{data=service.FinalResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/submit-final-quiz [post]
func (c *QuizController) SubmitFinalQuiz(ctx *gin.Context) {
	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.Service.SubmitFinalQuiz(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary Get a quiz attempt
// @Tags Quiz
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Failure 404 {object} util.Response
// @Router /api/quiz-attempt/{id} [get]
func (c *QuizController) GetQuizAttempt(ctx *gin.Context) {
	id := util.ParseID(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	res, err := c.Service.GetAttempt(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

package app

import (
	"sals_backend/docs"
	"sals_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		a.registerQuizRoutes(api, c)
		a.registerLearningPathRoutes(api, c)

		api.GET("/progress", c.progress.List)
		api.GET("/progress/:topic", c.progress.Get)
	}
}

func (a *App) registerQuizRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/generate-quiz", c.quiz.GenerateQuiz)
	rg.POST("/analyze-quiz", c.quiz.AnalyzeQuiz)
	rg.POST("/final-quiz", c.quiz.FinalQuiz)
	rg.POST("/submit-final-quiz", c.quiz.SubmitFinalQuiz)
	rg.GET("/quiz-attempt/:id", c.quiz.GetQuizAttempt)
}

func (a *App) registerLearningPathRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/learning-path", c.learningPath.Create)
	rg.GET("/learning-path/:id", c.learningPath.Get)
	rg.POST("/learning-path/:id/complete", c.learningPath.Complete)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pp-platform/exercise-engine/internal/services"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

type HandlerManager struct {
	exerciseHandler *ExerciseHandler
	sessionHandler  *SessionHandler
}

func NewHandlerManager(
	exerciseService services.ExerciseService,
	sessionService services.SessionService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		exerciseHandler: NewExerciseHandler(exerciseService, logger),
		sessionHandler:  NewSessionHandler(sessionService, exportService, logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		exercises := v1.Group("/exercises")
		{
			exercises.POST("", hm.exerciseHandler.PublishExercise)
			exercises.GET("", hm.exerciseHandler.ListExercises)
			exercises.GET("/:id", hm.exerciseHandler.GetExercise)
			exercises.DELETE("/:id", hm.exerciseHandler.DeleteExercise)
			exercises.GET("/:id/versions", hm.exerciseHandler.ListExerciseVersions)
			exercises.GET("/:id/versions/:version", hm.exerciseHandler.GetExerciseVersion)
			exercises.PUT("/:id/versions/:version/pin", hm.exerciseHandler.PinExerciseVersion)

			// Session routes, one session per exercise
			exercises.POST("/:id/session", hm.sessionHandler.OpenSession)
			exercises.POST("/:id/session/answers/:item_id", hm.sessionHandler.SubmitAnswer)
			exercises.POST("/:id/session/next", hm.sessionHandler.NextItem)
			exercises.POST("/:id/session/prev", hm.sessionHandler.PrevItem)
			exercises.POST("/:id/session/goto", hm.sessionHandler.JumpToItem)
			exercises.POST("/:id/session/retry", hm.sessionHandler.RetrySession)
			exercises.GET("/:id/session/summary", hm.sessionHandler.GetSummary)
			exercises.GET("/:id/session/summary/export", hm.sessionHandler.ExportSummary)
		}
	}
}

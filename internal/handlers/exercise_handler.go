package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pp-platform/exercise-engine/internal/models"
	"github.com/pp-platform/exercise-engine/internal/repositories"
	"github.com/pp-platform/exercise-engine/internal/services"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

type ExerciseHandler struct {
	BaseHandler
	exerciseService services.ExerciseService
}

func NewExerciseHandler(exerciseService services.ExerciseService, logger utils.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler:     NewBaseHandler(logger),
		exerciseService: exerciseService,
	}
}

// PublishExercise stores a new definition version. ?pin=false appends the
// version without making it the served one.
func (h *ExerciseHandler) PublishExercise(c *gin.Context) {
	var exercise models.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Publishing exercise", "exercise_id", exercise.ID)

	pin := c.DefaultQuery("pin", "true") != "false"
	version, err := h.exerciseService.Publish(c.Request.Context(), &exercise, pin)
	if err != nil {
		h.LogError(c, err, "Failed to publish exercise", "exercise_id", exercise.ID)
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Exercise published",
		Data: gin.H{
			"exercise_id": exercise.ID,
			"version":     version,
			"pinned":      pin,
		},
	})
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: exercise})
}

func (h *ExerciseHandler) GetExerciseVersion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	version := ParseIntParam(c, "version")
	if version < 0 {
		return
	}

	exercise, err := h.exerciseService.GetVersion(c.Request.Context(), id, version)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: exercise})
}

func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filters := repositories.ExerciseFilters{}
	if t := c.Query("type"); t != "" {
		exerciseType := models.ExerciseType(t)
		if !exerciseType.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid type filter",
				Details: t,
			})
			return
		}
		filters.Type = &exerciseType
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = offset
	}

	metas, err := h.exerciseService.List(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: metas})
}

func (h *ExerciseHandler) ListExerciseVersions(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	versions, err := h.exerciseService.ListVersions(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: versions})
}

func (h *ExerciseHandler) PinExerciseVersion(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	version := ParseIntParam(c, "version")
	if version < 0 {
		return
	}

	h.LogRequest(c, "Pinning exercise version", "exercise_id", id, "version", version)

	if err := h.exerciseService.Pin(c.Request.Context(), id, version); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Version pinned"})
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting exercise", "exercise_id", id)

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Exercise deleted"})
}

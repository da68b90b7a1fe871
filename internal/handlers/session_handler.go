package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pp-platform/exercise-engine/internal/grading"
	"github.com/pp-platform/exercise-engine/internal/services"
	"github.com/pp-platform/exercise-engine/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
	exportService  services.ExportService
}

func NewSessionHandler(
	sessionService services.SessionService,
	exportService services.ExportService,
	logger utils.Logger,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
		exportService:  exportService,
	}
}

type jumpRequest struct {
	Index int `json:"index"`
}

// OpenSession starts or resumes the session for an exercise.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Opening session", "exercise_id", id)

	view, err := h.sessionService.Open(c.Request.Context(), id)
	if err != nil {
		h.LogError(c, err, "Failed to open session", "exercise_id", id)
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

// SubmitAnswer grades a submission for one item.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	itemID := ParseStringIDParam(c, "item_id")
	if itemID == "" {
		return
	}

	var resp grading.Response
	if err := c.ShouldBindJSON(&resp); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.sessionService.Answer(c.Request.Context(), id, itemID, resp)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: result})
}

func (h *SessionHandler) NextItem(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Next(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

func (h *SessionHandler) PrevItem(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	view, err := h.sessionService.Prev(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

func (h *SessionHandler) JumpToItem(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	view, err := h.sessionService.JumpTo(c.Request.Context(), id, req.Index)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

// RetrySession wipes the recorded answers and starts over.
func (h *SessionHandler) RetrySession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Restarting session", "exercise_id", id)

	view, err := h.sessionService.Retry(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: view})
}

func (h *SessionHandler) GetSummary(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	summary, err := h.sessionService.Summary(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: summary})
}

// ExportSummary downloads the summary as csv or xlsx (?format=csv|xlsx).
func (h *SessionHandler) ExportSummary(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	summary, err := h.sessionService.Summary(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		data, err := h.exportService.ExportSummaryToCSV(c.Request.Context(), summary)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-summary.csv", id))
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.exportService.ExportSummaryToExcel(c.Request.Context(), summary)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-summary.xlsx", id))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
	}
}

package feedback

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the feedback service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/get-suggestions", h.getSuggestions)
	rg.POST("/update-suggestion-status", h.updateStatus)
}

type suggestionsRequest struct {
	ResumeText string `json:"resumeText"`
	ResumeID   string `json:"resumeId"`
}

func (h *Handler) getSuggestions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeText is required", nil)
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), userID, strings.TrimSpace(req.ResumeID), req.ResumeText)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSuggestions):
			respond.Error(c, http.StatusBadRequest, "no_suggestions",
				"No suggestions generated. Please ensure your resume has sufficient content.", nil)
		case errors.Is(err, ErrSchemaMismatch), errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusInternalServerError, "upstream_error", "failed to generate suggestions", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate suggestions", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success":     true,
		"suggestions": result.Suggestions,
		"feedbackId":  result.FeedbackID,
		"resumeId":    result.ResumeID,
		"summary":     result.Summary,
	})
}

type statusRequest struct {
	FeedbackID      string `json:"feedbackId"`
	SuggestionIndex *int   `json:"suggestionIndex"`
	Status          string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.FeedbackID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "feedbackId is required", nil)
		return
	}
	if req.SuggestionIndex == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "suggestionIndex is required", nil)
		return
	}

	err := h.Svc.UpdateStatus(c.Request.Context(), userID, req.FeedbackID, *req.SuggestionIndex, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Feedback not found", nil)
		case errors.Is(err, ErrInvalidIndex), errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update status", nil)
		}
		return
	}

	respond.OK(c, gin.H{"success": true})
}

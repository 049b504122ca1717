package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the history service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.history)
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	entries, err := h.Svc.History(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retrieve history", nil)
		return
	}

	respond.OK(c, gin.H{"success": true, "history": entries})
}

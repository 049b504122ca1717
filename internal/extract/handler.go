package extract

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
)

// maxPDFBytes caps decoded uploads at 10MB, matching the blob store's
// file size limit.
const maxPDFBytes = 10 << 20

// Handler wires HTTP handlers to the extraction service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract-pdf", h.extractPDF)
}

type extractRequest struct {
	PDFBase64 string `json:"pdfBase64"`
	FileName  string `json:"fileName"`
}

func (h *Handler) extractPDF(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	// Base64 inflates by 4/3, so allow some headroom over the PDF cap.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFBytes*3/2)

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.PDFBase64) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "PDF data is required", nil)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "pdfBase64 is not valid base64", nil)
		return
	}
	if len(data) > maxPDFBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "PDF exceeds the 10MB limit", nil)
		return
	}

	result, err := h.Svc.ExtractAndStore(c.Request.Context(), userID, req.FileName, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyText):
			respond.Error(c, http.StatusBadRequest, "extraction_empty",
				"Could not extract text from PDF. The PDF might be an image-based PDF, scanned document, or encrypted. Please try using the \"Paste Text\" tab instead.", nil)
		case errors.Is(err, ErrUnreadable):
			respond.Error(c, http.StatusBadRequest, "extraction_failed",
				"Could not extract text from PDF. Please use the \"Paste Text\" tab: copy your resume text and paste it directly.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process PDF", nil)
		}
		return
	}

	respond.OK(c, gin.H{
		"success":  true,
		"text":     result.Text,
		"resumeId": result.Resume.ID,
	})
}

package files

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/respond"
	"resume-coach/internal/shared/storage/object/local"
)

// Handler serves signed downloads for the local object store. It is only
// mounted when the local store backs blob storage; with S3 the presigned
// URLs point at the bucket directly.
type Handler struct {
	Store *local.Store
}

// NewHandler constructs a Handler.
func NewHandler(store *local.Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches the download route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*key", h.download)
}

func (h *Handler) download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid expires parameter", nil)
		return
	}
	sig := c.Query("sig")
	if !h.Store.VerifySignature(key, expires, sig) {
		respond.Error(c, http.StatusForbidden, "forbidden", "signature is invalid or expired", nil)
		return
	}

	r, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read file", nil)
		return
	}
	defer r.Close()

	c.Header("Content-Type", contentTypeFor(key))
	c.Header("Content-Disposition", "attachment; filename=\""+baseName(key)+"\"")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, r)
}

func contentTypeFor(key string) string {
	if strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}

func baseName(key string) string {
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

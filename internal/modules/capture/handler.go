package capture

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"snaplink/internal/modules/link"
	"snaplink/internal/pkg/response"
)

// maxImageSize caps the accepted multipart image payload.
const maxImageSize = 15 * 1024 * 1024 // 15 MB

type Handler struct {
	service *Service
	links   LinkResolver
}

func NewHandler(service *Service, links LinkResolver) *Handler {
	return &Handler{service: service, links: links}
}

// Page serves the capture page for a token, or 404 when the token is unknown.
// The page asks the browser for a camera frame (standard permission prompt),
// posts it back and then follows the redirect.
func (h *Handler) Page(c *gin.Context) {
	token := c.Param("token")
	l, err := h.links.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, link.ErrNotFound) {
			c.String(http.StatusNotFound, "Link not found. It may have been removed or never existed.")
			return
		}
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "capture.html", gin.H{
		"Token":          token,
		"DestinationURL": l.DestinationURL,
	})
}

// Upload accepts the posted image, runs the ingestion pipeline and answers
// with a redirect to the resolved destination. The redirect is issued for
// every outcome; only an unknown token yields a 404 instead.
func (h *Handler) Upload(c *gin.Context) {
	token := c.Param("token")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No photo provided")
		return
	}
	if fileHeader.Size == 0 || fileHeader.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid photo size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable photo")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable photo")
		return
	}

	meta := Meta{
		IPAddress:        clientIP(c),
		UserAgent:        c.PostForm("user_agent"),
		ScreenResolution: c.PostForm("screen_resolution"),
	}
	if meta.UserAgent == "" {
		meta.UserAgent = c.Request.UserAgent()
	}

	result, err := h.service.Ingest(c.Request.Context(), token, image, meta)
	if err != nil {
		if errors.Is(err, link.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process capture")
		return
	}

	c.Redirect(http.StatusSeeOther, result.RedirectURL)
}

// Gallery lists capture records, newest first.
func (h *Handler) Gallery(c *gin.Context) {
	captures, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list captures")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"captures": captures})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Capture not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete capture")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// clientIP prefers the first hop of X-Forwarded-For, matching how the
// service sits behind a reverse proxy in deployment.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.ClientIP()
}

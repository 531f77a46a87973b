package link

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"snaplink/internal/pkg/response"
)

type Handler struct {
	service *Service
	baseURL string
}

func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Destination must be an absolute http(s) URL")
		case errors.Is(err, ErrInvalidConfigRef):
			response.Error(c, http.StatusBadRequest, "INVALID_CONFIG_REF", "Referenced provider config does not exist")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create link")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"link":        l,
		"capture_url": h.baseURL + "/p/" + l.Token,
	})
}

func (h *Handler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list links")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"links": links})
}

func (h *Handler) Delete(c *gin.Context) {
	token := c.Param("token")
	if err := h.service.Delete(c.Request.Context(), token); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Link not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete link")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": token})
}

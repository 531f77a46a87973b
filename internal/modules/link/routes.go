package link

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	links := r.Group("/links")
	{
		links.POST("", h.Create)
		links.GET("", h.List)
		links.DELETE("/:token", h.Delete)
	}
}

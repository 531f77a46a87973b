package provider

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	configs := r.Group("/configs")
	{
		configs.POST("", h.Create)
		configs.GET("", h.List)
		configs.DELETE("/:id", h.Delete)
	}
}

package capture

import "github.com/gin-gonic/gin"

// RegisterVisitorRoutes mounts the visitor-facing surface at the root.
func RegisterVisitorRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/p/:token", h.Page)
	r.POST("/p/:token/photo", h.Upload)
}

// RegisterAdminRoutes mounts the operator surface.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/gallery", h.Gallery)
	r.DELETE("/captures/:id", h.Delete)
}

package questgraph

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/graph", h.FullGraph)
	rg.GET("/graph/elements", h.FullElements)

	rg.GET("/nodes/:id", h.GetNode)
	rg.GET("/nodes/:id/predecessors", h.Predecessors)
	rg.GET("/nodes/:id/elements", h.PredecessorElements)
}

// RegisterAdmin mounts operational endpoints; callers decide on protection.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/reload", h.Reload)
}

package popularity

import (
	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts the public ranking reads under /fondos.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/fondos")
	g.GET("/total-descargas", h.totalDownloads)
	g.GET("/mas-descargados", h.mostDownloaded)
	g.GET("/etiquetas-populares", h.popularTags)
	g.GET("/colores-populares", h.popularColors)
}

func (h *Handler) totalDownloads(c *gin.Context) {
	total, err := h.svc.TotalDownloads(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, total)
}

func (h *Handler) mostDownloaded(c *gin.Context) {
	items, err := h.svc.MostDownloaded(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) popularTags(c *gin.Context) {
	items, err := h.svc.PopularTags(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) popularColors(c *gin.Context) {
	items, err := h.svc.PopularColors(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, items)
}

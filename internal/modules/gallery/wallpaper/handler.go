package wallpaper

import (
	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/modules/taxonomy/label"
	"github.com/zenith-gallery/core/internal/pkg/pagination"
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

// RegisterRoutes mounts /fondos. Popularity routes share the group and are
// registered by their own handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/fondos")
	g.GET("", h.list)
	g.GET("/total", h.count)
	g.GET("/recomendados", h.recommended)
	g.GET("/:id", h.get)
	g.PATCH("/:id/descargas", h.incrementDownloads)

	admin := g.Group("", adminMW)
	admin.POST("", h.create)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

// list GET /fondos
func (h *Handler) list(c *gin.Context) {
	page, err := pagination.FromContext(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), ListQuery{
		Query:     page,
		Search:    c.Query("search"),
		Etiquetas: label.SplitNames(c.Query("etiquetas")),
		Colores:   label.SplitNames(c.Query("colores")),
		Tipo:      c.Query("tipo"),
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, items)
}

// count GET /fondos/total
func (h *Handler) count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, n)
}

// recommended GET /fondos/recomendados
func (h *Handler) recommended(c *gin.Context) {
	items, err := h.svc.Recommended(c.Request.Context(), label.SplitNames(c.Query("etiquetas")))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	w, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, w)
}

// incrementDownloads PATCH /fondos/:id/descargas
func (h *Handler) incrementDownloads(c *gin.Context) {
	var body incrementBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "El incremento debe ser un número válido.")
		return
	}
	n, err := ParseIncrement(body.Incremento)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	w, err := h.svc.IncrementDownloads(c.Request.Context(), c.Param("id"), n)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, w)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateWallpaperDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	w, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, w)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateWallpaperDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	w, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, w)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Message(c, "Fondo eliminado")
}

package label

import (
	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	store *Store
	log   *zap.Logger
}

func NewHandler(store *Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes mounts the collection under its route; writes go through adminMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group(h.store.Kind().Route)
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", adminMW)
	admin.POST("", h.create)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, docs)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	doc, err := h.store.Create(c.Request.Context(), dto.Nombre)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateLabelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	doc, err := h.store.Update(c.Request.Context(), c.Param("id"), dto.Nombre)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Message(c, h.store.Kind().deletedMessage)
}

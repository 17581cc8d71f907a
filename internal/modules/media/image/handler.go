package image

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/pkg/apperr"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

// FormField is the multipart field carrying the uploaded file.
const FormField = "imagen"

type Handler struct {
	svc      *Service
	log      *zap.Logger
	maxBytes int64
}

func NewHandler(svc *Service, log *zap.Logger, maxBytes int64) *Handler {
	return &Handler{svc: svc, log: log, maxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	g := rg.Group("/imagenes")
	g.GET("", h.list)
	g.GET("/original/:id", h.original)
	g.GET("/resized/:id", h.resized)
	g.GET("/:id", h.get)

	admin := g.Group("", adminMW)
	admin.POST("", h.upload)
	admin.PATCH("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, docs)
}

func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) upload(c *gin.Context) {
	name, data, err := ReadFormImage(c, h.maxBytes)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	doc, err := h.svc.Upload(c.Request.Context(), name, data)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, doc)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateImageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, doc)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Message(c, "Imagen eliminada")
}

func (h *Handler) original(c *gin.Context) {
	dl, err := h.svc.Original(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	sendAttachment(c, dl)
}

func (h *Handler) resized(c *gin.Context) {
	dl, err := h.svc.Resized(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	sendAttachment(c, dl)
}

func sendAttachment(c *gin.Context, dl *Download) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", dl.Filename))
	c.Data(http.StatusOK, dl.ContentType, dl.Data)
}

// ReadFormImage reads the "imagen" multipart file, bounded by maxBytes.
func ReadFormImage(c *gin.Context, maxBytes int64) (string, []byte, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	fileHeader, err := c.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, apperr.Validation("La imagen supera el tamaño máximo permitido")
		}
		return "", nil, apperr.Validation("No se ha proporcionado ninguna imagen")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return fileHeader.Filename, data, nil
}

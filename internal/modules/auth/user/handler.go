package user

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zenith-gallery/core/internal/middleware"
	"github.com/zenith-gallery/core/internal/models"
	"github.com/zenith-gallery/core/internal/modules/media/image"
	"github.com/zenith-gallery/core/internal/pkg/response"
	"go.uber.org/zap"
)

// ImageUploader stores an uploaded picture. *image.Service implements it.
type ImageUploader interface {
	Upload(ctx context.Context, originalName string, data []byte) (*models.Image, error)
}

type Handler struct {
	svc      *Service
	images   ImageUploader
	log      *zap.Logger
	maxBytes int64
}

func NewHandler(svc *Service, images ImageUploader, log *zap.Logger, maxBytes int64) *Handler {
	return &Handler{svc: svc, images: images, log: log, maxBytes: maxBytes}
}

// RegisterRoutes mounts /user; every route requires authMW.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/user", authMW)
	g.GET("/profile", h.profile)
	g.PATCH("/update", h.update)
	g.DELETE("/delete", h.delete)
	g.POST("/upload/profile-image", h.uploadProfileImage)
	g.POST("/upload/cover-image", h.uploadCoverImage)
}

func (h *Handler) profile(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, profileResponse{
		Nombre:          u.Nombre,
		Email:           u.Email,
		CreatedAt:       u.CreatedAt,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		CoverImageURL:   u.CoverImageURL,
	})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Message(c, "Usuario eliminado")
}

func (h *Handler) uploadProfileImage(c *gin.Context) {
	h.uploadAndSet(c, h.svc.SetProfileImage, "Imagen de perfil actualizada")
}

func (h *Handler) uploadCoverImage(c *gin.Context) {
	h.uploadAndSet(c, h.svc.SetCoverImage, "Imagen de portada actualizada")
}

func (h *Handler) uploadAndSet(c *gin.Context, set func(context.Context, string, string) error, message string) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	if _, err := h.svc.GetByID(ctx, userID); err != nil {
		response.Error(c, h.log, err)
		return
	}

	name, data, err := image.ReadFormImage(c, h.maxBytes)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	img, err := h.images.Upload(ctx, name, data)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	if err := set(ctx, userID, img.URL); err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, uploadResponse{Message: message, URL: img.URL})
}

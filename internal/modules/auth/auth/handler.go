package auth

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.Created(c, tokenResponse{Token: token})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.svc.Login(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	response.OK(c, tokenResponse{Token: token})
}

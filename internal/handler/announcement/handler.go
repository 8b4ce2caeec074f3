package announcement

import (
	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/internal/model"
	announcementService "github.com/huellas-salud/vet-api/internal/service/announcement"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/httputil"
)

type Handler struct {
	service *announcementService.Service
}

func NewHandler(service *announcementService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	announcements := r.Group("/announcements")
	{
		announcements.POST("", h.Create)
		announcements.GET("", h.List)
		announcements.GET("/active", h.ListActive)
		announcements.GET("/:id", h.Get)
		announcements.PUT("/:id", h.Update)
		announcements.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	announcement, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, announcement)
}

func (h *Handler) Get(c *gin.Context) {
	announcement, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, announcement)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	announcement, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, announcement)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) List(c *gin.Context) {
	announcements, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, announcements)
}

func (h *Handler) ListActive(c *gin.Context) {
	announcements, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, announcements)
}

package pet

import (
	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/internal/model"
	petService "github.com/huellas-salud/vet-api/internal/service/pet"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/httputil"
)

type Handler struct {
	service *petService.Service
}

func NewHandler(service *petService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	pets := r.Group("/pets")
	{
		pets.POST("", h.Create)
		pets.GET("", h.List)
		pets.GET("/:id", h.Get)
		pets.PUT("/:id", h.Update)
		pets.DELETE("/:id", h.Delete)
		pets.GET("/owner/:ownerId", h.ListByOwner)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	pet, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, pet)
}

func (h *Handler) Get(c *gin.Context) {
	pet, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pet)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	pet, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pet)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) List(c *gin.Context) {
	pets, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pets)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	pets, err := h.service.ListByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, pets)
}

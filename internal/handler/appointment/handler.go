package appointment

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/huellas-salud/vet-api/internal/model"
	appointmentService "github.com/huellas-salud/vet-api/internal/service/appointment"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
	"github.com/huellas-salud/vet-api/pkg/httputil"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Delete)
		appointments.GET("/:id/price", h.EstimatePrice)
		appointments.GET("/owner/:ownerId", h.ListByOwner)
		appointments.GET("/veterinarian/:vetId", h.ListByVeterinarian)
		appointments.GET("/veterinarian/:vetId/slots", h.AvailableSlots)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	apt, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithNoContent(c)
}

func (h *Handler) List(c *gin.Context) {
	apts, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apts)
}

func (h *Handler) ListByOwner(c *gin.Context) {
	apts, err := h.service.ListByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apts)
}

func (h *Handler) ListByVeterinarian(c *gin.Context) {
	apts, err := h.service.ListByVeterinarian(c.Request.Context(), c.Param("vetId"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apts)
}

// EstimatePrice returns the weight-adjusted total for the appointment's
// services.
func (h *Handler) EstimatePrice(c *gin.Context) {
	price, err := h.service.EstimatePrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"price": price})
}

// AvailableSlots serves GET .../veterinarian/:vetId/slots?date=2006-01-02.
func (h *Handler) AvailableSlots(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("date must be formatted as 2006-01-02", err))
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), c.Param("vetId"), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/handler"
	"github.com/Debye-Igor/centro-paye-sistema/internal/middleware"
	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar", h.Calendar)
	rg.GET("/appointments", h.ListAppointments)
	rg.POST("/appointments", h.CreateAppointment)
	rg.GET("/appointments/:id", h.GetAppointment)
	rg.POST("/appointments/:id/reschedule", h.MarkForReschedule)
	rg.DELETE("/appointments/:id", h.DeleteAppointment)
	rg.GET("/appointments/availability", h.Availability)
	rg.GET("/practitioners", h.ListPractitioners)
}

// Calendar returns the weekly grid with its occupied-slot map. The
// optional week_of query pins the week; default is the current one.
func (h *Handler) Calendar(c *gin.Context) {
	view, err := h.service.CalendarWeek(c.Request.Context(), c.Query("week_of"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.BookAppointment(c.Request.Context(), middleware.ActorID(c), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

// ListAppointments returns scheduled appointments in [from, through],
// defaulting to the current week.
func (h *Handler) ListAppointments(c *gin.Context) {
	from := c.Query("from")
	through := c.Query("through")
	if from == "" || through == "" {
		today := time.Now().Format(model.DateLayout)
		from, through = today, today
	}

	appointments, err := h.service.ListScheduled(c.Request.Context(), from, through)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) MarkForReschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.MarkRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.MarkForReschedule(c.Request.Context(), middleware.ActorID(c), id, req.Reason)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"deleted": id}))
}

// Availability lists the free slots for a date and practitioner.
func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}
	practitionerID, err := uuid.Parse(c.Query("practitioner_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid practitioner ID"))
		return
	}

	slots := h.service.AvailableSlots(c.Request.Context(), date, practitionerID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) ListPractitioners(c *gin.Context) {
	practitioners, err := h.service.Practitioners(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(practitioners))
}

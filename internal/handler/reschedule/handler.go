package reschedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Debye-Igor/centro-paye-sistema/internal/handler"
	"github.com/Debye-Igor/centro-paye-sistema/internal/middleware"
	"github.com/Debye-Igor/centro-paye-sistema/internal/model"
	"github.com/Debye-Igor/centro-paye-sistema/internal/service/schedule"
)

// Handler serves the reschedule queue and commit workflow; all routes
// here are admin-only.
type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reschedules", h.Queue)
	rg.GET("/reschedules/:id/options", h.Options)
	rg.POST("/reschedules/:id/commit", h.Commit)
}

func (h *Handler) Queue(c *gin.Context) {
	items, err := h.service.RescheduleQueue(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

// Options returns the data the reschedule form needs for one pending
// appointment: its summary, free slots for the chosen date and
// practitioner, and the rest of the roster.
func (h *Handler) Options(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	practitionerID := uuid.Nil
	if raw := c.Query("practitioner_id"); raw != "" {
		practitionerID, err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid practitioner ID"))
			return
		}
	}

	options, err := h.service.RescheduleOptions(c.Request.Context(), id, c.Query("date"), practitionerID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(options))
}

func (h *Handler) Commit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.CommitRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	successor, err := h.service.CommitReschedule(c.Request.Context(), middleware.ActorID(c), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(successor))
}

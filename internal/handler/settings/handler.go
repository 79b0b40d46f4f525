package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Debye-Igor/centro-paye-sistema/internal/handler"
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
	rg.GET("/settings/hours", h.GetOperatingHours)
	rg.PUT("/settings/hours", h.UpdateOperatingHours)
}

func (h *Handler) GetOperatingHours(c *gin.Context) {
	hours, err := h.service.OperatingHours(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hours))
}

func (h *Handler) UpdateOperatingHours(c *gin.Context) {
	var req model.UpdateOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	hours, err := h.service.UpdateOperatingHours(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hours))
}

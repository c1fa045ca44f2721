package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prize-draw-backend/internal/features/configuration/models"
	"prize-draw-backend/internal/features/configuration/repository"
	configservice "prize-draw-backend/internal/features/configuration/service"
	drawservice "prize-draw-backend/internal/features/draw/service"
)

type ConfigurationHandler struct {
	service *configservice.ConfigurationService
}

func NewConfigurationHandler(service *configservice.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{service: service}
}

func (h *ConfigurationHandler) RegisterRoutes(router *gin.RouterGroup) {
	configs := router.Group("/configurations")
	{
		configs.POST("", h.create)
		configs.GET("", h.list)
		configs.GET("/presets", h.presets)
		configs.GET("/:id", h.getByID)
		configs.PUT("/:id", h.update)
		configs.DELETE("/:id", h.delete)
	}
}

func (h *ConfigurationHandler) create(c *gin.Context) {
	var input models.ConfigurationCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

func (h *ConfigurationHandler) list(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configurations": configs})
}

func (h *ConfigurationHandler) presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"round_counts": configservice.RoundCountPresets})
}

func (h *ConfigurationHandler) getByID(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHandler) update(c *gin.Context) {
	var input models.ConfigurationUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConfigurationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrConfigurationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, drawservice.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/service/inventory"
)

// SiloHandler exposes the silo registry over HTTP.
type SiloHandler struct {
	registry *inventory.Registry
	loc      *time.Location
	logger   *zap.Logger
}

// NewSiloHandler constructs the HTTP handler adapter for silo operations.
func NewSiloHandler(registry *inventory.Registry, loc *time.Location, logger *zap.Logger) *SiloHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SiloHandler{registry: registry, loc: loc, logger: logger}
}

type siloResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Cereal    *models.Cereal `json:"cereal"`
	BalanceKg int64          `json:"balance_kg"`
	CreatedAt string         `json:"created_at"`
}

// List returns every silo ordered by id.
func (h *SiloHandler) List(c *gin.Context) {
	silos, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing silos", zap.Error(err))
		writeError(c, err)
		return
	}

	resp := make([]siloResponse, 0, len(silos))
	for _, silo := range silos {
		resp = append(resp, siloResponse{
			ID:        silo.ID,
			Name:      silo.Name,
			Cereal:    cerealOrNil(silo.Cereal),
			BalanceKg: silo.BalanceKg,
			CreatedAt: formatTimestamp(silo.CreatedAt, h.loc),
		})
	}

	c.JSON(http.StatusOK, resp)
}

// Create registers a new silo.
func (h *SiloHandler) Create(c *gin.Context) {
	var input models.CreateSiloInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid create payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	silo, err := h.registry.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Silo %q created.", silo.Name),
		"id":      silo.ID,
	})
}

// Rename updates a silo's name.
func (h *SiloHandler) Rename(c *gin.Context) {
	id, ok := h.siloID(c)
	if !ok {
		return
	}

	var input models.RenameSiloInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid rename payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	silo, err := h.registry.Rename(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Silo renamed to %q.", silo.Name),
	})
}

// Delete removes a silo and its operation history.
func (h *SiloHandler) Delete(c *gin.Context) {
	id, ok := h.siloID(c)
	if !ok {
		return
	}

	if err := h.registry.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Silo deleted."})
}

// Load records a load operation against a silo.
func (h *SiloHandler) Load(c *gin.Context) {
	id, ok := h.siloID(c)
	if !ok {
		return
	}

	var input models.LoadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid load payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	silo, err := h.registry.Load(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Load recorded.",
		"balance_kg": silo.BalanceKg,
		"cereal":     silo.Cereal,
	})
}

// Unload records an unload operation against a silo.
func (h *SiloHandler) Unload(c *gin.Context) {
	id, ok := h.siloID(c)
	if !ok {
		return
	}

	var input models.UnloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid unload payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	silo, err := h.registry.Unload(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Unload recorded.",
		"balance_kg": silo.BalanceKg,
	})
}

func (h *SiloHandler) siloID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid silo id"})
		return 0, false
	}
	return uint(id), true
}

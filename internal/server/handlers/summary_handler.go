package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/service/ledger"
)

// SummaryHandler exposes the operations ledger view over HTTP.
type SummaryHandler struct {
	ledger *ledger.Ledger
	loc    *time.Location
	logger *zap.Logger
}

// NewSummaryHandler constructs the HTTP handler adapter for the summary view.
func NewSummaryHandler(opLedger *ledger.Ledger, loc *time.Location, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryHandler{ledger: opLedger, loc: loc, logger: logger}
}

type summaryResponse struct {
	ID            uint                 `json:"id"`
	SiloID        uint                 `json:"silo_id"`
	SiloName      *string              `json:"silo_name"`
	Type          models.OperationType `json:"type"`
	AmountKg      int64                `json:"amount"`
	Timestamp     string               `json:"timestamp"`
	BalanceKgPost *int64               `json:"balance_kg_post"`
}

// List returns all operations, most recent first.
func (h *SummaryHandler) List(c *gin.Context) {
	entries, err := h.ledger.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading summary", zap.Error(err))
		writeError(c, err)
		return
	}

	resp := make([]summaryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, summaryResponse{
			ID:            entry.ID,
			SiloID:        entry.SiloID,
			SiloName:      entry.SiloName,
			Type:          entry.Type,
			AmountKg:      entry.AmountKg,
			Timestamp:     formatTimestamp(entry.CreatedAt, h.loc),
			BalanceKgPost: entry.SiloBalanceKg,
		})
	}

	c.JSON(http.StatusOK, resp)
}

package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/service/inventory"
)

// Service aggregates the current inventory into snapshot reports consumed
// by the scheduler, the archive and the webhook notifier.
type Service struct {
	registry    *inventory.Registry
	thresholdKg int64
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a reporting service instance. thresholdKg is the
// balance below which a committed silo is flagged as low stock.
func NewService(registry *inventory.Registry, thresholdKg int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry:    registry,
		thresholdKg: thresholdKg,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateSnapshot reads the registry and produces the aggregated
// inventory state: per-cereal totals, overall mass and low-stock silos.
func (s *Service) GenerateSnapshot(ctx context.Context) (models.InventorySnapshot, error) {
	silos, err := s.registry.List(ctx)
	if err != nil {
		return models.InventorySnapshot{}, fmt.Errorf("load silos for snapshot: %w", err)
	}

	snapshot := models.InventorySnapshot{
		GeneratedAt: s.now().UTC(),
		SiloCount:   len(silos),
		PerCerealKg: make(map[models.Cereal]int64),
	}

	for _, silo := range silos {
		snapshot.TotalBalanceKg += silo.BalanceKg
		if silo.Cereal == "" {
			continue
		}
		snapshot.PerCerealKg[silo.Cereal] += silo.BalanceKg
		if silo.BalanceKg < s.thresholdKg {
			snapshot.LowStock = append(snapshot.LowStock, models.LowStockSilo{
				SiloID:    silo.ID,
				Name:      silo.Name,
				Cereal:    silo.Cereal,
				BalanceKg: silo.BalanceKg,
			})
		}
	}

	return snapshot, nil
}

// FormatSnapshot renders a snapshot as a short human-readable summary.
func (s *Service) FormatSnapshot(snapshot models.InventorySnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory %s: %d silos, %d kg total.",
		snapshot.GeneratedAt.Format("2006-01-02"), snapshot.SiloCount, snapshot.TotalBalanceKg)

	cereals := make([]models.Cereal, 0, len(snapshot.PerCerealKg))
	for cereal := range snapshot.PerCerealKg {
		cereals = append(cereals, cereal)
	}
	sort.Slice(cereals, func(i, j int) bool { return cereals[i] < cereals[j] })
	for _, cereal := range cereals {
		fmt.Fprintf(&b, " %s: %d kg.", cereal, snapshot.PerCerealKg[cereal])
	}

	for _, low := range snapshot.LowStock {
		fmt.Fprintf(&b, " LOW %s (%s): %d kg.", low.Name, low.Cereal, low.BalanceKg)
	}

	return b.String()
}

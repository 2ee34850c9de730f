package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/repository/sqlite"
)

// Ledger is the append-only history of load and unload events. Writes
// happen only through Record, invoked by the registry inside its own
// transaction, so a balance change and its operation row always commit
// together.
type Ledger struct {
	store  *sqlite.Store
	logger *zap.Logger
}

// NewLedger wires a ledger over the shared store.
func NewLedger(store *sqlite.Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, logger: logger}
}

// Record appends one operation row using the caller's transaction.
func (l *Ledger) Record(tx *gorm.DB, siloID uint, opType models.OperationType, amountKg int64) error {
	op := models.Operation{
		SiloID:   siloID,
		Type:     opType,
		AmountKg: amountKg,
	}
	if err := tx.Create(&op).Error; err != nil {
		return fmt.Errorf("failed to append operation: %w", err)
	}
	return nil
}

// Summary returns every operation, most recent first (creation time
// descending, id descending on ties), each joined with the owning silo's
// current name and balance. Entries for a silo that no longer exists keep
// nil name and balance instead of failing the whole view.
func (l *Ledger) Summary(ctx context.Context) ([]models.SummaryEntry, error) {
	var entries []models.SummaryEntry
	err := l.store.DB().WithContext(ctx).
		Table("operations").
		Select("operations.id AS id, operations.silo_id AS silo_id, operations.type AS type, " +
			"operations.amount_kg AS amount_kg, operations.created_at AS created_at, " +
			"silos.name AS silo_name, silos.balance_kg AS silo_balance_kg").
		Joins("LEFT JOIN silos ON silos.id = operations.silo_id").
		Order("operations.created_at DESC, operations.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load operations summary: %w", err)
	}
	return entries, nil
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/repository/sqlite"
	"github.com/mamadbah2/silotrack/internal/service/ledger"
)

// Registry is the authoritative store of silo identities and balances.
// Every mutation runs as one transaction: the balance change and, for
// load/unload, the matching ledger row commit together or not at all.
type Registry struct {
	store  *sqlite.Store
	ledger *ledger.Ledger
	logger *zap.Logger
}

// NewRegistry wires a registry over the shared store and ledger.
func NewRegistry(store *sqlite.Store, opLedger *ledger.Ledger, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{store: store, ledger: opLedger, logger: logger}
}

// Create registers a new silo with zero balance and no committed cereal.
func (r *Registry) Create(ctx context.Context, input models.CreateSiloInput) (*models.Silo, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}

	silo := models.Silo{Name: name}
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&silo).Error; err != nil {
			if sqlite.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %q", models.ErrDuplicateName, name)
			}
			return fmt.Errorf("failed to create silo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("silo created", zap.Uint("silo_id", silo.ID), zap.String("name", silo.Name))
	return &silo, nil
}

// Rename changes a silo's name and nothing else.
func (r *Registry) Rename(ctx context.Context, id uint, input models.RenameSiloInput) (*models.Silo, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}

	var silo models.Silo
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := findSilo(tx, id, &silo); err != nil {
			return err
		}
		silo.Name = name
		if err := tx.Save(&silo).Error; err != nil {
			if sqlite.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %q", models.ErrDuplicateName, name)
			}
			return fmt.Errorf("failed to rename silo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("silo renamed", zap.Uint("silo_id", silo.ID), zap.String("name", silo.Name))
	return &silo, nil
}

// Delete removes a silo together with all of its operations. Deletion is
// unconditional once the silo exists; a non-zero balance does not block it.
func (r *Registry) Delete(ctx context.Context, id uint) error {
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		var silo models.Silo
		if err := findSilo(tx, id, &silo); err != nil {
			return err
		}
		if err := tx.Where("silo_id = ?", id).Delete(&models.Operation{}).Error; err != nil {
			return fmt.Errorf("failed to delete silo operations: %w", err)
		}
		if err := tx.Delete(&silo).Error; err != nil {
			return fmt.Errorf("failed to delete silo: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("silo deleted", zap.Uint("silo_id", id))
	return nil
}

// Load adds mass to a silo. A fresh silo (zero balance, no cereal) must be
// given a valid cereal, which becomes the silo's committed variety; after
// that, any load naming a different cereal is rejected, regardless of the
// current balance. Emptying a silo never releases the lock.
func (r *Registry) Load(ctx context.Context, id uint, input models.LoadInput) (*models.Silo, error) {
	if input.AmountKg <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", models.ErrInvalidInput)
	}
	if input.Cereal != "" && !input.Cereal.Valid() {
		return nil, fmt.Errorf("%w: unknown cereal %q", models.ErrInvalidInput, input.Cereal)
	}

	var silo models.Silo
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := findSilo(tx, id, &silo); err != nil {
			return err
		}
		if silo.BalanceKg == 0 && silo.Cereal == "" {
			if input.Cereal == "" {
				return fmt.Errorf("%w: must select cereal type (Soy, Corn, Wheat, Sunflower)", models.ErrInvalidInput)
			}
			silo.Cereal = input.Cereal
		}
		if silo.Cereal != "" && input.Cereal != "" && input.Cereal != silo.Cereal {
			return fmt.Errorf("%w: silo already stores %s", models.ErrCerealMismatch, silo.Cereal)
		}
		silo.BalanceKg += input.AmountKg
		if err := tx.Save(&silo).Error; err != nil {
			return fmt.Errorf("failed to update silo balance: %w", err)
		}
		return r.ledger.Record(tx, silo.ID, models.OperationLoad, input.AmountKg)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("load recorded",
		zap.Uint("silo_id", silo.ID),
		zap.Int64("amount_kg", input.AmountKg),
		zap.Int64("balance_kg", silo.BalanceKg),
		zap.String("cereal", string(silo.Cereal)))
	return &silo, nil
}

// Unload removes mass from a silo. The balance never goes negative; the
// committed cereal is untouched even when the silo is emptied.
func (r *Registry) Unload(ctx context.Context, id uint, input models.UnloadInput) (*models.Silo, error) {
	if input.AmountKg <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", models.ErrInvalidInput)
	}

	var silo models.Silo
	err := r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := findSilo(tx, id, &silo); err != nil {
			return err
		}
		if silo.BalanceKg-input.AmountKg < 0 {
			return fmt.Errorf("%w: balance %d kg, requested %d kg", models.ErrInsufficientStock, silo.BalanceKg, input.AmountKg)
		}
		silo.BalanceKg -= input.AmountKg
		if err := tx.Save(&silo).Error; err != nil {
			return fmt.Errorf("failed to update silo balance: %w", err)
		}
		return r.ledger.Record(tx, silo.ID, models.OperationUnload, input.AmountKg)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("unload recorded",
		zap.Uint("silo_id", silo.ID),
		zap.Int64("amount_kg", input.AmountKg),
		zap.Int64("balance_kg", silo.BalanceKg))
	return &silo, nil
}

// List returns every silo ordered by id ascending.
func (r *Registry) List(ctx context.Context) ([]models.Silo, error) {
	var silos []models.Silo
	if err := r.store.DB().WithContext(ctx).Order("id ASC").Find(&silos).Error; err != nil {
		return nil, fmt.Errorf("failed to list silos: %w", err)
	}
	return silos, nil
}

func findSilo(tx *gorm.DB, id uint, silo *models.Silo) error {
	if err := tx.First(silo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", models.ErrNotFound, id)
		}
		return fmt.Errorf("failed to look up silo: %w", err)
	}
	return nil
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/silotrack/internal/domain/models"
	"github.com/mamadbah2/silotrack/internal/repository/sqlite"
	"github.com/mamadbah2/silotrack/internal/service/inventory"
	"github.com/mamadbah2/silotrack/internal/service/ledger"
)

type testEnv struct {
	store    *sqlite.Store
	ledger   *ledger.Ledger
	registry *inventory.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	opLedger := ledger.NewLedger(store, nil)
	registry := inventory.NewRegistry(store, opLedger, nil)

	return &testEnv{store: store, ledger: opLedger, registry: registry}
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "  North A  "})
	require.NoError(t, err)
	assert.Equal(t, "North A", silo.Name)
	assert.Equal(t, int64(0), silo.BalanceKg)
	assert.Equal(t, models.Cereal(""), silo.Cereal)
	assert.NotZero(t, silo.ID)
	assert.False(t, silo.CreatedAt.IsZero())
}

func TestCreateEmptyName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "   "})
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "North A"})
	require.NoError(t, err)

	// Trimming applies before the uniqueness check
	_, err = env.registry.Create(ctx, models.CreateSiloInput{Name: " North A "})
	require.ErrorIs(t, err, models.ErrDuplicateName)

	// Name matching is case-sensitive
	_, err = env.registry.Create(ctx, models.CreateSiloInput{Name: "north a"})
	require.NoError(t, err)
}

func TestRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "A"})
	require.NoError(t, err)
	_, err = env.registry.Create(ctx, models.CreateSiloInput{Name: "B"})
	require.NoError(t, err)

	_, err = env.registry.Rename(ctx, a.ID, models.RenameSiloInput{Name: "B"})
	require.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = env.registry.Rename(ctx, a.ID, models.RenameSiloInput{Name: ""})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.registry.Rename(ctx, 9999, models.RenameSiloInput{Name: "C"})
	require.ErrorIs(t, err, models.ErrNotFound)

	renamed, err := env.registry.Rename(ctx, a.ID, models.RenameSiloInput{Name: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "A2", renamed.Name)
}

func TestRenameReflectedInSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "A"})
	require.NoError(t, err)
	_, err = env.registry.Load(ctx, a.ID, models.LoadInput{AmountKg: 100, Cereal: models.CerealSoy})
	require.NoError(t, err)

	_, err = env.registry.Rename(ctx, a.ID, models.RenameSiloInput{Name: "A2"})
	require.NoError(t, err)

	entries, err := env.ledger.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].SiloName)
	assert.Equal(t, "A2", *entries[0].SiloName)
}

func TestLoadRequiresCerealOnFreshSilo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "Fresh"})
	require.NoError(t, err)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 50})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 50, Cereal: "Rice"})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	loaded, err := env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 50, Cereal: models.CerealWheat})
	require.NoError(t, err)
	assert.Equal(t, int64(50), loaded.BalanceKg)
	assert.Equal(t, models.CerealWheat, loaded.Cereal)
}

func TestLoadValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "V"})
	require.NoError(t, err)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 0, Cereal: models.CerealSoy})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: -5, Cereal: models.CerealSoy})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = env.registry.Load(ctx, 9999, models.LoadInput{AmountKg: 10, Cereal: models.CerealSoy})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCerealLockPersistsAcrossZeroBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "A"})
	require.NoError(t, err)

	loaded, err := env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 100, Cereal: models.CerealSoy})
	require.NoError(t, err)
	assert.Equal(t, int64(100), loaded.BalanceKg)
	assert.Equal(t, models.CerealSoy, loaded.Cereal)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 50, Cereal: models.CerealCorn})
	require.ErrorIs(t, err, models.ErrCerealMismatch)

	// The failed load changed nothing
	silos, err := env.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, silos, 1)
	assert.Equal(t, int64(100), silos[0].BalanceKg)

	unloaded, err := env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), unloaded.BalanceKg)
	assert.Equal(t, models.CerealSoy, unloaded.Cereal)

	// Emptying the silo does not release the cereal lock
	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 20, Cereal: models.CerealCorn})
	require.ErrorIs(t, err, models.ErrCerealMismatch)

	reloaded, err := env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 20, Cereal: models.CerealSoy})
	require.NoError(t, err)
	assert.Equal(t, int64(20), reloaded.BalanceKg)
}

func TestLoadWithoutCerealOnStockedSilo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "S"})
	require.NoError(t, err)
	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 10, Cereal: models.CerealCorn})
	require.NoError(t, err)

	loaded, err := env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(15), loaded.BalanceKg)
	assert.Equal(t, models.CerealCorn, loaded.Cereal)
}

func TestUnloadInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "B"})
	require.NoError(t, err)

	_, err = env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 10})
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 30, Cereal: models.CerealSunflower})
	require.NoError(t, err)

	_, err = env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 31})
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	// Balance untouched by the rejected unloads
	silos, err := env.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, silos, 1)
	assert.Equal(t, int64(30), silos[0].BalanceKg)

	// Rejected unloads also leave no ledger rows behind
	entries, err := env.ledger.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnloadValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registry.Unload(ctx, 9999, models.UnloadInput{AmountKg: 10})
	require.ErrorIs(t, err, models.ErrNotFound)

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "U"})
	require.NoError(t, err)

	_, err = env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 0})
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestDeleteCascadesToOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	keep, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "Keep"})
	require.NoError(t, err)
	doomed, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "Doomed"})
	require.NoError(t, err)

	_, err = env.registry.Load(ctx, keep.ID, models.LoadInput{AmountKg: 10, Cereal: models.CerealSoy})
	require.NoError(t, err)
	_, err = env.registry.Load(ctx, doomed.ID, models.LoadInput{AmountKg: 20, Cereal: models.CerealCorn})
	require.NoError(t, err)
	_, err = env.registry.Unload(ctx, doomed.ID, models.UnloadInput{AmountKg: 5})
	require.NoError(t, err)

	require.NoError(t, env.registry.Delete(ctx, doomed.ID))
	require.ErrorIs(t, env.registry.Delete(ctx, doomed.ID), models.ErrNotFound)

	entries, err := env.ledger.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].SiloID)
}

func TestListOrderedByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"C", "A", "B"} {
		_, err := env.registry.Create(ctx, models.CreateSiloInput{Name: name})
		require.NoError(t, err)
	}

	silos, err := env.registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, silos, 3)
	for i := 1; i < len(silos); i++ {
		assert.Greater(t, silos[i].ID, silos[i-1].ID)
	}
}

func TestBalanceNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	silo, err := env.registry.Create(ctx, models.CreateSiloInput{Name: "Adversarial"})
	require.NoError(t, err)

	_, err = env.registry.Load(ctx, silo.ID, models.LoadInput{AmountKg: 7, Cereal: models.CerealWheat})
	require.NoError(t, err)

	for _, amount := range []int64{8, 100, 1 << 40} {
		_, err = env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: amount})
		require.ErrorIs(t, err, models.ErrInsufficientStock)
	}

	unloaded, err := env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(0), unloaded.BalanceKg)

	_, err = env.registry.Unload(ctx, silo.ID, models.UnloadInput{AmountKg: 1})
	require.ErrorIs(t, err, models.ErrInsufficientStock)
}

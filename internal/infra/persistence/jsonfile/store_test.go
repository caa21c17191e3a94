package jsonfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"larder/internal/domain/entity"
	"larder/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	path := filepath.Join(t.TempDir(), "larder.json")
	store, err := NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return store, path
}

func TestStore_InventoryRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()
	repo := NewInventoryRepository(store)

	unit := &entity.StorageUnit{Name: "Fridge", Kind: entity.UnitKindFridge}
	require.NoError(t, repo.CreateUnit(ctx, unit))
	require.NoError(t, repo.UpsertItem(ctx, "Fridge", &entity.ItemRecord{
		Name:           "Milk",
		Quantity:       2,
		Category:       entity.CategoryDairy,
		DateAdded:      "2025-03-10",
		ExpirationDate: "2025-03-14",
	}))

	// A fresh store reading the same file sees the persisted state.
	reopened, err := NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	found, err := NewInventoryRepository(reopened).FindUnit(ctx, "Fridge")
	require.NoError(t, err)
	assert.Equal(t, entity.UnitKindFridge, found.Kind)
	require.Len(t, found.Contents, 1)
	assert.Equal(t, "Milk", found.Contents[0].Name)
	assert.Equal(t, 2, found.Contents[0].Quantity)
}

func TestStore_DuplicateUnitRejected(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	repo := NewInventoryRepository(store)

	require.NoError(t, repo.CreateUnit(ctx, &entity.StorageUnit{Name: "Pantry", Kind: entity.UnitKindPantry}))

	err := repo.CreateUnit(ctx, &entity.StorageUnit{Name: "Pantry", Kind: entity.UnitKindPantry})
	assert.ErrorIs(t, err, repository.ErrUnitAlreadyExists)
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, NewInventoryRepository(store).CreateUnit(ctx, &entity.StorageUnit{
		Name: "Fridge",
		Kind: entity.UnitKindFridge,
	}))

	txManager := NewTransactionManager(store)
	err := txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invRepo := repoFactory.NewInventoryRepository()
		if err := invRepo.UpsertItem(ctx, "Fridge", &entity.ItemRecord{Name: "Milk", Quantity: 1, Category: entity.CategoryDairy}); err != nil {
			return err
		}

		// Second step fails, the milk above must not survive.
		return invRepo.UpsertItem(ctx, "NoSuchUnit", &entity.ItemRecord{Name: "Eggs", Quantity: 6, Category: entity.CategoryOther})
	})
	require.ErrorIs(t, err, repository.ErrUnitNotFound)

	unit, err := NewInventoryRepository(store).FindUnit(ctx, "Fridge")
	require.NoError(t, err)
	assert.Empty(t, unit.Contents)
}

func TestStore_TransactionCommitsAtomically(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	txManager := NewTransactionManager(store)
	err := txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewInventoryRepository().CreateUnit(ctx, &entity.StorageUnit{
			Name: "Freezer",
			Kind: entity.UnitKindFreezer,
		}); err != nil {
			return err
		}

		return repoFactory.NewReminderRepository().MarkKeys(ctx, []string{"Freezer_Peas"})
	})
	require.NoError(t, err)

	keys, err := NewReminderRepository(store).ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Freezer_Peas"}, keys)
}

func TestStore_ReminderPrefixClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	repo := NewReminderRepository(store)

	require.NoError(t, repo.MarkKeys(ctx, []string{"Fridge_Milk", "Fridge_Eggs", "Pantry_Rice"}))
	require.NoError(t, repo.ClearKeysWithPrefix(ctx, "Fridge_"))

	keys, err := repo.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pantry_Rice"}, keys)
}

func TestStore_ConfigLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	repo := NewConfigRepository(store)

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, repository.ErrConfigNotFound)

	cfg := &entity.NotificationConfig{
		Recipient:   "home@example.com",
		Schedule:    entity.Schedule{Weekdays: []int{0, 3}, Time: "08:00"},
		Preferences: entity.DefaultPreferences(),
	}
	require.NoError(t, repo.Save(ctx, cfg))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "home@example.com", loaded.Recipient)
	assert.Equal(t, []int{0, 3}, loaded.Schedule.Weekdays)
	assert.Nil(t, loaded.LastSent)
}

func TestStore_CorruptUserIDSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "larder.json")
	raw := `{"units":[],"history":[],"reminders":[],"users":[{"id":"not-a-uuid","username":"alice","password_hash":"$hash","role":"user"}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	store, err := NewStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ctx := context.Background()
	repo := NewUserRepository(store)

	_, err = repo.FindByUsername(ctx, "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt user id")

	_, err = repo.List(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt user id")
}

func TestStore_UserLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	repo := NewUserRepository(store)

	user := &entity.User{Username: "alice", PasswordHash: "$hash", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	err := repo.Create(ctx, &entity.User{Username: "alice", PasswordHash: "$other", Role: entity.RoleUser})
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, repo.Delete(ctx, "alice"))
	_, err = repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

package repository

import (
	"context"
	"testing"

	"larder/internal/domain/repository"
)

// MockRepositoryFactory hands out the fixed repository mocks it was built
// with, so expectations can be set on them before running a transaction.
type MockRepositoryFactory struct {
	InventoryRepo *MockInventoryRepository
	HistoryRepo   *MockHistoryRepository
	ReminderRepo  *MockReminderRepository
	ConfigRepo    *MockConfigRepository
	UserRepo      *MockUserRepository
}

// NewMockRepositoryFactory creates a factory with every repository mocked.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	return &MockRepositoryFactory{
		InventoryRepo: NewMockInventoryRepository(t),
		HistoryRepo:   NewMockHistoryRepository(t),
		ReminderRepo:  NewMockReminderRepository(t),
		ConfigRepo:    NewMockConfigRepository(t),
		UserRepo:      NewMockUserRepository(t),
	}
}

func (f *MockRepositoryFactory) NewInventoryRepository() repository.InventoryRepository {
	return f.InventoryRepo
}

func (f *MockRepositoryFactory) NewHistoryRepository() repository.HistoryRepository {
	return f.HistoryRepo
}

func (f *MockRepositoryFactory) NewReminderRepository() repository.ReminderRepository {
	return f.ReminderRepo
}

func (f *MockRepositoryFactory) NewConfigRepository() repository.ConfigRepository {
	return f.ConfigRepo
}

func (f *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.UserRepo
}

// MockTransactionManager runs the callback against its factory without any
// real database transaction, which is exactly what usecase tests need.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory
}

// NewMockTransactionManager creates a transaction manager backed by mocks.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	return &MockTransactionManager{Factory: NewMockRepositoryFactory(t)}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

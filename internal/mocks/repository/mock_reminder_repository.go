package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockReminderRepository is a mock implementation of repository.ReminderRepository.
type MockReminderRepository struct {
	mock.Mock
}

// NewMockReminderRepository creates a mock wired to the test lifecycle.
func NewMockReminderRepository(t *testing.T) *MockReminderRepository {
	m := &MockReminderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReminderRepository) ListKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReminderRepository) MarkKeys(ctx context.Context, keys []string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockReminderRepository) ClearKey(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockReminderRepository) ClearKeysWithPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *MockReminderRepository) ClearAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

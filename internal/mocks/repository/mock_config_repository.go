package repository

import (
	"context"
	"testing"
	"time"

	"larder/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockConfigRepository is a mock implementation of repository.ConfigRepository.
type MockConfigRepository struct {
	mock.Mock
}

// NewMockConfigRepository creates a mock wired to the test lifecycle.
func NewMockConfigRepository(t *testing.T) *MockConfigRepository {
	m := &MockConfigRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockConfigRepository) Get(ctx context.Context) (*entity.NotificationConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.NotificationConfig), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, cfg *entity.NotificationConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockConfigRepository) UpdateLastSent(ctx context.Context, lastSent *time.Time) error {
	return m.Called(ctx, lastSent).Error(0)
}

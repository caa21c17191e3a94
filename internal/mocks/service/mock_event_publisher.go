package service

import (
	"context"
	"testing"

	"larder/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock wired to the test lifecycle.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishInventoryEvent(ctx context.Context, event *service.InventoryEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// Package usecase provides testify mocks for application-layer contracts.
package usecase

import (
	"context"
	"testing"

	"larder/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockMutationNotifier is a mock implementation of usecase.MutationNotifier.
type MockMutationNotifier struct {
	mock.Mock
}

// NewMockMutationNotifier creates a mock wired to the test lifecycle.
func NewMockMutationNotifier(t *testing.T) *MockMutationNotifier {
	m := &MockMutationNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMutationNotifier) NotifyMutation(ctx context.Context, event *service.InventoryEvent) error {
	return m.Called(ctx, event).Error(0)
}

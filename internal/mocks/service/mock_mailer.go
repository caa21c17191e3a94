// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock implementation of service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a mock wired to the test lifecycle.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) Send(ctx context.Context, recipient, subject, body string) error {
	return m.Called(ctx, recipient, subject, body).Error(0)
}

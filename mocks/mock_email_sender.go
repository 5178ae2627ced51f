package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizcardx/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendCard(ctx context.Context, input port.ShareInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

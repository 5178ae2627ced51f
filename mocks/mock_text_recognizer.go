package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bizcardx/internal/extraction"
)

// MockTextRecognizer is a mock implementation of port.TextRecognizer.
type MockTextRecognizer struct {
	mock.Mock
}

func (m *MockTextRecognizer) Recognize(ctx context.Context, image []byte) ([]extraction.RawToken, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]extraction.RawToken), args.Error(1)
}

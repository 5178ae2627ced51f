package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizcardx/internal/domain"
	"bizcardx/internal/service"
)

// MockCardService is a mock implementation of service.CardService.
type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) Extract(ctx context.Context, input service.ImageInput) (*service.ExtractionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionResult), args.Error(1)
}

func (m *MockCardService) ExtractDetections(ctx context.Context, raw []byte) (*service.ExtractionResult, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionResult), args.Error(1)
}

func (m *MockCardService) Create(ctx context.Context, input service.ImageInput) (*domain.BusinessCard, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardService) GetByName(ctx context.Context, name string) (*domain.BusinessCard, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardService) List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BusinessCard), args.Int(1), args.Error(2)
}

func (m *MockCardService) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCardService) ListAll(ctx context.Context) ([]domain.BusinessCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessCard), args.Error(1)
}

func (m *MockCardService) Update(ctx context.Context, id uuid.UUID, fields map[string]string) (*domain.BusinessCard, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardService) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockCardService) GetImageURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockCardService) Share(ctx context.Context, id uuid.UUID, input service.ShareInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

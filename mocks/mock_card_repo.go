package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"bizcardx/internal/domain"
)

// MockCardRepo is a mock implementation of port.CardRepository.
type MockCardRepo struct {
	mock.Mock
}

func (m *MockCardRepo) Create(ctx context.Context, card *domain.BusinessCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardRepo) GetByName(ctx context.Context, name string) (*domain.BusinessCard, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessCard), args.Error(1)
}

func (m *MockCardRepo) List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.BusinessCard), args.Int(1), args.Error(2)
}

func (m *MockCardRepo) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCardRepo) Update(ctx context.Context, card *domain.BusinessCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepo) SetImageKey(ctx context.Context, id uuid.UUID, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockCardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepo) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockCardRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

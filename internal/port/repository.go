package port

import (
	"context"

	"github.com/google/uuid"

	"bizcardx/internal/domain"
)

// CardRepository defines the contract for business card persistence.
type CardRepository interface {
	Create(ctx context.Context, card *domain.BusinessCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BusinessCard, error)
	// GetByName returns the most recently stored card for a cardholder name.
	GetByName(ctx context.Context, name string) (*domain.BusinessCard, error)
	// List omits image bytes. The int is the total matching the filter.
	List(ctx context.Context, filter domain.CardFilter) ([]domain.BusinessCard, int, error)
	ListNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, card *domain.BusinessCard) error
	SetImageKey(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	Ping(ctx context.Context) error
}

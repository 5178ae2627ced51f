package port

import (
	"context"

	"bizcardx/internal/domain"
)

// ShareInput describes one card share.
type ShareInput struct {
	ToEmail string
	ToName  string
	Note    string
	Card    *domain.BusinessCard
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendCard(ctx context.Context, input ShareInput) error
}

// Package noop provides an EmailSender that only logs.
package noop

import (
	"context"

	"go.uber.org/zap"

	"bizcardx/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates a no-op EmailSender for local development.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendCard(_ context.Context, input port.ShareInput) error {
	s.log.Info("noop email: card share",
		zap.String("to", input.ToEmail),
		zap.String("to_name", input.ToName),
		zap.Stringer("card_id", input.Card.ID),
		zap.String("card_name", input.Card.Name),
	)
	return nil
}

package noop

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bizcardx/internal/domain"
	"bizcardx/internal/port"
)

func TestSendCard_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := NewNoopSender(zap.New(core))

	id := uuid.New()
	err := sender.SendCard(context.Background(), port.ShareInput{
		ToEmail: "ops@example.com",
		Card:    &domain.BusinessCard{ID: id, Name: "Selva"},
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ops@example.com", fields["to"])
	assert.Equal(t, id.String(), fields["card_id"])
}

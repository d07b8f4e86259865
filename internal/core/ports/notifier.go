package ports

import (
	"context"

	"github.com/arkade-os/tokend/internal/core/domain"
)

type Notifier interface {
	Publish(ctx context.Context, events ...domain.LedgerEvent) error
	RegisterEventsHandler(eventType domain.EventType, handler func(events []domain.LedgerEvent))
	Close()
}

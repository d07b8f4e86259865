package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type subscriber struct {
	eventType domain.EventType
	handler   func(events []domain.LedgerEvent)
}

type notifier struct {
	publisher message.Publisher

	subscribers    map[domain.EventType][]subscriber
	subscriberLock *sync.Mutex

	// handlers tracks the in-flight handler calls, Close waits for them.
	handlers *sync.WaitGroup
}

// NewNotifier publishes ledger events to the given publisher, one topic per
// event type, and dispatches them to the registered handlers.
func NewNotifier(publisher message.Publisher) ports.Notifier {
	return &notifier{
		publisher:      publisher,
		subscribers:    make(map[domain.EventType][]subscriber),
		subscriberLock: &sync.Mutex{},
		handlers:       &sync.WaitGroup{},
	}
}

// NewInMemoryNotifier is a notifier backed by an in-process go channel
// pubsub.
func NewInMemoryNotifier() ports.Notifier {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewNotifier(pubsub)
}

func (n *notifier) RegisterEventsHandler(
	eventType domain.EventType, handler func(events []domain.LedgerEvent),
) {
	n.subscriberLock.Lock()
	defer n.subscriberLock.Unlock()

	n.subscribers[eventType] = append(n.subscribers[eventType], subscriber{
		eventType: eventType,
		handler:   handler,
	})
}

func (n *notifier) Publish(ctx context.Context, events ...domain.LedgerEvent) error {
	byType := make(map[domain.EventType][]domain.LedgerEvent)
	order := make([]domain.EventType, 0)
	for _, event := range events {
		if _, ok := byType[event.Type]; !ok {
			order = append(order, event.Type)
		}
		byType[event.Type] = append(byType[event.Type], event)
	}

	for _, eventType := range order {
		events := byType[eventType]
		msgs, err := toWatermillMessages(events)
		if err != nil {
			return err
		}
		if err := n.publisher.Publish(string(eventType), msgs...); err != nil {
			return fmt.Errorf("failed to publish %s events: %w", eventType, err)
		}
		n.dispatch(eventType, events)
	}
	return nil
}

func (n *notifier) Close() {
	n.handlers.Wait()
	if err := n.publisher.Close(); err != nil {
		log.WithError(err).Warn("failed to close notifier publisher")
	}
}

func (n *notifier) dispatch(eventType domain.EventType, events []domain.LedgerEvent) {
	n.subscriberLock.Lock()
	defer n.subscriberLock.Unlock()

	for _, subscriber := range n.subscribers[eventType] {
		n.handlers.Add(1)
		go func(handler func(events []domain.LedgerEvent)) {
			defer n.handlers.Done()
			handler(events)
		}(subscriber.handler)
	}
}

func toWatermillMessages(events []domain.LedgerEvent) ([]*message.Message, error) {
	msgs := make([]*message.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event %s: %w", event.Id, err)
		}
		msgs = append(msgs, message.NewMessage(event.Id, payload))
	}
	return msgs, nil
}

// DeserializeEvent decodes the payload of a published message.
func DeserializeEvent(buf []byte) (domain.LedgerEvent, error) {
	var event domain.LedgerEvent
	if err := json.Unmarshal(buf, &event); err != nil {
		return domain.LedgerEvent{}, err
	}
	if len(event.Type) == 0 {
		return domain.LedgerEvent{}, fmt.Errorf("unknown event")
	}
	return event, nil
}

package main

import (
	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// registerEventsLogger logs every committed ledger event. Handlers run until
// the notifier is closed by svc.Stop, so nothing is lost on exit.
func registerEventsLogger(notifier ports.Notifier) {
	for _, eventType := range domain.EventTypes {
		notifier.RegisterEventsHandler(eventType, logEvents)
	}
}

func logEvents(events []domain.LedgerEvent) {
	for _, event := range events {
		entry := log.WithFields(log.Fields{
			"id":       event.Id,
			"type":     event.Type,
			"accounts": event.Accounts,
			"quantity": event.Quantity.String(),
		})
		if len(event.Memo) > 0 {
			entry = entry.WithField("memo", event.Memo)
		}
		if len(event.CreatedNotes) > 0 {
			entry = entry.WithField("created_notes", event.CreatedNotes)
		}
		if len(event.SpentNotes) > 0 {
			entry = entry.WithField("spent_notes", event.SpentNotes)
		}
		entry.Info("ledger event")
	}
}

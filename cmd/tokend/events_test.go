package main

import (
	"context"
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/arkade-os/tokend/internal/infrastructure/notifier"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestEventsLogger(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	log.SetLevel(log.InfoLevel)

	svc := notifier.NewInMemoryNotifier()
	registerEventsLogger(svc)

	quantity := domain.NewAsset(10000, domain.NewSymbol(4, "PEOS"))
	transfer := domain.NewLedgerEvent(
		domain.EventTypeTransferred, 1700000000, quantity, "hello", "alice", "bob",
	)
	loaded := domain.NewLedgerEvent(domain.EventTypeUtxoLoaded, 1700000000, quantity, "", "alice")
	loaded.CreatedNotes = []uint64{1}
	require.NoError(t, svc.Publish(context.Background(), transfer, loaded))

	// Close returns once every handler is done.
	svc.Close()

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	byType := make(map[domain.EventType]*log.Entry)
	for _, entry := range entries {
		require.Equal(t, "ledger event", entry.Message)
		byType[entry.Data["type"].(domain.EventType)] = entry
	}

	transferEntry := byType[domain.EventTypeTransferred]
	require.NotNil(t, transferEntry)
	require.Equal(t, transfer.Id, transferEntry.Data["id"])
	require.Equal(t, "1.0000 PEOS", transferEntry.Data["quantity"])
	require.Equal(t, "hello", transferEntry.Data["memo"])

	loadedEntry := byType[domain.EventTypeUtxoLoaded]
	require.NotNil(t, loadedEntry)
	require.Equal(t, []uint64{1}, loadedEntry.Data["created_notes"])
}

func TestEventsLoggerCoversEveryType(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	log.SetLevel(log.InfoLevel)

	svc := notifier.NewInMemoryNotifier()
	registerEventsLogger(svc)

	quantity := domain.NewAsset(1, domain.NewSymbol(4, "PEOS"))
	for _, eventType := range domain.EventTypes {
		event := domain.NewLedgerEvent(eventType, 1700000000, quantity, "", "alice")
		require.NoError(t, svc.Publish(context.Background(), event))
	}
	svc.Close()

	require.Len(t, hook.AllEntries(), len(domain.EventTypes))
}

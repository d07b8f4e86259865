package domain

import (
	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeTokenCreated      EventType = "token_created"
	EventTypeTokenUpdated      EventType = "token_updated"
	EventTypeIssued            EventType = "issued"
	EventTypeRetired           EventType = "retired"
	EventTypeTransferred       EventType = "transferred"
	EventTypeBalanceOpened     EventType = "balance_opened"
	EventTypeBalanceClosed     EventType = "balance_closed"
	EventTypeBalanceClaimed    EventType = "balance_claimed"
	EventTypeBalanceRecovered  EventType = "balance_recovered"
	EventTypeUtxoLoaded        EventType = "utxo_loaded"
	EventTypeUtxoTransferred   EventType = "utxo_transferred"
	EventTypeStaked            EventType = "staked"
	EventTypeUnstaked          EventType = "unstaked"
	EventTypeDividendsRealized EventType = "dividends_realized"
	EventTypeRefunded          EventType = "refunded"
	EventTypeDistributed       EventType = "distributed"
)

// EventTypes lists every event type published by the ledger.
var EventTypes = []EventType{
	EventTypeTokenCreated,
	EventTypeTokenUpdated,
	EventTypeIssued,
	EventTypeRetired,
	EventTypeTransferred,
	EventTypeBalanceOpened,
	EventTypeBalanceClosed,
	EventTypeBalanceClaimed,
	EventTypeBalanceRecovered,
	EventTypeUtxoLoaded,
	EventTypeUtxoTransferred,
	EventTypeStaked,
	EventTypeUnstaked,
	EventTypeDividendsRealized,
	EventTypeRefunded,
	EventTypeDistributed,
}

// LedgerEvent notifies the accounts involved in a committed operation.
type LedgerEvent struct {
	Id           string
	Type         EventType
	Accounts     []Name
	Quantity     Asset
	Memo         string
	CreatedNotes []uint64
	SpentNotes   []uint64
	Timestamp    int64
}

func NewLedgerEvent(
	eventType EventType, timestamp int64, quantity Asset, memo string, accounts ...Name,
) LedgerEvent {
	return LedgerEvent{
		Id:        uuid.New().String(),
		Type:      eventType,
		Accounts:  accounts,
		Quantity:  quantity,
		Memo:      memo,
		Timestamp: timestamp,
	}
}

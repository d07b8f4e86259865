package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	grpccodes "google.golang.org/grpc/codes"
)

// generateErrorFixtures creates test fixtures with sample metadata for each error type
func generateErrorFixtures() []Error {
	return []Error{
		INTERNAL_ERROR.New("failed to commit ledger transaction").
			WithMetadata(map[string]any{"operation": "transfer"}),

		INVALID_ARGUMENT.New("memo has more than 256 bytes").
			WithMetadata(map[string]any{"memo_size": 300}),

		INVALID_SYMBOL.New("invalid symbol name").
			WithMetadata(SymbolMetadata{Symbol: "4,peos"}),

		INVALID_AMOUNT.New("must issue positive quantity").
			WithMetadata(AmountMetadata{Quantity: "-1.0000 PEOS"}),

		SYMBOL_PRECISION_MISMATCH.New("symbol precision mismatch").
			WithMetadata(SymbolMismatchMetadata{Expected: "4,PEOS", Got: "2,PEOS"}),

		SUPPLY_EXCEEDED.New("quantity exceeds available supply").
			WithMetadata(SupplyMetadata{
				Symbol:    "4,PEOS",
				Supply:    "100.0000 PEOS",
				MaxSupply: "1000.0000 PEOS",
				Quantity:  "950.0000 PEOS",
			}),

		INSUFFICIENT_FUNDS.New("overdrawn balance").
			WithMetadata(BalanceMetadata{
				Owner:     "alice",
				Available: "1.0000 PEOS",
				Requested: "2.0000 PEOS",
			}),

		RECORD_NOT_FOUND.New("no balance object found").
			WithMetadata(RecordMetadata{Table: "accounts", Key: "alice/PEOS"}),

		ALREADY_EXISTS.New("token with symbol already exists").
			WithMetadata(RecordMetadata{Table: "stat", Key: "PEOS"}),

		NOT_EMPTY.New("cannot close because the balance is not zero").
			WithMetadata(BalanceMetadata{Owner: "alice", Available: "1.0000 PEOS"}),

		UNAUTHORIZED.New("missing authority of alice").
			WithMetadata(AccountMetadata{Account: "alice"}),

		UNKNOWN_NOTE.New("unknown utxo").WithMetadata(NoteMetadata{NoteId: 7}),

		BAD_SIGNATURE.New("signature does not match note key").
			WithMetadata(NoteMetadata{NoteId: 7}),

		INPUTS_INSUFFICIENT.New("inputs don't cover outputs").
			WithMetadata(InputsMetadata{InputSum: "1.0000 PEOS", OutputSum: "2.0000 PEOS"}),

		BUDGET_EXCEEDED.New("vesting budget exhausted").
			WithMetadata(BudgetMetadata{
				Account: "peosteamfund", Issued: 10, Requested: 5, Ceiling: 12,
			}),

		ISSUANCE_CLOSED.New("token issuing era finished").
			WithMetadata(AccountMetadata{Account: "bob"}),

		DIVIDENDS_NOT_REALIZED.New("dividends not realized").
			WithMetadata(DividendsMetadata{
				Owner:            "alice",
				PositionFraction: "1.000000000000000000",
				PoolFraction:     "1.500000000000000000",
			}),

		REFUND_NOT_FOUND.New("refund request not found").
			WithMetadata(AccountMetadata{Account: "alice"}),

		REFUND_LOCKED.New("refund is not available yet").
			WithMetadata(RefundLockedMetadata{
				Owner: "alice", RequestTime: 100, AvailableAt: 359300, Now: 200,
			}),
	}
}

func TestErrorFixtures(t *testing.T) {
	fixtures := generateErrorFixtures()

	seen := make(map[uint16]string)
	for _, err := range fixtures {
		require.NotNil(t, err)
		require.NotEmpty(t, err.Error())
		require.Contains(t, err.Error(), err.CodeName())
		require.NotEmpty(t, err.Metadata())
		require.NotNil(t, err.Log())

		name, ok := seen[err.Code()]
		require.False(t, ok, "code %d reused by %s and %s", err.Code(), name, err.CodeName())
		seen[err.Code()] = err.CodeName()
	}
}

func TestErrorMetadata(t *testing.T) {
	err := BUDGET_EXCEEDED.New("vesting budget exhausted").
		WithMetadata(BudgetMetadata{
			Account: "peosteamfund", Issued: 10, Requested: 5, Ceiling: 12,
		})

	metadata := err.Metadata()
	require.Equal(t, "peosteamfund", metadata["account"])
	require.Equal(t, "10", metadata["issued"])
	require.Equal(t, "5", metadata["requested"])
	require.Equal(t, "12", metadata["ceiling"])
	require.Equal(t, grpccodes.FailedPrecondition, err.GrpcCode())
}

func TestIs(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "matching code",
			err:      UNKNOWN_NOTE.New("unknown utxo"),
			expected: true,
		},
		{
			name:     "other code",
			err:      BAD_SIGNATURE.New("bad signature"),
			expected: false,
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("unknown utxo"),
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Is(tc.err, UNKNOWN_NOTE))
		})
	}
}

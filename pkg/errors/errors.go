package errors

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
	grpccodes "google.golang.org/grpc/codes"
)

// Code is the type representing a namespace error code.
type Code[MT any] struct {
	Code     uint16
	Name     string
	GrpcCode grpccodes.Code
}

// New creates a new error with the given code and the message
func (c Code[MT]) New(msg string, args ...any) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: fmt.Errorf(msg, args...),
	}
}

// Wrap creates a new Error with the given code and the cause error
func (c Code[MT]) Wrap(cause error) TypedError[MT] {
	return &ErrorImpl[MT]{
		code:  c,
		cause: cause,
	}
}

func (c Code[MT]) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Code)
}

type Error interface {
	error
	Log() *log.Entry
	Code() uint16
	CodeName() string
	GrpcCode() grpccodes.Code
	Metadata() map[string]string
}

type TypedError[MT any] interface {
	Error
	WithMetadata(MT) TypedError[MT]
}

// ErrorImpl is the default concrete implementation of TypedError.
type ErrorImpl[MT any] struct {
	code     Code[MT]
	cause    error
	metadata MT
}

func (e *ErrorImpl[MT]) Log() *log.Entry {
	return log.WithField("name", e.code.Name).
		WithField("code", e.code.Code).
		WithField("metadata", e.metadata)
}

func (e *ErrorImpl[MT]) Metadata() map[string]string {
	// convert any metadata to map[string]string
	metadata := make(map[string]string)
	buf, err := json.Marshal(e.metadata)
	if err == nil {
		var genericMap map[string]any
		if err := json.Unmarshal(buf, &genericMap); err == nil {
			for k, v := range genericMap {
				vStr := ""
				if v != nil {
					vStr = fmt.Sprintf("%v", v)
				}
				metadata[k] = vStr
			}
		}
	}
	return metadata
}

func (e *ErrorImpl[MT]) GrpcCode() grpccodes.Code {
	return e.code.GrpcCode
}

func (e *ErrorImpl[MT]) Code() uint16 {
	return e.code.Code
}

func (e *ErrorImpl[MT]) CodeName() string {
	return e.code.Name
}

// Error() implements the error interface.
func (e *ErrorImpl[MT]) Error() string {
	return fmt.Sprintf("%s: %s", e.code.String(), e.cause.Error())
}

// Unwrap exposes the cause to the standard errors helpers.
func (e *ErrorImpl[MT]) Unwrap() error {
	return e.cause
}

func (e *ErrorImpl[MT]) WithMetadata(metadata MT) TypedError[MT] {
	e.metadata = metadata
	return e
}

// Is reports whether err is a ledger error carrying the given code.
func Is[MT any](err error, code Code[MT]) bool {
	if err == nil {
		return false
	}
	typed, ok := err.(Error)
	if !ok {
		return false
	}
	return typed.Code() == code.Code
}

type SymbolMetadata struct {
	Symbol string `json:"symbol"`
}

type AmountMetadata struct {
	Quantity string `json:"quantity"`
}

type SymbolMismatchMetadata struct {
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

type SupplyMetadata struct {
	Symbol    string `json:"symbol"`
	Supply    string `json:"supply"`
	MaxSupply string `json:"max_supply"`
	Quantity  string `json:"quantity"`
}

type BalanceMetadata struct {
	Owner     string `json:"owner"`
	Available string `json:"available"`
	Requested string `json:"requested"`
}

type RecordMetadata struct {
	Table string `json:"table"`
	Key   string `json:"key"`
}

type AccountMetadata struct {
	Account string `json:"account"`
}

type NoteMetadata struct {
	NoteId uint64 `json:"note_id"`
}

type InputsMetadata struct {
	InputSum  string `json:"input_sum"`
	OutputSum string `json:"output_sum"`
}

type BudgetMetadata struct {
	Account   string `json:"account"`
	Issued    int64  `json:"issued"`
	Requested int64  `json:"requested"`
	Ceiling   int64  `json:"ceiling"`
}

type DividendsMetadata struct {
	Owner            string `json:"owner"`
	PositionFraction string `json:"position_fraction"`
	PoolFraction     string `json:"pool_fraction"`
}

type RefundLockedMetadata struct {
	Owner       string `json:"owner"`
	RequestTime int64  `json:"request_time"`
	AvailableAt int64  `json:"available_at"`
	Now         int64  `json:"now"`
}

var INTERNAL_ERROR = Code[map[string]any]{0, "INTERNAL_ERROR", grpccodes.Internal}

var INVALID_ARGUMENT = Code[map[string]any]{
	1,
	"INVALID_ARGUMENT",
	grpccodes.InvalidArgument,
}
var INVALID_SYMBOL = Code[SymbolMetadata]{2, "INVALID_SYMBOL", grpccodes.InvalidArgument}
var INVALID_AMOUNT = Code[AmountMetadata]{3, "INVALID_AMOUNT", grpccodes.InvalidArgument}

var SYMBOL_PRECISION_MISMATCH = Code[SymbolMismatchMetadata]{
	4,
	"SYMBOL_PRECISION_MISMATCH",
	grpccodes.InvalidArgument,
}
var SUPPLY_EXCEEDED = Code[SupplyMetadata]{5, "SUPPLY_EXCEEDED", grpccodes.FailedPrecondition}

var INSUFFICIENT_FUNDS = Code[BalanceMetadata]{
	6,
	"INSUFFICIENT_FUNDS",
	grpccodes.FailedPrecondition,
}
var RECORD_NOT_FOUND = Code[RecordMetadata]{7, "RECORD_NOT_FOUND", grpccodes.NotFound}
var ALREADY_EXISTS = Code[RecordMetadata]{8, "ALREADY_EXISTS", grpccodes.AlreadyExists}
var NOT_EMPTY = Code[BalanceMetadata]{9, "NOT_EMPTY", grpccodes.FailedPrecondition}
var UNAUTHORIZED = Code[AccountMetadata]{10, "UNAUTHORIZED", grpccodes.PermissionDenied}
var UNKNOWN_NOTE = Code[NoteMetadata]{11, "UNKNOWN_NOTE", grpccodes.NotFound}
var BAD_SIGNATURE = Code[NoteMetadata]{12, "BAD_SIGNATURE", grpccodes.InvalidArgument}

var INPUTS_INSUFFICIENT = Code[InputsMetadata]{
	13,
	"INPUTS_INSUFFICIENT",
	grpccodes.FailedPrecondition,
}
var BUDGET_EXCEEDED = Code[BudgetMetadata]{14, "BUDGET_EXCEEDED", grpccodes.FailedPrecondition}
var ISSUANCE_CLOSED = Code[AccountMetadata]{15, "ISSUANCE_CLOSED", grpccodes.FailedPrecondition}

var DIVIDENDS_NOT_REALIZED = Code[DividendsMetadata]{
	16,
	"DIVIDENDS_NOT_REALIZED",
	grpccodes.FailedPrecondition,
}
var REFUND_NOT_FOUND = Code[AccountMetadata]{17, "REFUND_NOT_FOUND", grpccodes.NotFound}

var REFUND_LOCKED = Code[RefundLockedMetadata]{
	18,
	"REFUND_LOCKED",
	grpccodes.FailedPrecondition,
}

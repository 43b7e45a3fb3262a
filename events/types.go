package events

import (
	"time"
)

// EventType is an enum-like string type for ledger events
type EventType string

const (
	EventTransactionCommitted EventType = "TransactionCommitted"
	EventTransactionRejected  EventType = "TransactionRejected"
	EventBlockProcessed       EventType = "BlockProcessed"
)

// LedgerEvent represents anything the host reports about state transitions
type LedgerEvent interface {
	Type() EventType
	Timestamp() time.Time
	TxHash() string
}

// TransactionCommitted event when a transaction passed validation and all hooks ran
type TransactionCommitted struct {
	txHash    string
	height    uint64
	timestamp time.Time
}

func NewTransactionCommitted(txHash string, height uint64) *TransactionCommitted {
	return &TransactionCommitted{
		txHash:    txHash,
		height:    height,
		timestamp: time.Now(),
	}
}

func (e *TransactionCommitted) Type() EventType {
	return EventTransactionCommitted
}

func (e *TransactionCommitted) Timestamp() time.Time {
	return e.timestamp
}

func (e *TransactionCommitted) TxHash() string {
	return e.txHash
}

func (e *TransactionCommitted) Height() uint64 {
	return e.height
}

// TransactionRejected event when a transaction fails validation or a hook returns an error
type TransactionRejected struct {
	txHash       string
	code         string
	errorMessage string
	rolledBack   bool
	timestamp    time.Time
}

func NewTransactionRejected(txHash string, code string, errorMessage string, rolledBack bool) *TransactionRejected {
	return &TransactionRejected{
		txHash:       txHash,
		code:         code,
		errorMessage: errorMessage,
		rolledBack:   rolledBack,
		timestamp:    time.Now(),
	}
}

func (e *TransactionRejected) Type() EventType {
	return EventTransactionRejected
}

func (e *TransactionRejected) Timestamp() time.Time {
	return e.timestamp
}

func (e *TransactionRejected) TxHash() string {
	return e.txHash
}

func (e *TransactionRejected) Code() string {
	return e.code
}

func (e *TransactionRejected) ErrorMessage() string {
	return e.errorMessage
}

// RolledBack reports whether the host restored the pre-transaction state.
func (e *TransactionRejected) RolledBack() bool {
	return e.rolledBack
}

// BlockProcessed event after every block hook ran. It carries no transaction hash.
type BlockProcessed struct {
	height    uint64
	txCount   int
	timestamp time.Time
}

func NewBlockProcessed(height uint64, txCount int) *BlockProcessed {
	return &BlockProcessed{
		height:    height,
		txCount:   txCount,
		timestamp: time.Now(),
	}
}

func (e *BlockProcessed) Type() EventType {
	return EventBlockProcessed
}

func (e *BlockProcessed) Timestamp() time.Time {
	return e.timestamp
}

func (e *BlockProcessed) TxHash() string {
	return ""
}

func (e *BlockProcessed) Height() uint64 {
	return e.height
}

func (e *BlockProcessed) TxCount() int {
	return e.txCount
}

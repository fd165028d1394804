// Package activity holds the canonical on-chain activity model shared by every stage of the pipeline.
package activity

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// UnknownEventName is the resolved name of a log whose first topic is not in the signature table.
const UnknownEventName = "Unknown"

// Status is the execution status taken from the transaction receipt.
type Status uint8

const (
	StatusFailure Status = iota
	StatusSuccess
)

// String returns "success" or "failure".
func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// EventKey identifies a log uniquely across the chain.
type EventKey struct {
	TxHash   common.Hash
	LogIndex uint
}

// String renders the key as txhash:logindex.
func (k EventKey) String() string {
	return fmt.Sprintf("%s:%d", k.TxHash.Hex(), k.LogIndex)
}

// Event is a normalized log together with the context of its transaction, receipt and block.
// Events are created once by the normalizer and shared read-only afterwards.
type Event struct {
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint
	Contract    common.Address
	Topics      []common.Hash
	Data        []byte

	From    common.Address
	To      *common.Address // nil for contract creation
	Value   *big.Int
	GasUsed *big.Int
	Status  Status

	Timestamp uint64 // block time, unix seconds

	Signature common.Hash
	Name      string
	Payload   Payload
}

// Key returns the identity of the event.
func (e *Event) Key() EventKey {
	return EventKey{TxHash: e.TxHash, LogIndex: e.LogIndex}
}

// Time returns the block time.
func (e *Event) Time() time.Time {
	return time.Unix(int64(e.Timestamp), 0).UTC()
}

// Participants returns the addresses this event is attributed to.
func (e *Event) Participants() []common.Address {
	return Participants(e.From, e.To, e.Contract)
}

// IsKnown reports whether the signature resolved to a table entry.
func (e *Event) IsKnown() bool {
	return e.Name != UnknownEventName
}

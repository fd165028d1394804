// Package normalizer turns a log and its fetched context into an activity.Event.
package normalizer

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainActivity/internal/chainreader"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
)

// ErrIncompleteContext is returned when a raw log lacks its transaction, receipt or header.
var ErrIncompleteContext = errors.New("incomplete log context")

// Normalize builds the canonical event for raw. It has no side effects.
//
// A first topic missing from table yields an event named activity.UnknownEventName with an Unknown
// payload. A known signature whose topics or data do not decode keeps its name and carries an
// activity.Undecoded payload, so the log is still attributed.
func Normalize(raw *chainreader.RawLog, table *activity.SignatureTable) (*activity.Event, error) {
	switch {
	case raw == nil:
		return nil, fmt.Errorf("%w: nil log", ErrIncompleteContext)
	case raw.Tx == nil:
		return nil, fmt.Errorf("%w: %s missing transaction", ErrIncompleteContext, raw.Log.TxHash.Hex())
	case raw.Receipt == nil:
		return nil, fmt.Errorf("%w: %s missing receipt", ErrIncompleteContext, raw.Log.TxHash.Hex())
	case raw.Header == nil:
		return nil, fmt.Errorf("%w: %s missing header", ErrIncompleteContext, raw.Log.TxHash.Hex())
	}

	lg := raw.Log
	ev := &activity.Event{
		BlockNumber: lg.BlockNumber,
		TxHash:      lg.TxHash,
		LogIndex:    lg.Index,
		Contract:    lg.Address,
		Topics:      slices.Clone(lg.Topics),
		Data:        slices.Clone(lg.Data),
		From:        raw.From,
		To:          raw.Tx.To(),
		Value:       raw.Tx.Value(),
		GasUsed:     new(big.Int).SetUint64(raw.Receipt.GasUsed),
		Status:      status(raw.Receipt),
		Timestamp:   raw.Header.Time,
		Name:        activity.UnknownEventName,
	}

	if len(lg.Topics) == 0 {
		ev.Payload = activity.Unknown{}
		return ev, nil
	}

	ev.Signature = lg.Topics[0]
	spec, ok := table.Lookup(ev.Signature)
	if !ok {
		ev.Payload = activity.Unknown{Signature: ev.Signature}
		return ev, nil
	}

	ev.Name = spec.Name
	payload, err := spec.Decode(lg.Topics, lg.Data)
	if err != nil {
		ev.Payload = activity.Undecoded{Signature: ev.Signature, Reason: err.Error()}
		return ev, nil
	}
	ev.Payload = payload

	return ev, nil
}

func status(r *types.Receipt) activity.Status {
	if r.Status == types.ReceiptStatusSuccessful {
		return activity.StatusSuccess
	}
	return activity.StatusFailure
}

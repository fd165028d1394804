package chainreader

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Stages at which a single log can fail.
const (
	StageTransaction = "transaction"
	StageReceipt     = "receipt"
	StageHeader      = "header"
	StageDecode      = "decode"
)

// RawLog is a log together with its parent transaction, receipt and block header.
type RawLog struct {
	Log     types.Log
	Tx      *types.Transaction
	From    common.Address
	Receipt *types.Receipt
	Header  *types.Header
}

// PerLogError records why a single log was skipped.
type PerLogError struct {
	TxHash   common.Hash
	LogIndex uint
	Stage    string
	Err      error
}

func (e *PerLogError) Error() string {
	return fmt.Sprintf("log %s:%d: %s: %v", e.TxHash.Hex(), e.LogIndex, e.Stage, e.Err)
}

func (e *PerLogError) Unwrap() error {
	return e.Err
}

// Result summarizes a scan.
type Result struct {
	// FromBlock and ToBlock are the resolved bounds of the requested range
	FromBlock uint64
	ToBlock   uint64

	// NextBlock is the first block whose logs were not all fetched. It is ToBlock+1 for a complete scan.
	NextBlock uint64

	// Logs is the number of logs returned by the node for the issued part of the range
	Logs int

	// Emitted is the number of logs delivered with full context
	Emitted int

	// Abandoned is the number of issued logs whose fetch had not started when the scan was stopped
	Abandoned int

	// Failures lists the logs that were skipped
	Failures []*PerLogError

	// Partial is set when the scan was stopped before reaching ToBlock
	Partial bool
}

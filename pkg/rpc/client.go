package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EthClient defines the chain access the scan pipeline needs.
// This abstraction allows for easier testing and alternative implementations.
type EthClient interface {
	// Close closes the RPC client connection.
	Close()

	// GetLogs retrieves logs matching the given filter query.
	GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// GetTransaction retrieves a mined transaction and its recovered sender.
	GetTransaction(ctx context.Context, txHash common.Hash) (*types.Transaction, common.Address, error)

	// GetTransactionReceipt retrieves the receipt of a mined transaction.
	GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// GetBlockHeader retrieves the header for a specific block number.
	GetBlockHeader(ctx context.Context, blockNum uint64) (*types.Header, error)

	// GetLatestBlockHeader retrieves the latest block header.
	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
}

package rpc

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	pkgrpc "github.com/goran-ethernal/ChainActivity/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.EthClient interface.
var _ pkgrpc.EthClient = (*Client)(nil)

// Client wraps the Ethereum RPC client with the lookups the scan pipeline performs.
// It implements the pkgrpc.EthClient interface.
type Client struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

// NewClient creates a new RPC client connected to the given endpoint.
func NewClient(ctx context.Context, endpoint string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrChainUnavailable, endpoint, err)
	}

	return &Client{
		eth: ethclient.NewClient(rpcClient),
		rpc: rpcClient,
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GetLogs retrieves logs matching the given filter query.
// The raw call keeps the node's DataError intact so range limit hints can be parsed.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := observe("eth_getLogs", func() error {
		return c.rpc.CallContext(ctx, &logs, "eth_getLogs", toFilterArg(query))
	})
	return logs, err
}

// GetTransaction retrieves a mined transaction and recovers its sender from the signature.
func (c *Client) GetTransaction(ctx context.Context, txHash common.Hash) (*types.Transaction, common.Address, error) {
	var (
		tx      *types.Transaction
		pending bool
	)
	err := observe("eth_getTransactionByHash", func() error {
		var err error
		tx, pending, err = c.eth.TransactionByHash(ctx, txHash)
		return err
	})
	if err != nil {
		return nil, common.Address{}, err
	}
	if pending {
		return nil, common.Address{}, fmt.Errorf("transaction %s is still pending", txHash.Hex())
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		recordFailure("eth_getTransactionByHash", "sender")
		return nil, common.Address{}, fmt.Errorf("recover sender of %s: %w", txHash.Hex(), err)
	}

	return tx, from, nil
}

// GetTransactionReceipt retrieves the receipt of a mined transaction.
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := observe("eth_getTransactionReceipt", func() error {
		var err error
		receipt, err = c.eth.TransactionReceipt(ctx, txHash)
		return err
	})
	return receipt, err
}

// GetBlockHeader retrieves the header for a specific block number.
func (c *Client) GetBlockHeader(ctx context.Context, blockNum uint64) (*types.Header, error) {
	var header *types.Header
	err := observe("eth_getBlockByNumber", func() error {
		var err error
		header, err = c.eth.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNum))
		return err
	})
	return header, err
}

// GetLatestBlockHeader retrieves the latest block header.
func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	var header *types.Header
	err := observe("eth_getBlockByNumber", func() error {
		var err error
		header, err = c.eth.HeaderByNumber(ctx, nil)
		return err
	})
	return header, err
}

// toFilterArg converts ethereum.FilterQuery to the format expected by eth_getLogs.
func toFilterArg(q ethereum.FilterQuery) any {
	arg := map[string]any{
		"topics": q.Topics,
	}

	if q.BlockHash != nil {
		arg["blockHash"] = *q.BlockHash
	} else {
		if q.FromBlock != nil {
			arg["fromBlock"] = toBlockNumArg(q.FromBlock.Uint64())
		}
		if q.ToBlock != nil {
			arg["toBlock"] = toBlockNumArg(q.ToBlock.Uint64())
		}
	}

	if len(q.Addresses) > 0 {
		if len(q.Addresses) == 1 {
			arg["address"] = q.Addresses[0]
		} else {
			arg["address"] = q.Addresses
		}
	}

	return arg
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}

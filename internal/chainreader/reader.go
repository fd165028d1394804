// Package chainreader fetches every log of a block range together with its transaction, receipt and header.
package chainreader

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	irpc "github.com/goran-ethernal/ChainActivity/internal/rpc"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/rpc"
)

// ErrInvalidRange is returned when the start of a range is past its end.
var ErrInvalidRange = errors.New("invalid block range")

// Reader scans block ranges. A Reader can serve several scans, each scan uses its own worker pool and caches.
type Reader struct {
	client rpc.EthClient
	cfg    *config.ScannerConfig
	policy irpc.Policy
	log    *logger.Logger
}

// New creates a Reader. cfg must have its defaults applied.
func New(client rpc.EthClient, cfg *config.ScannerConfig, log *logger.Logger) *Reader {
	return &Reader{
		client: client,
		cfg:    cfg,
		policy: irpc.NewPolicy(cfg),
		log:    log,
	}
}

// ResolveRange turns the requested bounds into block numbers, resolving "latest" against the current head.
func (r *Reader) ResolveRange(ctx context.Context, from, to activity.BlockTag) (uint64, uint64, error) {
	var head uint64
	if from.IsLatest() || to.IsLatest() {
		var header *types.Header
		err := r.policy.Do(ctx, "latest_header", func(ctx context.Context) error {
			var err error
			header, err = r.client.GetLatestBlockHeader(ctx)
			return err
		})
		if err != nil {
			return 0, 0, fmt.Errorf("%w: fetch chain head: %w", irpc.ErrChainUnavailable, err)
		}

		head = header.Number.Uint64()
		metrics.ChainHeadSet(head)
	}

	resolve := func(tag activity.BlockTag) uint64 {
		if tag.IsLatest() {
			return head
		}
		return tag.Uint64()
	}

	start, end := resolve(from), resolve(to)
	if start > end {
		return 0, 0, fmt.Errorf("%w: start block %d is after end block %d", ErrInvalidRange, start, end)
	}

	return start, end, nil
}

// outcome is the result of one per-log task, seq is its submission order.
type outcome struct {
	seq     int
	raw     *RawLog
	failure *PerLogError

	// abandoned is set when the task was dequeued after the stop and fetched nothing
	abandoned bool
	block     uint64
}

// Scan delivers every log of the range with its context on out, in chain order.
// Logs whose context cannot be fetched are skipped and listed in Result.Failures.
//
// Cancelling ctx is a cooperative stop: fetches already running finish, queued ones are abandoned
// without touching the node, and the returned Result is marked Partial with NextBlock pointing to
// where a re-scan resumes.
// The caller owns out and must keep draining it until Scan returns.
func (r *Reader) Scan(ctx context.Context, from, to activity.BlockTag, out chan<- *RawLog) (*Result, error) {
	start, end, err := r.ResolveRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	res := &Result{FromBlock: start, ToBlock: end, NextBlock: start}
	r.log.Infow("scan started", "from_block", start, "to_block", end, "workers", r.cfg.Workers)

	pool := pond.NewPool(r.cfg.Workers, pond.WithQueueSize(r.cfg.QueueSize))
	defer pool.StopAndWait()

	// Running fetches are detached from the stop signal so they drain instead of failing.
	fetchCtx := context.WithoutCancel(ctx)
	sess := newSession(r)
	group := pool.NewGroup()

	results := make(chan outcome, r.cfg.Workers+r.cfg.QueueSize)
	delivered := make(chan struct{})
	var abandonedAt *uint64
	go func() {
		defer close(delivered)
		abandonedAt = r.deliver(results, out, res)
	}()

	var (
		seq     int
		scanErr error
	)

scan:
	for cursor := start; cursor <= end; {
		if ctx.Err() != nil {
			res.Partial = true
			break
		}

		chunkEnd := min(cursor+r.cfg.ChunkSize-1, end)
		logs, gotTo, err := r.fetchLogs(ctx, cursor, chunkEnd)
		if err != nil {
			if ctx.Err() != nil {
				res.Partial = true
				break
			}
			scanErr = fmt.Errorf("%w: fetch logs %d-%d: %w", irpc.ErrChainUnavailable, cursor, chunkEnd, err)
			break
		}

		for i := range logs {
			if ctx.Err() != nil {
				res.Partial = true
				res.NextBlock = logs[i].BlockNumber
				break scan
			}

			lg := logs[i]
			n := seq
			seq++
			res.Logs++
			group.Submit(func() {
				if ctx.Err() != nil {
					results <- outcome{seq: n, abandoned: true, block: lg.BlockNumber}
					return
				}
				results <- sess.fetch(fetchCtx, n, lg)
			})
		}

		metrics.LogsFetchedInc(len(logs))
		metrics.BlocksScannedInc(gotTo - cursor + 1)
		cursor = gotTo + 1
		res.NextBlock = cursor
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		r.log.Errorw("per-log fetch task failed", "error", err)
	}
	close(results)
	<-delivered

	if abandonedAt != nil {
		res.Partial = true
		res.NextBlock = min(res.NextBlock, *abandonedAt)
	}

	if scanErr != nil {
		return res, scanErr
	}

	if res.Partial {
		r.log.Warnw("scan stopped early",
			"from_block", start,
			"next_block", res.NextBlock,
			"emitted", res.Emitted,
			"abandoned", res.Abandoned,
			"skipped", len(res.Failures),
		)
	} else {
		r.log.Infow("scan finished",
			"from_block", start,
			"to_block", end,
			"logs", res.Logs,
			"emitted", res.Emitted,
			"skipped", len(res.Failures),
			"headers_fetched", sess.headers.len(),
		)
	}

	return res, nil
}

// deliver releases task outcomes in submission order. It returns the block of the first abandoned
// log, nil when every task ran.
func (r *Reader) deliver(results <-chan outcome, out chan<- *RawLog, res *Result) *uint64 {
	var abandonedAt *uint64
	release := func(o outcome) {
		if o.abandoned {
			res.Abandoned++
			if abandonedAt == nil {
				abandonedAt = &o.block
			}
			return
		}
		r.release(o, out, res)
	}

	pending := make(map[int]outcome)
	next := 0

	for o := range results {
		pending[o.seq] = o
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			release(ready)
			next++
		}
	}

	// Gaps only remain when a task panicked.
	for _, seq := range slices.Sorted(maps.Keys(pending)) {
		release(pending[seq])
	}

	return abandonedAt
}

func (r *Reader) release(o outcome, out chan<- *RawLog, res *Result) {
	if o.failure != nil {
		res.Failures = append(res.Failures, o.failure)
		metrics.PerLogFailureInc(o.failure.Stage)
		r.log.Warnw("skipping log",
			"tx_hash", o.failure.TxHash.Hex(),
			"log_index", o.failure.LogIndex,
			"stage", o.failure.Stage,
			"error", o.failure.Err,
		)
		return
	}

	out <- o.raw
	res.Emitted++
}

// fetchLogs fetches logs for a range, shrinking it while the node refuses the result size.
// It returns the logs and the last block actually covered.
func (r *Reader) fetchLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, uint64, error) {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
	}

	var logs []types.Log
	err := r.policy.Do(ctx, "get_logs", func(ctx context.Context) error {
		var err error
		logs, err = r.client.GetLogs(ctx, query)
		return err
	})
	if err == nil {
		return logs, toBlock, nil
	}

	ok, errData := irpc.IsTooManyResultsError(err)
	if !ok {
		return nil, 0, err
	}
	if fromBlock == toBlock {
		return nil, 0, fmt.Errorf("cannot split range further, single block %d has too many logs: %w", fromBlock, err)
	}

	newTo := fromBlock + (toBlock-fromBlock)/2 //nolint:mnd
	if _, suggestedTo, ok := irpc.ParseSuggestedBlockRange(errData); ok && suggestedTo >= fromBlock && suggestedTo < toBlock {
		newTo = suggestedTo
	}

	r.log.Infof("too many logs in range %d-%d, retrying with %d-%d", fromBlock, toBlock, fromBlock, newTo)

	return r.fetchLogs(ctx, fromBlock, newTo)
}

type sender struct {
	tx   *types.Transaction
	from common.Address
}

// session holds the lookups shared by all logs of one scan.
type session struct {
	reader   *Reader
	txs      *memo[common.Hash, sender]
	receipts *memo[common.Hash, *types.Receipt]
	headers  *memo[uint64, *types.Header]
}

func newSession(r *Reader) *session {
	return &session{
		reader:   r,
		txs:      newMemo[common.Hash, sender](),
		receipts: newMemo[common.Hash, *types.Receipt](),
		headers:  newMemo[uint64, *types.Header](),
	}
}

func (s *session) fetch(ctx context.Context, seq int, lg types.Log) outcome {
	fail := func(stage string, err error) outcome {
		return outcome{seq: seq, failure: &PerLogError{TxHash: lg.TxHash, LogIndex: lg.Index, Stage: stage, Err: err}}
	}

	client, policy := s.reader.client, s.reader.policy

	tx, err := s.txs.get(ctx, lg.TxHash, func(ctx context.Context) (sender, error) {
		var out sender
		err := policy.Do(ctx, "get_transaction", func(ctx context.Context) error {
			var err error
			out.tx, out.from, err = client.GetTransaction(ctx, lg.TxHash)
			return err
		})
		return out, err
	})
	if err != nil {
		return fail(StageTransaction, err)
	}

	receipt, err := s.receipts.get(ctx, lg.TxHash, func(ctx context.Context) (*types.Receipt, error) {
		var receipt *types.Receipt
		err := policy.Do(ctx, "get_receipt", func(ctx context.Context) error {
			var err error
			receipt, err = client.GetTransactionReceipt(ctx, lg.TxHash)
			return err
		})
		return receipt, err
	})
	if err != nil {
		return fail(StageReceipt, err)
	}
	if receipt.BlockHash != lg.BlockHash {
		return fail(StageReceipt, fmt.Errorf("receipt block %s does not match log block %s",
			receipt.BlockHash.Hex(), lg.BlockHash.Hex()))
	}

	header, err := s.headers.get(ctx, lg.BlockNumber, func(ctx context.Context) (*types.Header, error) {
		var header *types.Header
		err := policy.Do(ctx, "get_header", func(ctx context.Context) error {
			var err error
			header, err = client.GetBlockHeader(ctx, lg.BlockNumber)
			return err
		})
		return header, err
	})
	if err != nil {
		return fail(StageHeader, err)
	}
	if header.Number == nil || header.Number.Uint64() != lg.BlockNumber {
		return fail(StageHeader, fmt.Errorf("header number %v does not match log block %d",
			header.Number, lg.BlockNumber))
	}
	if s.reader.cfg.VerifyHeaderHash && header.Hash() != lg.BlockHash {
		return fail(StageHeader, fmt.Errorf("header %s does not match log block %s",
			header.Hash().Hex(), lg.BlockHash.Hex()))
	}

	return outcome{seq: seq, raw: &RawLog{
		Log:     lg,
		Tx:      tx.tx,
		From:    tx.from,
		Receipt: receipt,
		Header:  header,
	}}
}

// Package scanner runs the scan pipeline: chain reader, normalizer and aggregator connected by channels.
package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/aggregator"
	"github.com/goran-ethernal/ChainActivity/internal/chainreader"
	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	"github.com/goran-ethernal/ChainActivity/internal/normalizer"
	"github.com/goran-ethernal/ChainActivity/pkg/activity"
	"golang.org/x/sync/errgroup"
)

const channelSize = 256

// Result summarizes a pipeline run.
type Result struct {
	FromBlock uint64
	ToBlock   uint64
	NextBlock uint64

	// Logs is the number of logs returned by the node
	Logs int

	// Events is the number of logs normalized and handed to the aggregator
	Events int

	// Failures lists every skipped log: context fetch failures and decode failures
	Failures []*chainreader.PerLogError

	Aggregation *aggregator.Stats
	Partial     bool
	Duration    time.Duration
}

// Scanner wires the pipeline stages together.
type Scanner struct {
	reader     *chainreader.Reader
	table      *activity.SignatureTable
	aggregator *aggregator.Aggregator
	log        *logger.Logger
}

// New creates a Scanner.
func New(reader *chainreader.Reader, table *activity.SignatureTable, agg *aggregator.Aggregator,
	log *logger.Logger) *Scanner {
	return &Scanner{reader: reader, table: table, aggregator: agg, log: log}
}

// Run scans [from, to]. Cancelling ctx stops the scan cooperatively: logs already being fetched are
// still normalized and aggregated, and the result is marked Partial. Aggregation runs detached from
// ctx so the stored state stays consistent with the returned result.
//
// A backend failure stops the reader and is returned. A chain failure is returned after the logs
// read so far are aggregated.
func (s *Scanner) Run(ctx context.Context, from, to activity.BlockTag) (*Result, error) {
	started := time.Now()

	stopCtx, stop := context.WithCancel(ctx)
	defer stop()

	raws := make(chan *chainreader.RawLog, channelSize)
	events := make(chan *activity.Event, channelSize)

	var (
		readRes   *chainreader.Result
		aggStats  *aggregator.Stats
		decodeErr []*chainreader.PerLogError
		normCount int
	)

	var g errgroup.Group

	g.Go(func() error {
		defer close(raws)

		var err error
		readRes, err = s.reader.Scan(stopCtx, from, to, raws)
		return err
	})

	g.Go(func() error {
		defer close(events)

		for raw := range raws {
			ev, err := normalizer.Normalize(raw, s.table)
			if err != nil {
				failure := &chainreader.PerLogError{
					TxHash:   raw.Log.TxHash,
					LogIndex: raw.Log.Index,
					Stage:    chainreader.StageDecode,
					Err:      err,
				}
				metrics.PerLogFailureInc(chainreader.StageDecode)
				s.log.Warnw("skipping log", "tx", failure.TxHash.Hex(), "log_index", failure.LogIndex,
					"stage", failure.Stage, "error", err)
				decodeErr = append(decodeErr, failure)
				continue
			}

			if p, ok := ev.Payload.(activity.Undecoded); ok {
				s.log.Debugw("event body not decoded", "event", ev.Key().String(), "name", ev.Name,
					"reason", p.Reason)
			}

			metrics.EventNormalizedInc(ev.Name)
			normCount++
			events <- ev
		}
		return nil
	})

	g.Go(func() error {
		var err error
		aggStats, err = s.aggregator.Run(context.WithoutCancel(ctx), events)
		if err != nil {
			stop()
		}
		return err
	})

	err := g.Wait()

	res := &Result{
		Events:      normCount,
		Aggregation: aggStats,
		Duration:    time.Since(started),
	}
	if readRes != nil {
		res.FromBlock, res.ToBlock, res.NextBlock = readRes.FromBlock, readRes.ToBlock, readRes.NextBlock
		res.Logs = readRes.Logs
		res.Failures = append(res.Failures, readRes.Failures...)
		res.Partial = readRes.Partial
	}
	res.Failures = append(res.Failures, decodeErr...)
	metrics.ScanDurationLog(res.Duration)

	if err != nil {
		metrics.ErrorsInc(common.ComponentScanner, "fatal")
		return res, fmt.Errorf("scan failed: %w", err)
	}

	s.log.Infow("scan complete",
		"from_block", res.FromBlock,
		"to_block", res.ToBlock,
		"logs", res.Logs,
		"events", res.Events,
		"skipped", len(res.Failures),
		"partial", res.Partial,
		"duration", res.Duration,
	)

	return res, nil
}

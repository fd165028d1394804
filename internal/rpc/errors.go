package rpc

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ChainActivity/internal/common"
)

// ErrChainUnavailable is returned when the chain head or a log range cannot be fetched.
var ErrChainUnavailable = errors.New("chain unavailable")

var (
	tooManyResultsRe = regexp.MustCompile(`Query returned more than \d+ results`)
	blockRangeRe     = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// IsUnavailable reports whether err looks like a transport failure or an overloaded node
// rather than a rejected request.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrChainUnavailable) || retryableError(err)
}

// classify labels an RPC error for metrics.
func classify(err error) string {
	var (
		rpcErr  rpc.Error
		httpErr rpc.HTTPError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http_%d", httpErr.StatusCode)
	case errors.As(err, &rpcErr):
		return "rpc"
	case retryableError(err):
		return "transport"
	default:
		return "other"
	}
}

// IsTooManyResultsError checks if the error is an RPC "too many results" error (DataError with message in ErrorData).
func IsTooManyResultsError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		errData := fmt.Sprintf("%v", dataErr.ErrorData())
		return tooManyResultsRe.MatchString(errData), errData
	}

	return false, ""
}

// ParseSuggestedBlockRange attempts to extract the suggested block range from the error message.
// Returns the suggested fromBlock and toBlock, and true if successfully parsed.
// Expected format: "Query returned more than 20000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."
func ParseSuggestedBlockRange(err string) (fromBlock, toBlock uint64, ok bool) {
	if err == "" {
		return 0, 0, false
	}

	matches := blockRangeRe.FindStringSubmatch(err)

	const expectedMatches = 3 // full match + 2 groups
	if len(matches) != expectedMatches {
		return 0, 0, false
	}

	from, err1 := common.ParseQuantity(matches[1])
	to, err2 := common.ParseQuantity(matches[2])

	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return from, to, true
}

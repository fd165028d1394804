package activity

import (
	"fmt"
	"strconv"

	icommon "github.com/goran-ethernal/ChainActivity/internal/common"
)

const latestTag = "latest"

// BlockTag is either a concrete block number or the symbolic chain head, resolved when a scan starts.
type BlockTag struct {
	number uint64
	latest bool
}

// LatestBlock refers to the current chain head.
func LatestBlock() BlockTag {
	return BlockTag{latest: true}
}

// BlockNumber refers to a fixed block.
func BlockNumber(n uint64) BlockTag {
	return BlockTag{number: n}
}

// ParseBlockTag accepts "latest", a decimal number or a 0x-prefixed hex number.
func ParseBlockTag(s string) (BlockTag, error) {
	if icommon.Canonical(s) == latestTag {
		return LatestBlock(), nil
	}

	n, err := icommon.ParseQuantity(s)
	if err != nil {
		return BlockTag{}, fmt.Errorf("invalid block %q (must be a number, 0x hex or latest): %w", s, err)
	}

	return BlockNumber(n), nil
}

// IsLatest reports whether the tag refers to the chain head.
func (b BlockTag) IsLatest() bool {
	return b.latest
}

// Uint64 returns the block number; zero for the latest tag.
func (b BlockTag) Uint64() uint64 {
	return b.number
}

// String returns the string representation of the tag.
func (b BlockTag) String() string {
	if b.latest {
		return latestTag
	}
	return strconv.FormatUint(b.number, 10)
}

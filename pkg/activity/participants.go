package activity

import "github.com/ethereum/go-ethereum/common"

// Participants derives the attribution set of a log: the transaction sender, the transaction
// recipient when present and the emitting contract. The zero address is dropped and duplicates
// collapse, keeping first-seen order.
func Participants(from common.Address, to *common.Address, contract common.Address) []common.Address {
	candidates := [3]*common.Address{&from, to, &contract}

	out := make([]common.Address, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || *c == (common.Address{}) {
			continue
		}

		dup := false
		for _, seen := range out {
			if seen == *c {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, *c)
		}
	}

	return out
}

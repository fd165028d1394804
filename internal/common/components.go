package common

const (
	ComponentScanner     = "scanner"
	ComponentChainReader = "chain-reader"
	ComponentNormalizer  = "normalizer"
	ComponentAggregator  = "aggregator"
	ComponentStore       = "store"
	ComponentMaintenance = "maintenance"
	ComponentReport      = "report"
	ComponentAPI         = "api"
)

var AllComponents = map[string]struct{}{
	ComponentScanner:     {},
	ComponentChainReader: {},
	ComponentNormalizer:  {},
	ComponentAggregator:  {},
	ComponentStore:       {},
	ComponentMaintenance: {},
	ComponentReport:      {},
	ComponentAPI:         {},
}

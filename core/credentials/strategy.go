// ABOUTME: Rotation strategy enum for the credential pool
// ABOUTME: Parsed once at construction; never compared as strings at call sites

package credentials

import "fmt"

// Strategy selects which eligible credential the pool hands out next.
type Strategy int

const (
	// StrategyRoundRobin cycles through credentials in pool order
	StrategyRoundRobin Strategy = iota

	// StrategyLeastUsed picks the eligible credential with the fewest calls today
	StrategyLeastUsed

	// StrategyRandom samples uniformly among eligible credentials
	StrategyRandom
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyRoundRobin:
		return "round_robin"
	case StrategyLeastUsed:
		return "least_used"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(value string) (Strategy, error) {
	switch value {
	case "round_robin":
		return StrategyRoundRobin, nil
	case "least_used":
		return StrategyLeastUsed, nil
	case "random":
		return StrategyRandom, nil
	default:
		return 0, fmt.Errorf("unknown rotation strategy %q", value)
	}
}

// Package vmconst holds the constants shared by every layer of the
// simulator: the preprocessor, the replacement policies, and the MMU
// engine all agree on these values.
package vmconst

import (
	"strings"

	"github.com/biscuit-labs/pagingsim/internal/util"
)

// PageSize is the size in bytes of a single page.
const PageSize int = 4096

// RAMFrames is the default number of physical frames modeled by one
// simulator. Reference workloads use 100.
const RAMFrames int = 100

// HitCost is the simulated time, in clock units, spent servicing a
// resident-page access.
const HitCost int64 = 1

// FaultCost is the simulated time, in clock units, spent servicing a
// non-resident-page access. The entire cost is attributed to thrashing
// time.
const FaultCost int64 = 5

// Algorithm identifies a replacement policy. The numeric values are
// stable (OPT=0 through Random=4); configuration and reports refer to
// an algorithm by its name (see String and ParseAlgorithm).
type Algorithm int

const (
	// AlgoOPT is Belady's clairvoyant optimum. It is never user
	// selectable; the coordinator always runs it as the reference arm.
	AlgoOPT Algorithm = 0
	// AlgoFIFO evicts the longest-resident page.
	AlgoFIFO Algorithm = 1
	// AlgoSecondChance is the clock algorithm.
	AlgoSecondChance Algorithm = 2
	// AlgoMRU evicts the most-recently-used page.
	AlgoMRU Algorithm = 3
	// AlgoRandom evicts a uniformly random resident page.
	AlgoRandom Algorithm = 4
)

// String renders the algorithm's canonical short name.
func (a Algorithm) String() string {
	switch a {
	case AlgoOPT:
		return "OPT"
	case AlgoFIFO:
		return "FIFO"
	case AlgoSecondChance:
		return "SecondChance"
	case AlgoMRU:
		return "MRU"
	case AlgoRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// Selectable reports whether a is a valid choice for the user-side
// simulator. OPT is reserved for the oracle arm.
func (a Algorithm) Selectable() bool {
	switch a {
	case AlgoFIFO, AlgoSecondChance, AlgoMRU, AlgoRandom:
		return true
	default:
		return false
	}
}

// ParseAlgorithm maps a canonical name to its Algorithm, for CLI and
// config parsing. Matching is case-insensitive.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch strings.ToLower(name) {
	case "opt":
		return AlgoOPT, true
	case "fifo":
		return AlgoFIFO, true
	case "second-chance", "secondchance", "clock":
		return AlgoSecondChance, true
	case "mru":
		return AlgoMRU, true
	case "random", "rand":
		return AlgoRandom, true
	default:
		return 0, false
	}
}

// PagesFor returns the number of pages, at least 1, needed to back an
// allocation of size bytes.
func PagesFor(size int) int {
	if size <= 0 {
		return 1
	}
	n := util.Roundup(size, PageSize) / PageSize
	return util.Max(n, 1)
}

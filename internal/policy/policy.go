// Package policy implements the replacement-policy family: FIFO,
// Second-Chance, MRU, Random, and OPT, behind one dispatch surface.
// Per-strategy state lives inside the policy value itself. A sum type
// over strategies would work too, but a small interface with several
// concrete implementers keeps each strategy's state private and makes
// adding a new one a matter of writing one more file, not touching a
// shared switch.
package policy

import (
	"github.com/biscuit-labs/pagingsim/internal/page"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

// Registry is the slice of MMU state a policy needs to make a
// decision: the frame table (for scans that walk physical frames in
// order) and page lookup by id (for FIFO's lazy-cleanup skip and
// OPT/MRU's field reads). The MMU engine implements this; policies
// never mutate frame occupancy themselves, only page bookkeeping
// fields (ref bits, OPT cursors).
type Registry interface {
	NumFrames() int
	FrameOccupant(frameIndex int) (pageID int, occupied bool)
	Page(pageID int) *page.Page
}

// Policy is the uniform hook surface the MMU engine drives.
type Policy interface {
	// Name identifies the policy for logging and the stats surface.
	Name() string
	// OnPageLoaded is called the instant a page becomes resident.
	OnPageLoaded(p *page.Page)
	// OnPageEvicted is called the instant a page stops being resident.
	OnPageEvicted(p *page.Page)
	// OnPageAccessed is called for every touch of a resident page,
	// including the touch that immediately follows a load.
	OnPageAccessed(p *page.Page)
	// ChooseVictim returns one resident page to evict, or ok=false if
	// the policy has nothing to offer (the engine then falls back to
	// a linear scan).
	ChooseVictim(reg Registry) (pageID int, ok bool)
}

// New constructs the Policy for algo, seeded for determinism where
// the strategy needs randomness (Random) or frame-count bookkeeping
// (Second-Chance's clock hand).
func New(algo vmconst.Algorithm, numFrames int, seed uint64) Policy {
	switch algo {
	case vmconst.AlgoFIFO:
		return newFIFO()
	case vmconst.AlgoSecondChance:
		return newSecondChance(numFrames)
	case vmconst.AlgoMRU:
		return newMRU()
	case vmconst.AlgoRandom:
		return newRandom(seed)
	case vmconst.AlgoOPT:
		return newOPT()
	default:
		panic("policy: unknown algorithm")
	}
}

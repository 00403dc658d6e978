package policy

import (
	"github.com/biscuit-labs/pagingsim/internal/page"
	"github.com/biscuit-labs/pagingsim/internal/rng"
)

// random evicts a uniformly chosen resident page using the
// simulator's own deterministic LCG: this keeps both engines' outputs
// reproducible for a given seed even though their choices are
// statistically independent of each other.
type random struct {
	g *rng.LCG
}

func newRandom(seed uint64) *random {
	return &random{g: rng.New(seed)}
}

func (r *random) Name() string { return "Random" }

func (r *random) OnPageLoaded(p *page.Page)   {}
func (r *random) OnPageEvicted(p *page.Page)  {}
func (r *random) OnPageAccessed(p *page.Page) {}

func (r *random) ChooseVictim(reg Registry) (int, bool) {
	n := reg.NumFrames()
	var occupants []int
	for i := 0; i < n; i++ {
		if id, occupied := reg.FrameOccupant(i); occupied {
			occupants = append(occupants, id)
		}
	}
	if len(occupants) == 0 {
		return 0, false
	}
	return occupants[r.g.Intn(len(occupants))], true
}

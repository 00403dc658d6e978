package policy

import "github.com/biscuit-labs/pagingsim/internal/page"

// opt is Belady's clairvoyant optimum. All of its state -- the
// future-use cursor and cached next-use position -- lives directly on
// the page, so the policy value itself is stateless besides the
// tie-breaking scan order.
type opt struct{}

func newOPT() *opt {
	return &opt{}
}

func (o *opt) Name() string { return "OPT" }

func (o *opt) OnPageLoaded(p *page.Page) {
	p.RecomputeNextUse()
}

func (o *opt) OnPageEvicted(p *page.Page) {
	p.RecomputeNextUse()
}

// OnPageAccessed advances the page past the touch that just happened.
// Recomputing immediately here (rather than waiting for the next
// OnPageLoaded/OnPageEvicted) is deliberate: without it, a page touched
// this instant would report its own just-finished access as its "next"
// use for the rest of the current instruction, biasing ChooseVictim
// against evicting it for the wrong reason.
func (o *opt) OnPageAccessed(p *page.Page) {
	p.AdvanceCursor()
}

func (o *opt) ChooseVictim(reg Registry) (int, bool) {
	n := reg.NumFrames()
	bestID := 0
	var bestNext int64 = -2
	found := false
	for i := 0; i < n; i++ {
		id, occupied := reg.FrameOccupant(i)
		if !occupied {
			continue
		}
		pg := reg.Page(id)
		if pg == nil {
			continue
		}
		if !pg.HasFutureUse() {
			return id, true
		}
		if !found || pg.CachedNextUse > bestNext {
			bestID = id
			bestNext = pg.CachedNextUse
			found = true
		}
	}
	return bestID, found
}

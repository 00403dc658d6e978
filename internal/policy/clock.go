package policy

import "github.com/biscuit-labs/pagingsim/internal/page"

// secondChance implements the clock algorithm: a hand walks the frame
// array cyclically, clearing reference bits until it finds one
// already clear. It is the only policy that mutates a page's ref bit
// during victim selection.
type secondChance struct {
	numFrames int
	hand      int
}

func newSecondChance(numFrames int) *secondChance {
	return &secondChance{numFrames: numFrames}
}

func (s *secondChance) Name() string { return "SecondChance" }

func (s *secondChance) OnPageLoaded(p *page.Page) {
	p.RefBit = true
}

func (s *secondChance) OnPageEvicted(p *page.Page) {}

func (s *secondChance) OnPageAccessed(p *page.Page) {
	p.RefBit = true
}

func (s *secondChance) ChooseVictim(reg Registry) (int, bool) {
	n := reg.NumFrames()
	if n == 0 {
		return 0, false
	}
	var firstOccupied int = -1
	for i := 0; i < n; i++ {
		idx := (s.hand + i) % n
		id, occupied := reg.FrameOccupant(idx)
		if !occupied {
			continue
		}
		if firstOccupied < 0 {
			firstOccupied = id
		}
		pg := reg.Page(id)
		if pg == nil {
			continue
		}
		if !pg.RefBit {
			s.hand = (idx + 1) % n
			return id, true
		}
		pg.RefBit = false
	}
	// Defensive fallback: every occupied frame had its bit cleared
	// this sweep. Hand off the first occupied frame encountered.
	if firstOccupied >= 0 {
		return firstOccupied, true
	}
	return 0, false
}

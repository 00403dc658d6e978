package policy

import "github.com/biscuit-labs/pagingsim/internal/page"

// mru evicts the resident page with the largest LastUsed timestamp,
// breaking ties by scan order: when several pages share the maximum
// timestamp, the first one encountered while walking frames wins,
// deliberately kept stable rather than randomized.
type mru struct{}

func newMRU() *mru {
	return &mru{}
}

func (m *mru) Name() string { return "MRU" }

func (m *mru) OnPageLoaded(p *page.Page)   {}
func (m *mru) OnPageEvicted(p *page.Page)  {}
func (m *mru) OnPageAccessed(p *page.Page) {}

func (m *mru) ChooseVictim(reg Registry) (int, bool) {
	n := reg.NumFrames()
	bestID := 0
	var bestUsed int64 = -1
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
		if !found || pg.LastUsed > bestUsed {
			bestID = id
			bestUsed = pg.LastUsed
			found = true
		}
	}
	return bestID, found
}

package policy

import "github.com/biscuit-labs/pagingsim/internal/page"

// fifo evicts the longest-resident page. The queue holds ids in load
// order; choose_victim pops from the head, skipping any id whose page
// is no longer resident (lazy cleanup), grounded in the original
// source's PageQueue used the same way by the C reference.
type fifo struct {
	queue []int
}

func newFIFO() *fifo {
	return &fifo{}
}

func (f *fifo) Name() string { return "FIFO" }

func (f *fifo) OnPageLoaded(p *page.Page) {
	f.queue = append(f.queue, p.ID)
}

func (f *fifo) OnPageEvicted(p *page.Page) {
	// Left in the queue; choose_victim's lazy cleanup skips it next
	// time it reaches the head.
}

func (f *fifo) OnPageAccessed(p *page.Page) {}

func (f *fifo) ChooseVictim(reg Registry) (int, bool) {
	for len(f.queue) > 0 {
		id := f.queue[0]
		f.queue = f.queue[1:]
		if pg := reg.Page(id); pg != nil && pg.Resident {
			return id, true
		}
	}
	return 0, false
}

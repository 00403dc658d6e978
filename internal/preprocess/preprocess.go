// Package preprocess turns an abstract instruction stream into the
// concrete access-event trace and future-use oracle the dual
// simulator needs. It never touches real frames; its only job is to
// assign page ids deterministically and record, for every page, every
// future position at which it will be touched.
package preprocess

import (
	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

// FutureUseDataset is the read-only oracle OPT consumes. Positions is
// indexed by page id (1-based; index 0 is unused, matching the dense
// id-arena convention used throughout this module); Positions[id] is
// the strictly increasing list of absolute event indices at which
// that page is touched.
type FutureUseDataset struct {
	Positions [][]int
}

// PositionsFor returns the future-use vector for pageID, or nil if
// the id is out of range or was never touched.
func (d *FutureUseDataset) PositionsFor(pageID int) []int {
	if pageID <= 0 || pageID >= len(d.Positions) {
		return nil
	}
	return d.Positions[pageID]
}

// Output bundles everything one preprocessor pass produces: the flat
// access-event stream E (one page id per page touch), the
// instruction→event offset table O (O[i]..O[i+1] delimits the events
// instruction i produced), and the FutureUseDataset built from E.
type Output struct {
	Events    []int
	Offsets   []int
	Dataset   *FutureUseDataset
	NumPages  int // highest page id assigned, i.e. total pages created
	NumEvents int
}

// ptrRecord is the preprocessor's bookkeeping for one live (or dead)
// pointer: its owning pid and the page ids it was given in order.
// It carries no frame/residency concerns -- those belong to the MMU,
// not the oracle builder.
type ptrRecord struct {
	ownerPid int
	pages    []int
	alive    bool
}

// Run executes a single pass over list and returns the access-event
// stream, the offset table, and the future-use dataset. Page ids are
// assigned by a counter starting at 1, in instruction order -- the
// same deterministic rule the MMU engine applies to its own
// instructions, so both agree on every id.
func Run(list []instr.Instruction) *Output {
	events := make([]int, 0, len(list))
	offsets := make([]int, len(list)+1, len(list)+1)

	ptrs := map[int]*ptrRecord{}
	procPtrs := map[int][]int{} // pid -> live ptr ids, for Kill
	nextPageID := 1

	for i, ins := range list {
		offsets[i] = len(events)

		switch ins.Kind {
		case instr.New:
			n := vmconst.PagesFor(ins.Size)
			pages := make([]int, n)
			for k := 0; k < n; k++ {
				pages[k] = nextPageID
				events = append(events, nextPageID)
				nextPageID++
			}
			ptrs[ins.Ptr] = &ptrRecord{ownerPid: ins.Pid, pages: pages, alive: true}
			procPtrs[ins.Pid] = append(procPtrs[ins.Pid], ins.Ptr)

		case instr.Use:
			rec := ptrs[ins.Ptr]
			if rec == nil || !rec.alive {
				continue
			}
			events = append(events, rec.pages...)

		case instr.Delete:
			rec := ptrs[ins.Ptr]
			if rec == nil || !rec.alive {
				continue
			}
			rec.alive = false

		case instr.Kill:
			for _, ptr := range procPtrs[ins.Pid] {
				if rec := ptrs[ptr]; rec != nil {
					rec.alive = false
				}
			}
			delete(procPtrs, ins.Pid)
		}
	}
	offsets[len(list)] = len(events)

	dataset := buildDataset(events, nextPageID-1)

	return &Output{
		Events:    events,
		Offsets:   offsets,
		Dataset:   dataset,
		NumPages:  nextPageID - 1,
		NumEvents: len(events),
	}
}

// buildDataset scans the event stream once, appending each event's
// index to its page's position vector. Pages with zero uses are left
// as nil entries rather than empty-but-allocated slices.
func buildDataset(events []int, numPages int) *FutureUseDataset {
	positions := make([][]int, numPages+1)
	counts := make([]int, numPages+1)
	for _, p := range events {
		counts[p]++
	}
	for p, c := range counts {
		if c > 0 {
			positions[p] = make([]int, 0, c)
		}
	}
	for k, p := range events {
		positions[p] = append(positions[p], k)
	}
	return &FutureUseDataset{Positions: positions}
}

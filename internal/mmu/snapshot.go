package mmu

import "github.com/biscuit-labs/pagingsim/internal/vmconst"

// Snapshot is a read-only view of one instant of an Engine's state:
// which page occupies which frame, how much fragmentation each live
// ptr is carrying, and which pages are currently swapped out. It
// never aliases engine-owned slices, so callers (tests, in particular)
// can hold onto it across further Step calls without it changing
// underneath them.
type Snapshot struct {
	FrameOccupancy []int         // frame index -> page id, 0 if free
	Fragmentation  map[int]int64 // ptr id -> fragmentation bytes
	PageCounts     map[int]int   // ptr id -> number of pages backing it
	SwappedPages   []int         // page ids currently non-resident but owned by a live ptr
}

// Snapshot captures the engine's current residency and fragmentation
// state. It walks the frame table and ptr arena once; it does not
// mutate anything.
func (e *Engine) Snapshot() Snapshot {
	occ := make([]int, len(e.frames))
	for i, f := range e.frames {
		if f.occupied {
			occ[i] = f.pageID
		}
	}

	frag := make(map[int]int64, len(e.ptrs))
	counts := make(map[int]int, len(e.ptrs))
	var swapped []int
	for id, pm := range e.ptrs {
		frag[id] = pm.fragmentationBytes(vmconst.PageSize)
		counts[id] = pm.numPages()
		for _, pageID := range pm.pages {
			pg := e.pages[pageID]
			if pg != nil && !pg.Resident {
				swapped = append(swapped, pageID)
			}
		}
	}

	return Snapshot{FrameOccupancy: occ, Fragmentation: frag, PageCounts: counts, SwappedPages: swapped}
}

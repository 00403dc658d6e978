package mmu

// frameSlot is one physical frame: a fixed array reused across the
// whole run, tracking only which page (if any) currently occupies it.
type frameSlot struct {
	occupied bool
	pageID   int
}

// ptrMap is a process-visible handle to a contiguous allocation
// backed by one or more pages, in the order they were assigned.
type ptrMap struct {
	id       int
	ownerPid int
	byteSize int
	pages    []int
}

// numPages reports how many pages back this ptr, for Snapshot's
// per-ptr page counts.
func (p *ptrMap) numPages() int { return len(p.pages) }

// fragmentationBytes is this ptr's contribution to internal
// fragmentation: the padding between its requested byte size and the
// whole pages backing it.
func (p *ptrMap) fragmentationBytes(pageSize int) int64 {
	return int64(len(p.pages)*pageSize - p.byteSize)
}

// process is a pid's live bookkeeping: which ptrs it still owns.
// Processes are born lazily at the first New for a pid.
type process struct {
	pid    int
	ptrs   map[int]struct{}
	killed bool
}

func newProcess(pid int) *process {
	return &process{pid: pid, ptrs: map[int]struct{}{}}
}

// Package mmu implements the page/frame/ptr/process engine that
// executes one instruction at a time against a fixed-size physical
// memory, dispatching eviction decisions to a replacement Policy.
// Two independent Engine values -- one running OPT, one running the
// user's chosen algorithm -- are driven in lockstep by the
// coordinator in package sim.
package mmu

import (
	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/page"
	"github.com/biscuit-labs/pagingsim/internal/policy"
	"github.com/biscuit-labs/pagingsim/internal/preprocess"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
	"github.com/sirupsen/logrus"
)

// Engine is one simulator's MMU: its frame table, its page/ptr/process
// arenas, and its replacement policy. All state is process-local; the
// only thing it shares with a sibling Engine is the read-only
// FutureUseDataset built once up front and handed to both.
type Engine struct {
	Name string
	Algo vmconst.Algorithm

	pol    policy.Policy
	frames []frameSlot
	free   []int // stack of free frame indices

	pages []*page.Page // dense arena, 1-indexed; pages[0] is nil
	ptrs  map[int]*ptrMap
	procs map[int]*process

	nextPageID int
	dataset    *preprocess.FutureUseDataset

	Clock            int64
	ThrashingTime    int64
	FragBytes        int64
	SwapCount        int64
	Stats            SimStats

	log *logrus.Entry
}

// New builds an Engine with numFrames physical frames running algo.
// seed is used only by the Random policy's LCG; the other policies
// ignore it.
func New(name string, algo vmconst.Algorithm, numFrames int, seed uint64) *Engine {
	e := &Engine{
		Name:  name,
		Algo:  algo,
		pol:   policy.New(algo, numFrames, seed),
		pages: []*page.Page{nil},
		ptrs:  map[int]*ptrMap{},
		procs: map[int]*process{},
		log:   logrus.WithFields(logrus.Fields{"component": "mmu", "sim": name, "algo": algo.String()}),
	}
	e.frames = make([]frameSlot, numFrames)
	e.free = make([]int, numFrames)
	for i := 0; i < numFrames; i++ {
		e.free[i] = numFrames - 1 - i // pop from the tail, frame 0 handed out first
	}
	e.nextPageID = 1
	return e
}

// SetFutureDataset attaches the shared, read-only oracle built by the
// preprocessor. It must be called before the first instruction.
func (e *Engine) SetFutureDataset(d *preprocess.FutureUseDataset) {
	e.dataset = d
}

// Reset drops every process, ptr, and page and zeros the clocks and
// stats, but keeps the Engine itself usable afterward -- unlike Free,
// which releases the frame table and policy state too and leaves the
// Engine dead.
func (e *Engine) Reset() {
	n := len(e.frames)
	e.frames = make([]frameSlot, n)
	e.free = make([]int, n)
	for i := 0; i < n; i++ {
		e.free[i] = n - 1 - i
	}
	e.pages = []*page.Page{nil}
	e.ptrs = map[int]*ptrMap{}
	e.procs = map[int]*process{}
	e.nextPageID = 1
	e.Clock, e.ThrashingTime, e.FragBytes, e.SwapCount = 0, 0, 0, 0
	e.Stats = SimStats{}
}

// Free releases everything, including the frame table and policy
// state. The Engine must not be used afterward without a new New.
func (e *Engine) Free() {
	e.frames = nil
	e.free = nil
	e.pages = nil
	e.ptrs = nil
	e.procs = nil
	e.pol = nil
	e.dataset = nil
}

// NumFrames implements policy.Registry.
func (e *Engine) NumFrames() int { return len(e.frames) }

// FrameOccupant implements policy.Registry.
func (e *Engine) FrameOccupant(i int) (int, bool) {
	f := e.frames[i]
	return f.pageID, f.occupied
}

// Page implements policy.Registry.
func (e *Engine) Page(id int) *page.Page {
	if id <= 0 || id >= len(e.pages) {
		return nil
	}
	return e.pages[id]
}

// ProcessInstruction executes one instruction against this engine's
// state. globalIndex is accepted for callers that want to log or
// correlate against the instruction stream's position; this
// implementation does not depend on it for correctness, since the
// engine's own monotonically increasing page ids and per-page cursors
// already agree with the preprocessor by construction.
func (e *Engine) ProcessInstruction(ins instr.Instruction, globalIndex int) {
	e.Stats.TotalInstructions++
	switch ins.Kind {
	case instr.New:
		e.doNew(ins.Pid, ins.Ptr, ins.Size)
	case instr.Use:
		e.doUse(ins.Ptr)
	case instr.Delete:
		e.doDelete(ins.Ptr)
	case instr.Kill:
		e.doKill(ins.Pid)
	}
}

func (e *Engine) getOrCreateProcess(pid int) *process {
	p := e.procs[pid]
	if p == nil {
		p = newProcess(pid)
		e.procs[pid] = p
	}
	return p
}

// doNew allocates a fresh ptr of size bytes for pid, rounding up to a
// whole number of pages and bringing each new page in immediately.
func (e *Engine) doNew(pid, ptrID, size int) {
	proc := e.getOrCreateProcess(pid)
	numPages := vmconst.PagesFor(size)

	pm := &ptrMap{id: ptrID, ownerPid: pid, byteSize: size, pages: make([]int, 0, numPages)}

	for k := 0; k < numPages; k++ {
		id := e.nextPageID
		e.nextPageID++
		positions := e.dataset.PositionsFor(id)
		pg := page.New(id, pid, ptrID, k, positions)
		e.pages = append(e.pages, pg)
		pm.pages = append(pm.pages, id)

		frameIdx, evicted, ok := e.acquireFrame()
		if !ok {
			e.log.WithField("page", id).Debug("frame exhaustion on new: page remains swapped")
			e.SwapCount++
			continue
		}
		if evicted {
			e.Stats.PageFaults++
			e.Clock += vmconst.FaultCost
			e.ThrashingTime += vmconst.FaultCost
		} else {
			e.Stats.PageHits++
			e.Clock += vmconst.HitCost
		}
		e.placeResident(pg, frameIdx)
		e.pol.OnPageLoaded(pg)
		e.pol.OnPageAccessed(pg)
	}

	e.ptrs[ptrID] = pm
	proc.ptrs[ptrID] = struct{}{}

	e.Stats.PtrAllocations++
	e.Stats.BytesRequested += int64(size)
	e.Stats.PagesCreated += int64(numPages)
	e.FragBytes += pm.fragmentationBytes(vmconst.PageSize)
}

// doUse touches every page backing ptr, faulting in whichever ones are
// swapped. An unknown ptr is silently ignored rather than treated as
// an error: a workload that reuses a ptr id after deleting it would
// otherwise crash the simulation instead of producing a measurable
// (if degenerate) run.
func (e *Engine) doUse(ptrID int) {
	pm := e.ptrs[ptrID]
	if pm == nil {
		e.log.WithField("ptr", ptrID).Debug("use of unknown pointer, ignored")
		return
	}
	for _, id := range pm.pages {
		pg := e.pages[id]
		if pg.Resident {
			e.Clock += vmconst.HitCost
			e.Stats.PageHits++
			pg.LastUsed = e.Clock
			pg.RefBit = true
			e.pol.OnPageAccessed(pg)
			continue
		}

		frameIdx, _, ok := e.acquireFrame()
		if !ok {
			e.log.WithField("page", id).Debug("frame exhaustion on use: page remains swapped")
			continue
		}
		e.SwapCount--
		e.Stats.PageFaults++
		e.Clock += vmconst.FaultCost
		e.ThrashingTime += vmconst.FaultCost
		e.placeResident(pg, frameIdx)
		e.pol.OnPageLoaded(pg)
		e.pol.OnPageAccessed(pg)
	}
}

// doDelete frees every page backing ptr and removes it from its
// owning process's live set. An unknown ptr is a no-op for the same
// reason doUse ignores one.
func (e *Engine) doDelete(ptrID int) {
	pm := e.ptrs[ptrID]
	if pm == nil {
		e.log.WithField("ptr", ptrID).Debug("delete of unknown pointer, ignored")
		return
	}
	e.destroyPtr(pm)
	if proc := e.procs[pm.ownerPid]; proc != nil {
		delete(proc.ptrs, ptrID)
	}
	delete(e.ptrs, ptrID)
	e.Stats.PtrDeletions++
}

// doKill frees every ptr owned by pid and removes the process. An
// unknown pid is a no-op.
func (e *Engine) doKill(pid int) {
	proc := e.procs[pid]
	if proc == nil {
		e.log.WithField("pid", pid).Debug("kill of unknown pid, ignored")
		return
	}
	for ptrID := range proc.ptrs {
		pm := e.ptrs[ptrID]
		if pm == nil {
			continue
		}
		e.destroyPtr(pm)
		delete(e.ptrs, ptrID)
		e.Stats.PtrDeletions++
	}
	proc.killed = true
	delete(e.procs, pid)
}

// destroyPtr frees every page of pm, whether resident or swapped, and
// removes its fragmentation contribution.
func (e *Engine) destroyPtr(pm *ptrMap) {
	for _, id := range pm.pages {
		pg := e.pages[id]
		if pg.Resident {
			e.freeFrame(pg)
			e.pol.OnPageEvicted(pg)
		} else {
			e.SwapCount--
		}
	}
	e.FragBytes -= pm.fragmentationBytes(vmconst.PageSize)
}

// acquireFrame returns a frame index for a new resident page: a free
// frame if one exists (evicted=false), otherwise a frame reclaimed by
// asking the policy for a victim (evicted=true). ok is false only in
// the pathological case where no frame is free and none is occupied
// either -- the caller leaves the page swapped and counts it toward
// swap residency.
func (e *Engine) acquireFrame() (frameIdx int, evicted bool, ok bool) {
	if n := len(e.free); n > 0 {
		idx := e.free[n-1]
		e.free = e.free[:n-1]
		return idx, false, true
	}

	victimID, has := e.pol.ChooseVictim(e)
	if !has {
		victimID = e.fallbackVictim()
		if victimID == 0 {
			return 0, false, false
		}
	}
	victim := e.pages[victimID]
	frameIdx = victim.FrameIndex
	e.demote(victim) // frame is about to be reoccupied, not returned to the free list
	e.pol.OnPageEvicted(victim)
	e.Stats.PagesEvicted++
	e.SwapCount++
	return frameIdx, true, true
}

// fallbackVictim linearly scans the frame table for the first
// occupied frame, used when the policy itself reports nothing to
// evict (e.g. FIFO's queue is empty because every resident page has
// already lazily dropped out of it).
func (e *Engine) fallbackVictim() int {
	for _, f := range e.frames {
		if f.occupied {
			return f.pageID
		}
	}
	return 0
}

// placeResident marks pg resident in frameIdx and refreshes its
// access bookkeeping. Callers are responsible for the hit/fault
// accounting, since New and Use count it differently.
func (e *Engine) placeResident(pg *page.Page, frameIdx int) {
	e.frames[frameIdx] = frameSlot{occupied: true, pageID: pg.ID}
	pg.Resident = true
	pg.FrameIndex = frameIdx
	pg.RefBit = true
	pg.LastUsed = e.Clock
}

// freeFrame demotes pg to swapped and returns its frame to the free
// list. Used when a ptr/process is destroyed and the frame is not
// immediately reoccupied.
func (e *Engine) freeFrame(pg *page.Page) {
	idx := pg.FrameIndex
	e.demote(pg)
	e.free = append(e.free, idx)
}

// demote clears a resident page's frame slot and marks it swapped,
// without touching the free list -- the caller decides whether the
// frame is about to be handed to a new occupant (acquireFrame's
// eviction path) or genuinely released (freeFrame).
func (e *Engine) demote(pg *page.Page) {
	e.frames[pg.FrameIndex] = frameSlot{}
	pg.Resident = false
	pg.FrameIndex = -1
}

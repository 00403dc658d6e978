package instr

import "github.com/biscuit-labs/pagingsim/internal/rng"

// maxNewSize is the upper bound (inclusive) on a generated New's byte
// size.
const maxNewSize = 20000

// genProc tracks one simulated process's live pointers while
// generating a workload, mirroring GenProcess in the original C
// generator.
type genProc struct {
	pid  int
	ptrs []int
}

// Generate builds a pseudo-random instruction stream: a New-per-pid
// prelude, a weighted fill phase, and a trailing Kill-per-pid
// epilogue. P must be positive; N is the operation budget consumed by
// the prelude and fill phase combined (the trailing kills are not
// charged against it). The same (P, N, seed) always yields the same
// stream.
func Generate(p int, n int, seed uint64) []Instruction {
	if p <= 0 {
		panic("instr: Generate requires P > 0")
	}
	if n < 0 {
		n = 0
	}

	g := rng.New(seed)
	out := make([]Instruction, 0, n+p)
	procs := make(map[int]*genProc, p)
	var live []int // pids with a process, in creation order
	nextPtr := 1

	preludeN := p
	if n < preludeN {
		preludeN = n
	}
	for pid := 1; pid <= preludeN; pid++ {
		size := 1 + g.Intn(maxNewSize)
		out = append(out, Instruction{Kind: New, Pid: pid, Size: size, Ptr: nextPtr})
		gp := &genProc{pid: pid, ptrs: []int{nextPtr}}
		procs[pid] = gp
		live = append(live, pid)
		nextPtr++
	}

	remaining := n - preludeN
	for step := 0; step < remaining; step++ {
		if len(live) == 0 {
			break
		}
		pid := live[g.Intn(len(live))]
		gp := procs[pid]

		action := chooseAction(g, len(gp.ptrs))
		switch action {
		case New:
			size := 1 + g.Intn(maxNewSize)
			out = append(out, Instruction{Kind: New, Pid: pid, Size: size, Ptr: nextPtr})
			gp.ptrs = append(gp.ptrs, nextPtr)
			nextPtr++

		case Use:
			if len(gp.ptrs) == 0 {
				size := 1 + g.Intn(maxNewSize)
				out = append(out, Instruction{Kind: New, Pid: pid, Size: size, Ptr: nextPtr})
				gp.ptrs = append(gp.ptrs, nextPtr)
				nextPtr++
				continue
			}
			ptr := gp.ptrs[g.Intn(len(gp.ptrs))]
			out = append(out, Instruction{Kind: Use, Ptr: ptr})

		case Delete:
			if len(gp.ptrs) == 0 {
				size := 1 + g.Intn(maxNewSize)
				out = append(out, Instruction{Kind: New, Pid: pid, Size: size, Ptr: nextPtr})
				gp.ptrs = append(gp.ptrs, nextPtr)
				nextPtr++
				continue
			}
			idx := g.Intn(len(gp.ptrs))
			ptr := gp.ptrs[idx]
			gp.ptrs[idx] = gp.ptrs[len(gp.ptrs)-1]
			gp.ptrs = gp.ptrs[:len(gp.ptrs)-1]
			out = append(out, Instruction{Kind: Delete, Ptr: ptr})
		}
	}

	for pid := 1; pid <= p; pid++ {
		out = append(out, Instruction{Kind: Kill, Pid: pid})
	}
	return out
}

// chooseAction applies the weighted New/Use/Delete split: a process
// with no live pointers always gets New; one live pointer uses
// 45/35/20; more than one uses 35/40/25.
func chooseAction(g *rng.LCG, livePtrs int) Kind {
	if livePtrs == 0 {
		return New
	}
	var newW, useW, delW int
	if livePtrs == 1 {
		newW, useW, delW = 45, 35, 20
	} else {
		newW, useW, delW = 35, 40, 25
	}
	roll := g.Intn(100)
	switch {
	case roll < newW:
		return New
	case roll < newW+useW:
		return Use
	default:
		_ = delW
		return Delete
	}
}

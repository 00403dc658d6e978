// Package sim holds the dual-simulator coordinator: it preprocesses
// one workload once and drives an OPT engine and a user-chosen engine
// through it in lockstep, one instruction per external tick.
package sim

import (
	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/mmu"
	"github.com/biscuit-labs/pagingsim/internal/preprocess"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
	"github.com/sirupsen/logrus"
)

// Coordinator owns two engines -- OPT and a user-selected policy --
// sharing one precomputed FutureUseDataset, plus the instruction
// stream and the current position within it.
type Coordinator struct {
	instructions []instr.Instruction
	pre          *preprocess.Output

	OPT  *mmu.Engine
	User *mmu.Engine

	current int
	Running bool

	log *logrus.Entry
}

// New runs the preprocessor over instructions and constructs both
// engines, each with numFrames frames and its own RNG seed (the two
// seeds are independent so the engines' random choices don't
// correlate, but each run is reproducible on its own). userAlgo must
// be one of the user-selectable policies; OPT is always the other arm
// and is never user-selectable.
func New(instructions []instr.Instruction, numFrames int, userAlgo vmconst.Algorithm, optSeed, userSeed uint64) *Coordinator {
	if !userAlgo.Selectable() {
		panic("sim: userAlgo must be a user-selectable policy, not OPT")
	}

	pre := preprocess.Run(instructions)

	c := &Coordinator{
		instructions: instructions,
		pre:          pre,
		OPT:          mmu.New("OPT", vmconst.AlgoOPT, numFrames, optSeed),
		User:         mmu.New(userAlgo.String(), userAlgo, numFrames, userSeed),
		Running:      len(instructions) > 0,
		log:          logrus.WithField("component", "coordinator"),
	}
	c.OPT.SetFutureDataset(pre.Dataset)
	c.User.SetFutureDataset(pre.Dataset)
	return c
}

// Step executes the next instruction on both engines, OPT first, then
// the user's algorithm, and advances the cursor. It is a no-op once
// the stream is exhausted.
func (c *Coordinator) Step() {
	if !c.Running {
		return
	}
	ins := c.instructions[c.current]
	c.OPT.ProcessInstruction(ins, c.current)
	c.User.ProcessInstruction(ins, c.current)
	c.current++
	if c.current >= len(c.instructions) {
		c.Running = false
	}
}

// Run drives every remaining instruction to completion.
func (c *Coordinator) Run() {
	for c.Running {
		c.Step()
	}
}

// Position returns the index of the next instruction Step will
// execute.
func (c *Coordinator) Position() int {
	return c.current
}

// Total returns the number of instructions in the workload.
func (c *Coordinator) Total() int {
	return len(c.instructions)
}

// Output exposes the preprocessor's access-event view, useful for
// tests that assert properties directly against the oracle rather
// than through engine side effects.
func (c *Coordinator) Output() *preprocess.Output {
	return c.pre
}

// Free releases both engines and drops the preprocessor outputs.
func (c *Coordinator) Free() {
	c.OPT.Free()
	c.User.Free()
	c.pre = nil
	c.instructions = nil
}

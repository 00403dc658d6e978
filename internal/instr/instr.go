// Package instr models the abstract instruction stream consumed by the
// simulator: New, Use, Delete, and Kill events, plus the generator and
// text parser that produce them.
package instr

import "fmt"

// Kind enumerates the four instruction shapes.
type Kind int

const (
	// New(pid, size) allocates a pointer of size bytes for pid.
	New Kind = iota
	// Use(ptr) touches every page of ptr.
	Use
	// Delete(ptr) destroys ptr and its pages.
	Delete
	// Kill(pid) destroys every live pointer owned by pid.
	Kill
)

// String renders the instruction kind the way it appears in the text
// grammar, lower-case with no arguments.
func (k Kind) String() string {
	switch k {
	case New:
		return "new"
	case Use:
		return "use"
	case Delete:
		return "delete"
	case Kill:
		return "kill"
	default:
		return "unknown"
	}
}

// Instruction is one immutable event in the workload.
type Instruction struct {
	Kind Kind
	Pid  int
	Size int // New only
	Ptr  int // New (assigned id), Use, Delete
}

// String formats the instruction using the same grammar the parser
// accepts, so generated and parsed streams can be printed identically.
func (i Instruction) String() string {
	switch i.Kind {
	case New:
		return fmt.Sprintf("new(%d,%d)", i.Pid, i.Size)
	case Use:
		return fmt.Sprintf("use(%d)", i.Ptr)
	case Delete:
		return fmt.Sprintf("delete(%d)", i.Ptr)
	case Kill:
		return fmt.Sprintf("kill(%d)", i.Pid)
	default:
		return "?()"
	}
}

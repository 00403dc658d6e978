package instr

import (
	"bufio"
	"io"
)

// Save writes list back out in the same text grammar Parse reads, one
// instruction per line. It is the inverse of Parse: New lines carry
// only (pid, size), since ptr ids are reassigned sequentially on the
// next parse, exactly as they were assigned on generation. This makes
// generate → Save → Parse → run a real, exercisable round trip for
// any Generate call with N >= P. With N < P the generated epilogue
// kills pids that never received a New, and Parse rejects that kill.
func Save(w io.Writer, list []Instruction) error {
	bw := bufio.NewWriter(w)
	for _, ins := range list {
		if _, err := bw.WriteString(ins.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

package instr

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ptrState tracks the liveness of one sequentially assigned ptr id
// during a parse pass, mirroring PtrInfo in the original C parser.
type ptrState struct {
	ownerPid int
	alive    bool
}

// procState tracks whether a pid has been seen or killed during a
// parse pass, mirroring ProcessInfo in the original C parser.
type procState struct {
	seen   bool
	killed bool
}

// Parse reads the text workload grammar: one instruction per line,
// blank lines and #-comments ignored, trailing garbage rejected. Ptr
// identifiers are not present in the file; `new` assigns the next
// sequential id starting at 1, and later `use`/`delete` lines refer to
// a ptr by that same running count (the caller's own numbering,
// consumed verbatim in file order).
//
// On any malformed line, Parse returns the instructions read so far
// as nil and an error wrapping ErrMalformed.
func Parse(r io.Reader) ([]Instruction, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 1<<20)

	var out []Instruction
	ptrs := map[int]*ptrState{}
	procs := map[int]*procState{}
	nextPtr := 1

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ins, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		switch ins.Kind {
		case New:
			p := procs[ins.Pid]
			if p == nil {
				p = &procState{}
				procs[ins.Pid] = p
			}
			p.seen = true
			ins.Ptr = nextPtr
			ptrs[nextPtr] = &ptrState{ownerPid: ins.Pid, alive: true}
			nextPtr++

		case Use, Delete:
			st := ptrs[ins.Ptr]
			if st == nil || !st.alive {
				label := "use"
				if ins.Kind == Delete {
					label = "delete"
				}
				return nil, malformedf(lineNo, "invalid pointer id %d for %s()", ins.Ptr, label)
			}
			if ins.Kind == Delete {
				st.alive = false
			}

		case Kill:
			p := procs[ins.Pid]
			if p == nil || !p.seen || p.killed {
				return nil, malformedf(lineNo, "invalid pid %d for kill()", ins.Pid)
			}
			p.killed = true
			for _, st := range ptrs {
				if st.ownerPid == ins.Pid {
					st.alive = false
				}
			}
		}

		out = append(out, ins)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseLine recognizes exactly one of the four grammar forms and
// rejects trailing content after a syntactically valid call.
func parseLine(line string, lineNo int) (Instruction, error) {
	open := strings.IndexByte(line, '(')
	close := strings.LastIndexByte(line, ')')
	if open < 0 || close < open {
		return Instruction{}, malformedf(lineNo, "expected a call like new(pid,size)")
	}
	name := line[:open]
	args := line[open+1 : close]
	trailing := strings.TrimSpace(line[close+1:])
	if trailing != "" {
		return Instruction{}, malformedf(lineNo, "trailing characters after %s()", name)
	}

	switch name {
	case "new":
		parts := strings.Split(args, ",")
		if len(parts) != 2 {
			return Instruction{}, malformedf(lineNo, "new() takes exactly 2 arguments")
		}
		pid, err := parsePositiveUint(parts[0])
		if err != nil {
			return Instruction{}, malformedf(lineNo, "bad pid in new(): %v", err)
		}
		size, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return Instruction{}, malformedf(lineNo, "bad size in new(): %v", err)
		}
		return Instruction{Kind: New, Pid: pid, Size: int(size)}, nil

	case "use":
		ptr, err := parsePositiveUint(args)
		if err != nil {
			return Instruction{}, malformedf(lineNo, "bad ptr in use(): %v", err)
		}
		return Instruction{Kind: Use, Ptr: ptr}, nil

	case "delete":
		ptr, err := parsePositiveUint(args)
		if err != nil {
			return Instruction{}, malformedf(lineNo, "bad ptr in delete(): %v", err)
		}
		return Instruction{Kind: Delete, Ptr: ptr}, nil

	case "kill":
		pid, err := parsePositiveUint(args)
		if err != nil {
			return Instruction{}, malformedf(lineNo, "bad pid in kill(): %v", err)
		}
		return Instruction{Kind: Kill, Pid: pid}, nil

	default:
		return Instruction{}, malformedf(lineNo, "unknown instruction %q", name)
	}
}

func parsePositiveUint(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return int(n), nil
}

package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/preprocess"
)

func ins(kind instr.Kind, pid, size, ptr int) instr.Instruction {
	return instr.Instruction{Kind: kind, Pid: pid, Size: size, Ptr: ptr}
}

func TestRunAssignsSequentialPageIDs(t *testing.T) {
	list := []instr.Instruction{
		ins(instr.New, 1, 4096, 1),  // page 1
		ins(instr.New, 1, 8192, 2),  // pages 2, 3
		ins(instr.Use, 1, 0, 1),     // touches page 1
		ins(instr.Use, 1, 0, 2),     // touches pages 2, 3
	}
	out := preprocess.Run(list)
	assert.Equal(t, 3, out.NumPages)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, out.Events)
	assert.Len(t, out.Offsets, len(list)+1)
	assert.Equal(t, 0, out.Offsets[0])
	assert.Equal(t, 1, out.Offsets[1])
	assert.Equal(t, 3, out.Offsets[2])
	assert.Equal(t, 4, out.Offsets[3])
	assert.Equal(t, 6, out.Offsets[4])
}

func TestFutureUseDatasetPositions(t *testing.T) {
	list := []instr.Instruction{
		ins(instr.New, 1, 4096, 1),
		ins(instr.Use, 1, 0, 1),
		ins(instr.Use, 1, 0, 1),
	}
	out := preprocess.Run(list)
	require.NotNil(t, out.Dataset)
	assert.Equal(t, []int{0, 1, 2}, out.Dataset.PositionsFor(1))
	assert.Nil(t, out.Dataset.PositionsFor(2))
	assert.Nil(t, out.Dataset.PositionsFor(0))
}

func TestDeleteStopsFutureEvents(t *testing.T) {
	list := []instr.Instruction{
		ins(instr.New, 1, 4096, 1),
		ins(instr.Delete, 1, 0, 1),
		ins(instr.Use, 1, 0, 1), // ptr already dead, ignored
	}
	out := preprocess.Run(list)
	assert.Equal(t, []int{1}, out.Events)
}

func TestKillStopsFutureEventsForAllPtrs(t *testing.T) {
	list := []instr.Instruction{
		ins(instr.New, 1, 4096, 1),
		ins(instr.New, 1, 4096, 2),
		ins(instr.Kill, 1, 0, 0),
		ins(instr.Use, 1, 0, 1),
		ins(instr.Use, 1, 0, 2),
	}
	out := preprocess.Run(list)
	assert.Equal(t, []int{1, 2}, out.Events)
}

func TestUseOfUnknownPtrProducesNoEvents(t *testing.T) {
	list := []instr.Instruction{ins(instr.Use, 1, 0, 99)}
	out := preprocess.Run(list)
	assert.Empty(t, out.Events)
	assert.Equal(t, 0, out.NumPages)
}

package vmconst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

func TestPagesFor(t *testing.T) {
	assert.Equal(t, 1, vmconst.PagesFor(0))
	assert.Equal(t, 1, vmconst.PagesFor(1))
	assert.Equal(t, 1, vmconst.PagesFor(4096))
	assert.Equal(t, 2, vmconst.PagesFor(4097))
	assert.Equal(t, 3, vmconst.PagesFor(8193))
}

func TestAlgorithmStringAndSelectable(t *testing.T) {
	assert.Equal(t, "OPT", vmconst.AlgoOPT.String())
	assert.False(t, vmconst.AlgoOPT.Selectable())
	assert.Equal(t, "FIFO", vmconst.AlgoFIFO.String())
	assert.True(t, vmconst.AlgoFIFO.Selectable())
	assert.Equal(t, "SecondChance", vmconst.AlgoSecondChance.String())
	assert.Equal(t, "MRU", vmconst.AlgoMRU.String())
	assert.Equal(t, "Random", vmconst.AlgoRandom.String())
}

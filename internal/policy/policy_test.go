package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biscuit-labs/pagingsim/internal/page"
	"github.com/biscuit-labs/pagingsim/internal/policy"
	"github.com/biscuit-labs/pagingsim/internal/vmconst"
)

// fakeRegistry is a minimal policy.Registry backed by plain maps, used
// to drive each strategy's ChooseVictim in isolation without an MMU
// engine.
type fakeRegistry struct {
	frames []int // frame index -> page id, 0 means unoccupied
	pages  map[int]*page.Page
}

func newFakeRegistry(numFrames int) *fakeRegistry {
	return &fakeRegistry{frames: make([]int, numFrames), pages: map[int]*page.Page{}}
}

func (r *fakeRegistry) NumFrames() int { return len(r.frames) }

func (r *fakeRegistry) FrameOccupant(i int) (int, bool) {
	id := r.frames[i]
	return id, id != 0
}

func (r *fakeRegistry) Page(id int) *page.Page { return r.pages[id] }

func (r *fakeRegistry) occupy(frameIdx int, p *page.Page) {
	r.frames[frameIdx] = p.ID
	p.FrameIndex = frameIdx
	p.Resident = true
	r.pages[p.ID] = p
}

func TestFIFOEvictsLoadOrder(t *testing.T) {
	reg := newFakeRegistry(3)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	p3 := page.New(3, 1, 1, 2, nil)
	reg.occupy(0, p1)
	reg.occupy(1, p2)
	reg.occupy(2, p3)

	pol := policy.New(vmconst.AlgoFIFO, 3, 0)
	pol.OnPageLoaded(p1)
	pol.OnPageLoaded(p2)
	pol.OnPageLoaded(p3)

	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestFIFOSkipsAlreadyEvictedEntries(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	reg.occupy(0, p1)
	reg.occupy(1, p2)

	pol := policy.New(vmconst.AlgoFIFO, 2, 0)
	pol.OnPageLoaded(p1)
	pol.OnPageLoaded(p2)

	// p1 is evicted out-of-band (not via ChooseVictim): mark
	// non-resident directly, mirroring what the engine would do.
	p1.Resident = false

	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestSecondChanceClearsBitsBeforeEvicting(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	reg.occupy(0, p1)
	reg.occupy(1, p2)

	pol := policy.New(vmconst.AlgoSecondChance, 2, 0)
	pol.OnPageLoaded(p1) // sets RefBit on both
	pol.OnPageLoaded(p2)

	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	// first sweep clears both ref bits and falls back to the first
	// occupied frame since none started clear
	assert.Equal(t, 1, id)
	assert.False(t, p1.RefBit)
	assert.False(t, p2.RefBit)
}

func TestSecondChanceSkipsReferencedPage(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	reg.occupy(0, p1)
	reg.occupy(1, p2)
	p1.RefBit = false
	p2.RefBit = true

	pol := policy.New(vmconst.AlgoSecondChance, 2, 0)
	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestMRUPicksMostRecentlyUsed(t *testing.T) {
	reg := newFakeRegistry(3)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	p3 := page.New(3, 1, 1, 2, nil)
	p1.LastUsed, p2.LastUsed, p3.LastUsed = 10, 30, 20
	reg.occupy(0, p1)
	reg.occupy(1, p2)
	reg.occupy(2, p3)

	pol := policy.New(vmconst.AlgoMRU, 3, 0)
	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestMRUStableTieBreak(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, nil)
	p2 := page.New(2, 1, 1, 1, nil)
	p1.LastUsed, p2.LastUsed = 5, 5
	reg.occupy(0, p1)
	reg.occupy(1, p2)

	pol := policy.New(vmconst.AlgoMRU, 2, 0)
	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestRandomIsDeterministicForSeed(t *testing.T) {
	build := func() (*fakeRegistry, *page.Page, *page.Page, *page.Page) {
		reg := newFakeRegistry(3)
		p1 := page.New(1, 1, 1, 0, nil)
		p2 := page.New(2, 1, 1, 1, nil)
		p3 := page.New(3, 1, 1, 2, nil)
		reg.occupy(0, p1)
		reg.occupy(1, p2)
		reg.occupy(2, p3)
		return reg, p1, p2, p3
	}

	regA, _, _, _ := build()
	regB, _, _, _ := build()

	polA := policy.New(vmconst.AlgoRandom, 3, 99)
	polB := policy.New(vmconst.AlgoRandom, 3, 99)

	idA, okA := polA.ChooseVictim(regA)
	idB, okB := polB.ChooseVictim(regB)
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, idA, idB)
}

func TestRandomNoOccupantsReturnsFalse(t *testing.T) {
	reg := newFakeRegistry(2)
	pol := policy.New(vmconst.AlgoRandom, 2, 1)
	_, ok := pol.ChooseVictim(reg)
	assert.False(t, ok)
}

func TestOPTPrefersNoFutureUse(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, []int{5}) // used again later
	p2 := page.New(2, 1, 1, 1, nil)      // never used again
	reg.occupy(0, p1)
	reg.occupy(1, p2)

	pol := policy.New(vmconst.AlgoOPT, 2, 0)
	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestOPTPrefersFarthestNextUse(t *testing.T) {
	reg := newFakeRegistry(2)
	p1 := page.New(1, 1, 1, 0, []int{3})
	p2 := page.New(2, 1, 1, 1, []int{9})
	reg.occupy(0, p1)
	reg.occupy(1, p2)

	pol := policy.New(vmconst.AlgoOPT, 2, 0)
	id, ok := pol.ChooseVictim(reg)
	require.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestOPTAccessAdvancesCursorPastSelf(t *testing.T) {
	p1 := page.New(1, 1, 1, 0, []int{0, 4})
	pol := policy.New(vmconst.AlgoOPT, 1, 0)
	assert.Equal(t, int64(0), p1.CachedNextUse)
	pol.OnPageAccessed(p1)
	assert.Equal(t, int64(4), p1.CachedNextUse)
}

func TestParseAlgorithmAndSelectable(t *testing.T) {
	a, ok := vmconst.ParseAlgorithm("fifo")
	require.True(t, ok)
	assert.Equal(t, vmconst.AlgoFIFO, a)
	assert.True(t, a.Selectable())

	opt, ok := vmconst.ParseAlgorithm("opt")
	require.True(t, ok)
	assert.False(t, opt.Selectable())

	_, ok = vmconst.ParseAlgorithm("bogus")
	assert.False(t, ok)
}

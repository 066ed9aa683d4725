package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderIndex_PutLookupDelete(t *testing.T) {
	idx := NewOrderIndex()
	idx.Put(1, "alice", Bid, 100)

	side, price, owner, ok := idx.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, Bid, side)
	assert.Equal(t, owner, "alice")
	assert.EqualValues(t, 100, price)
	assert.Equal(t, 1, idx.Len())

	idx.Delete(1)
	_, _, _, ok = idx.Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, 0, idx.Len())
}

func TestOrderIndex_LookupAbsent(t *testing.T) {
	idx := NewOrderIndex()
	_, _, _, ok := idx.Lookup(999)
	assert.False(t, ok)
}

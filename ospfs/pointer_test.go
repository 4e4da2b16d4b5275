package ospfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ospfsdev/ospfs/ospfs"
)

func TestDirectSlot(t *testing.T) {
	idx, ok := ospfs.DirectSlot(0)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), idx)

	idx, ok = ospfs.DirectSlot(ospfs.NDirect - 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(ospfs.NDirect-1), idx)

	_, ok = ospfs.DirectSlot(ospfs.NDirect)
	assert.False(t, ok)
}

func TestIndirectSlot(t *testing.T) {
	_, ok := ospfs.IndirectSlot(ospfs.NDirect - 1)
	assert.False(t, ok)

	idx, ok := ospfs.IndirectSlot(ospfs.NDirect)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), idx)

	idx, ok = ospfs.IndirectSlot(ospfs.NDirect + ospfs.NIndirect - 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(ospfs.NIndirect-1), idx)
}

func TestIndirect2Slot(t *testing.T) {
	_, ok := ospfs.Indirect2Slot(ospfs.NDirect + ospfs.NIndirect - 1)
	assert.False(t, ok)

	idx, ok := ospfs.Indirect2Slot(ospfs.NDirect + ospfs.NIndirect)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), idx)

	idx, ok = ospfs.Indirect2Slot(ospfs.MaxFileBlocks - 1)
	assert.True(t, ok)
	assert.Equal(t, uint32(ospfs.NIndirect-1), idx)
}

package ospfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospfsdev/ospfs/fserrors"
	"github.com/ospfsdev/ospfs/ospfs"
)

func newTestFS(t *testing.T, totalBlocks, totalInodes uint32) *ospfs.FileSystem {
	t.Helper()
	fs, err := ospfs.Format(ospfs.FormatOptions{TotalBlocks: totalBlocks, TotalInodes: totalInodes})
	require.NoError(t, err)
	return fs
}

func TestFormat_CreatesRootDirectory(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, ok := fs.GetInode(fs.RootInode)
	require.True(t, ok)
	assert.Equal(t, ospfs.TypeDirectory, root.Type)
	assert.Equal(t, uint32(1), root.NLink)
	assert.Equal(t, uint32(0), root.Size)
}

func TestFindFreeInode_ZeroesOnClaim(t *testing.T) {
	fs := newTestFS(t, 400, 8)

	first, err := fs.FindFreeInode()
	require.NoError(t, err)
	first.Size = 12345
	first.Direct[0] = 99
	first.NLink = 1

	// Release it and claim it again; the claim must come back zeroed
	// regardless of what the previous occupant left behind.
	first.NLink = 0
	second, err := fs.FindFreeInode()
	require.NoError(t, err)
	assert.Equal(t, first.Number, second.Number)
	assert.Equal(t, uint32(0), second.Size)
	assert.Equal(t, uint32(0), second.Direct[0])
}

func TestFindFreeInode_ExhaustsTable(t *testing.T) {
	fs := newTestFS(t, 400, 2) // root claims the one available slot
	_, err := fs.FindFreeInode()
	assert.ErrorIs(t, err, fserrors.ErrOutOfSpace)
}

func TestChangeSize_GrowthBoundaries(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	inode, err := fs.FindFreeInode()
	require.NoError(t, err)
	inode.Type = ospfs.TypeRegular
	inode.NLink = 1

	cases := []uint32{
		ospfs.NDirect * ospfs.BlockSize,
		(ospfs.NDirect + 1) * ospfs.BlockSize,
		(ospfs.NDirect + ospfs.NIndirect) * ospfs.BlockSize,
		(ospfs.NDirect + ospfs.NIndirect + 1) * ospfs.BlockSize,
	}
	for _, want := range cases {
		require.NoError(t, inode.ChangeSize(fs.Device, fs.Free, want))
		assert.Equal(t, want, inode.Size)
	}

	assert.NotZero(t, inode.Indirect)
	assert.NotZero(t, inode.Indirect2)
}

func TestChangeSize_ShrinkFreesBlocks(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	inode, err := fs.FindFreeInode()
	require.NoError(t, err)
	inode.Type = ospfs.TypeRegular
	inode.NLink = 1

	before := fs.Free.FreeCount()
	require.NoError(t, inode.ChangeSize(fs.Device, fs.Free, (ospfs.NDirect+ospfs.NIndirect+1)*ospfs.BlockSize))
	require.NoError(t, inode.ChangeSize(fs.Device, fs.Free, 0))

	assert.Equal(t, before, fs.Free.FreeCount())
	assert.Zero(t, inode.Indirect)
	assert.Zero(t, inode.Indirect2)
	for _, d := range inode.Direct {
		assert.Zero(t, d)
	}
}

func TestChangeSize_OutOfSpaceRollsBackCompletely(t *testing.T) {
	// Only enough free blocks for a handful of direct blocks.
	fs := newTestFS(t, 14, 8)
	inode, err := fs.FindFreeInode()
	require.NoError(t, err)
	inode.Type = ospfs.TypeRegular
	inode.NLink = 1

	before := fs.Free.FreeCount()
	err = inode.ChangeSize(fs.Device, fs.Free, (ospfs.NDirect+ospfs.NIndirect)*ospfs.BlockSize)
	assert.ErrorIs(t, err, fserrors.ErrOutOfSpace)
	assert.Equal(t, uint32(0), inode.Size)
	assert.Equal(t, before, fs.Free.FreeCount())
}

package ospfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ospfsdev/ospfs/fserrors"
	"github.com/ospfsdev/ospfs/ospfs"
)

// TestScenario_CreateReadUnlink covers creating a file, writing and
// reading its contents back, then unlinking it and confirming the name
// no longer resolves.
func TestScenario_CreateReadUnlink(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, _ := fs.GetInode(fs.RootInode)

	file, err := fs.Create(root, "note.txt", 0o644)
	require.NoError(t, err)
	_, err = fs.Write(file, 0, []byte("remember the milk"))
	require.NoError(t, err)

	buf := make([]byte, file.Size)
	_, err = fs.Read(file, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", string(buf))

	require.NoError(t, fs.Unlink(root, "note.txt"))
	_, err = fs.Lookup(root, "note.txt")
	assert.ErrorIs(t, err, fserrors.ErrNotExist)
}

// TestScenario_HardLinkSharing covers two names sharing one inode: a
// write through one name is visible through the other, and the link
// count only drops to zero once both names are gone.
func TestScenario_HardLinkSharing(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, _ := fs.GetInode(fs.RootInode)

	original, err := fs.Create(root, "a", 0o644)
	require.NoError(t, err)
	require.NoError(t, fs.Link(root, original, "b"))

	_, err = fs.Write(original, 0, []byte("shared"))
	require.NoError(t, err)

	viaB, err := fs.Lookup(root, "b")
	require.NoError(t, err)
	buf := make([]byte, 6)
	_, err = fs.Read(viaB, 0, buf)
	require.NoError(t, err)
	assert.Equal(t, "shared", string(buf))

	require.NoError(t, fs.Unlink(root, "a"))
	assert.Equal(t, uint32(1), viaB.NLink)
	require.NoError(t, fs.Unlink(root, "b"))
	assert.Equal(t, uint32(0), viaB.NLink)
}

// TestScenario_TransactionalGrowthNearCapacity covers growing a file
// until the device runs out of space: the failed attempt must leave the
// file at its last successful size, not partially grown.
func TestScenario_TransactionalGrowthNearCapacity(t *testing.T) {
	fs := newTestFS(t, 20, 8) // 16 free data blocks after reserved geometry
	root, _ := fs.GetInode(fs.RootInode)
	file, err := fs.Create(root, "big", 0o644)
	require.NoError(t, err)

	freeBefore := fs.Free.FreeCount()
	err = fs.Resize(file, uint32(ospfs.NDirect+ospfs.NIndirect)*ospfs.BlockSize)
	require.Error(t, err)
	assert.ErrorIs(t, err, fserrors.ErrOutOfSpace)

	// The file must have been rolled all the way back to empty, and no
	// blocks leaked.
	assert.Equal(t, uint32(0), file.Size)
	assert.Equal(t, freeBefore, fs.Free.FreeCount())
}

// TestScenario_DoublyIndirectEdgeGrowthAndShrink covers crossing the
// boundary into the doubly indirect range and back out again.
func TestScenario_DoublyIndirectEdgeGrowthAndShrink(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, _ := fs.GetInode(fs.RootInode)
	file, err := fs.Create(root, "huge", 0o644)
	require.NoError(t, err)

	edgeSize := uint32(ospfs.NDirect+ospfs.NIndirect+1) * ospfs.BlockSize
	require.NoError(t, fs.Resize(file, edgeSize))
	assert.NotZero(t, file.Indirect2)

	require.NoError(t, fs.Resize(file, uint32(ospfs.NDirect+ospfs.NIndirect)*ospfs.BlockSize))
	assert.Zero(t, file.Indirect2)
	assert.NotZero(t, file.Indirect)

	require.NoError(t, fs.Resize(file, 0))
	assert.Zero(t, file.Indirect)
}

// TestScenario_ConditionalSymlinkByUID covers resolving the same
// conditional symlink differently depending on the caller's uid.
func TestScenario_ConditionalSymlinkByUID(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, _ := fs.GetInode(fs.RootInode)

	link, err := fs.Symlink(root, "profile", "root?/root/.profile:/home/guest/.profile")
	require.NoError(t, err)

	assert.Equal(t, "/root/.profile", ospfs.ResolveSymlinkTarget(link.Symlink, 0))
	assert.Equal(t, "/home/guest/.profile", ospfs.ResolveSymlinkTarget(link.Symlink, 1000))
}

// TestScenario_NameLengthGuards covers both create and symlink rejecting
// names that exceed MaxNameLen before touching the directory.
func TestScenario_NameLengthGuards(t *testing.T) {
	fs := newTestFS(t, 400, 8)
	root, _ := fs.GetInode(fs.RootInode)

	tooLong := make([]byte, ospfs.MaxNameLen+1)
	for i := range tooLong {
		tooLong[i] = 'n'
	}

	_, err := fs.Create(root, string(tooLong), 0o644)
	assert.ErrorIs(t, err, fserrors.ErrNameTooLong)

	_, err = fs.Symlink(root, string(tooLong), "/x")
	assert.ErrorIs(t, err, fserrors.ErrNameTooLong)

	assert.Equal(t, uint32(0), root.Size)
}

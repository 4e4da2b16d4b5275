package ospfs

// These sizes mirror a classic teaching Unix file system: fixed block
// size, a direct/indirect/doubly-indirect pointer tree per inode, and a
// fixed-width directory entry. None of them are load-bearing beyond
// needing to agree with each other; they were chosen to keep the inode
// and directory entry at one tidy cache-line-ish size apiece.
const (
	// BlockSize is the size, in bytes, of every block on the device.
	BlockSize = 1024

	// NDirect is the number of direct block pointers stored in an inode.
	NDirect = 10

	// PointersPerBlock is how many uint32 block numbers fit in one
	// block; it's also how many entries an indirect block holds.
	PointersPerBlock = BlockSize / 4 // 256

	// NIndirect is shorthand for PointersPerBlock, matching the spec's
	// naming for the number of blocks reachable through the singly
	// indirect pointer.
	NIndirect = PointersPerBlock

	// MaxFileBlocks is the largest number of data blocks a single inode
	// can address through direct + indirect + doubly-indirect pointers.
	MaxFileBlocks = NDirect + NIndirect + NIndirect*NIndirect

	// MaxFileSize is MaxFileBlocks expressed in bytes.
	MaxFileSize = MaxFileBlocks * BlockSize

	// MaxNameLen is the longest name (not counting the trailing NUL)
	// that fits in a directory entry.
	MaxNameLen = 59

	// DirEntSize is the on-disk size of one directory entry: a 4-byte
	// inode number followed by a NUL-terminated name buffer.
	DirEntSize = 4 + MaxNameLen + 1 // 64

	// MaxSymlinkLen is the longest symlink target (not counting the
	// trailing NUL) that fits in the union of an inode's pointer fields.
	MaxSymlinkLen = 4*(NDirect+2) - 1 // 47

	// InodeSize is the on-disk size of one inode record: a 16-byte
	// header (size, type, link count, mode) plus the 48-byte pointer
	// union shared with the inline symlink buffer.
	InodeSize = 16 + 4*(NDirect+2) // 64

	// Magic identifies a correctly formatted superblock.
	Magic = uint32(0x0C5F5053) // "OSFS" folded into one word

	// rootInodeNumber is the fixed inode number of the root directory.
	rootInodeNumber = 1
)

// FileType enumerates the kinds of object an inode can represent.
type FileType uint32

const (
	TypeNone FileType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
)

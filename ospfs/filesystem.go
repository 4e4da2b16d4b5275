package ospfs

import (
	"github.com/ospfsdev/ospfs/bitset"
	"github.com/ospfsdev/ospfs/fserrors"
)

// FileSystem ties together the block device, the free-block bitmap, and
// the fixed-size inode table into one addressable volume. Inode number 0
// is never used (matching the convention that a directory entry with
// inode 0 is blank); valid inode numbers run from 1 to len(Inodes)-1.
type FileSystem struct {
	Device *BlockDevice
	Free   *bitset.FreeBitmap
	Inodes []Inode

	RootInode uint32
}

// FormatOptions describes the geometry of a freshly formatted volume.
type FormatOptions struct {
	TotalBlocks uint32
	TotalInodes uint32
}

// Format builds a brand-new, empty volume: a root directory inode and
// nothing else. Block 0 is reserved for the boot sector, block 1 for the
// superblock, and as many blocks as needed afterward for the free-block
// bitmap and the inode table, mirroring the classic OSPFS on-disk layout.
func Format(opts FormatOptions) (*FileSystem, error) {
	if opts.TotalBlocks == 0 || opts.TotalInodes == 0 {
		return nil, fserrors.ErrInvalid
	}

	dev := NewBlockDevice(opts.TotalBlocks)
	free := bitset.NewFreeBitmap(opts.TotalBlocks)

	const bootBlock = 0
	const superBlock = 1
	const bitmapStartBlock = 2

	bitmapBlocks := (opts.TotalBlocks + (BlockSize * 8) - 1) / (BlockSize * 8)
	inodeTableStartBlock := bitmapStartBlock + bitmapBlocks
	inodesPerBlock := uint32(BlockSize / InodeSize)
	inodeTableBlocks := (opts.TotalInodes + inodesPerBlock - 1) / inodesPerBlock

	reserved := bitmapStartBlock + bitmapBlocks + inodeTableBlocks
	if reserved >= opts.TotalBlocks {
		return nil, fserrors.ErrOutOfSpace.WithMessage("geometry leaves no room for data blocks")
	}

	free.Reserve(bootBlock)
	free.Reserve(superBlock)
	for b := bitmapStartBlock; b < inodeTableStartBlock+inodeTableBlocks; b++ {
		free.Reserve(b)
	}

	fs := &FileSystem{
		Device: dev,
		Free:   free,
		Inodes: make([]Inode, opts.TotalInodes),
	}
	for i := range fs.Inodes {
		fs.Inodes[i].Number = uint32(i)
	}

	root, err := fs.FindFreeInode()
	if err != nil {
		return nil, err
	}
	root.Type = TypeDirectory
	root.NLink = 1
	fs.RootInode = root.Number

	return fs, nil
}

// GetInode returns the inode record for the given inode number. It
// returns ok=false for 0 (the reserved "no inode" sentinel) or a number
// past the end of the table.
func (fs *FileSystem) GetInode(number uint32) (*Inode, bool) {
	if number == 0 || int(number) >= len(fs.Inodes) {
		return nil, false
	}
	return &fs.Inodes[number], true
}

// FindFreeInode scans the inode table for an inode with no links
// pointing to it, claims it, and returns it zeroed out. Every caller
// that claims an inode goes through this single function, so zeroing
// happens uniformly regardless of what kind of object is being created:
// the original create/symlink/link implementations disagreed on this,
// and centralizing it here is deliberate.
func (fs *FileSystem) FindFreeInode() (*Inode, error) {
	for i := 1; i < len(fs.Inodes); i++ {
		if fs.Inodes[i].NLink == 0 {
			number := fs.Inodes[i].Number
			fs.Inodes[i] = Inode{Number: number}
			return &fs.Inodes[i], nil
		}
	}
	return nil, fserrors.ErrOutOfSpace
}

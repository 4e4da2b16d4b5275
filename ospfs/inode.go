package ospfs

import (
	"encoding/binary"
	"errors"

	"github.com/hashicorp/go-multierror"

	"github.com/ospfsdev/ospfs/bitset"
	"github.com/ospfsdev/ospfs/fserrors"
)

// Inode is the in-memory form of one inode-table record: the metadata
// header plus the direct/indirect/doubly-indirect pointer tree that
// addresses its data blocks. For symlinks, Symlink holds the target
// string instead of the pointer tree being used.
type Inode struct {
	Number uint32
	Size   uint32
	Type   FileType
	Mode   uint32
	NLink  uint32

	Direct    [NDirect]uint32
	Indirect  uint32
	Indirect2 uint32

	Symlink string
}

// sizeToBlocks returns the number of blocks required to hold size bytes,
// per ospfs_size2nblocks: ceiling division by BlockSize.
func sizeToBlocks(size uint32) uint32 {
	return (size + BlockSize - 1) / BlockSize
}

// DirectSlot returns the index into Direct that addresses file block b,
// and whether b actually falls in the direct range.
func DirectSlot(b uint32) (uint32, bool) {
	if b < NDirect {
		return b, true
	}
	return 0, false
}

// IndirectSlot returns the index into the singly indirect block that
// addresses file block b, and whether b falls in the indirect range
// (including the blocks reached through the doubly indirect pointer).
func IndirectSlot(b uint32) (uint32, bool) {
	switch {
	case b >= NDirect && b < NDirect+NIndirect:
		return b - NDirect, true
	case b >= NDirect+NIndirect && b < MaxFileBlocks:
		return (b - (NDirect + NIndirect)) % NIndirect, true
	default:
		return 0, false
	}
}

// Indirect2Slot returns the index into the doubly indirect block that
// addresses file block b's indirect block, and whether b falls in the
// doubly-indirect range.
func Indirect2Slot(b uint32) (uint32, bool) {
	if b >= NDirect+NIndirect && b < MaxFileBlocks {
		return (b - (NDirect + NIndirect)) / NIndirect, true
	}
	return 0, false
}

// indirectDirectSlot mirrors direct_index(b) for blocks reached through
// the doubly indirect pointer: the offset within the indirect block that
// the doubly indirect entry points to.
func indirectDirectSlot(b uint32) uint32 {
	return (b - (NDirect + NIndirect)) % NIndirect
}

// BlockOf returns the device block number holding the byte at offset in
// inode's data, following the same tree ospfs_inode_blockno walks. It
// returns ok=false if offset is past the inode's current size, the inode
// is a symlink, or a pointer along the way is unset.
func (oi *Inode) BlockOf(dev *BlockDevice, offset uint32) (uint32, bool) {
	if offset >= oi.Size || oi.Type == TypeSymlink {
		return 0, false
	}

	b := offset / BlockSize
	if idx2, ok := Indirect2Slot(b); ok {
		if oi.Indirect2 == 0 {
			return 0, false
		}
		indirectBlock := readUint32At(dev.Block(oi.Indirect2), idx2)
		if indirectBlock == 0 {
			return 0, false
		}
		return readUint32At(dev.Block(indirectBlock), indirectDirectSlot(b)), true
	}
	if idx, ok := IndirectSlot(b); ok {
		if oi.Indirect == 0 {
			return 0, false
		}
		return readUint32At(dev.Block(oi.Indirect), idx), true
	}
	idx, ok := DirectSlot(b)
	if !ok {
		return 0, false
	}
	return oi.Direct[idx], true
}

func readUint32At(block []byte, idx uint32) uint32 {
	return binary.LittleEndian.Uint32(block[idx*4 : idx*4+4])
}

func writeUint32At(block []byte, idx uint32, value uint32) {
	binary.LittleEndian.PutUint32(block[idx*4:idx*4+4], value)
}

// AddBlock grows oi by exactly one data block, allocating whatever
// indirect and doubly-indirect blocks are newly required. On success,
// oi.Size is rounded up past the next full block boundary, matching the
// classic add_block's two-branch rounding rule exactly. On failure the
// inode is left completely unchanged: any blocks allocated partway
// through are freed again before returning.
func (oi *Inode) AddBlock(dev *BlockDevice, free *bitset.FreeBitmap) error {
	n := sizeToBlocks(oi.Size)
	if n >= MaxFileBlocks {
		return fserrors.ErrIO
	}

	var allocated []uint32
	allocBlock := func() (uint32, error) {
		b, err := free.Allocate()
		if err != nil {
			return 0, err
		}
		allocated = append(allocated, b)
		dev.ZeroBlock(b)
		return b, nil
	}
	fail := func(cause error) error {
		for _, b := range allocated {
			free.Free(b)
		}
		return fserrors.ErrOutOfSpace.Wrap(cause)
	}

	switch {
	case n < NDirect:
		b, err := allocBlock()
		if err != nil {
			return fail(err)
		}
		oi.Direct[n] = b

	case n < NDirect+NIndirect:
		directIdx := n - NDirect
		freshIndirect := false
		if oi.Indirect == 0 {
			indBlock, err := allocBlock()
			if err != nil {
				return fail(err)
			}
			oi.Indirect = indBlock
			freshIndirect = true
		}
		dataBlock, err := allocBlock()
		if err != nil {
			if freshIndirect {
				oi.Indirect = 0
			}
			return fail(err)
		}
		writeUint32At(dev.Block(oi.Indirect), directIdx, dataBlock)

	case n < MaxFileBlocks:
		idx2, ok := Indirect2Slot(n)
		if !ok {
			return fserrors.ErrIO
		}
		dIdx := indirectDirectSlot(n)

		freshIndirect2 := false
		if oi.Indirect2 == 0 {
			blk, err := allocBlock()
			if err != nil {
				return fail(err)
			}
			oi.Indirect2 = blk
			freshIndirect2 = true
		}

		indirectBlock := readUint32At(dev.Block(oi.Indirect2), idx2)
		freshIndirect := false
		if indirectBlock == 0 {
			blk, err := allocBlock()
			if err != nil {
				if freshIndirect2 {
					oi.Indirect2 = 0
				}
				return fail(err)
			}
			indirectBlock = blk
			freshIndirect = true
			writeUint32At(dev.Block(oi.Indirect2), idx2, indirectBlock)
		}

		dataBlock, err := allocBlock()
		if err != nil {
			if freshIndirect {
				writeUint32At(dev.Block(oi.Indirect2), idx2, 0)
			}
			if freshIndirect2 {
				oi.Indirect2 = 0
			}
			return fail(err)
		}
		writeUint32At(dev.Block(indirectBlock), dIdx, dataBlock)

	default:
		return fserrors.ErrIO
	}

	if oi.Size%BlockSize != 0 {
		oi.Size += (BlockSize - oi.Size%BlockSize) + BlockSize
	} else {
		oi.Size += BlockSize
	}
	return nil
}

// RemoveBlock shrinks oi by exactly one data block from the end of the
// file, freeing any indirect or doubly-indirect blocks that become
// empty as a result, per remove_block.
func (oi *Inode) RemoveBlock(dev *BlockDevice, free *bitset.FreeBitmap) error {
	n := sizeToBlocks(oi.Size)
	if n == 0 {
		return fserrors.ErrInvalid
	}
	last := n - 1
	_, inIndirectRange := IndirectSlot(last)
	_, inIndirect2Range := Indirect2Slot(last)

	switch {
	case !inIndirectRange:
		free.Free(oi.Direct[last])
		oi.Direct[last] = 0

	case !inIndirect2Range:
		if oi.Indirect == 0 {
			return fserrors.ErrIO
		}
		idx, _ := IndirectSlot(last)
		indBlock := dev.Block(oi.Indirect)
		free.Free(readUint32At(indBlock, idx))
		writeUint32At(indBlock, idx, 0)

		if _, stillNeeded := IndirectSlot(last - 1); last == 0 || !stillNeeded {
			free.Free(oi.Indirect)
			oi.Indirect = 0
		}

	default:
		if oi.Indirect2 == 0 {
			return fserrors.ErrIO
		}
		idx2, _ := Indirect2Slot(last)
		dIdx := indirectDirectSlot(last)

		idx2Block := dev.Block(oi.Indirect2)
		indirectBlock := readUint32At(idx2Block, idx2)
		directBlock := dev.Block(indirectBlock)
		free.Free(readUint32At(directBlock, dIdx))
		writeUint32At(directBlock, dIdx, 0)

		if dIdx == 0 {
			free.Free(indirectBlock)
			writeUint32At(idx2Block, idx2, 0)

			if _, stillNeeded := Indirect2Slot(last - 1); last == 0 || !stillNeeded {
				free.Free(oi.Indirect2)
				oi.Indirect2 = 0
			}
		}
	}

	if oi.Size%BlockSize != 0 {
		oi.Size -= oi.Size % BlockSize
	} else {
		oi.Size -= BlockSize
	}
	return nil
}

// ChangeSize resizes oi to exactly newSize bytes, growing or shrinking
// one block at a time. If growth fails partway through with a capacity
// error, the file is shrunk back to its original size before the error
// is returned, so the caller always sees an all-or-nothing resize.
func (oi *Inode) ChangeSize(dev *BlockDevice, free *bitset.FreeBitmap, newSize uint32) error {
	oldSize := oi.Size

	for sizeToBlocks(oi.Size) < sizeToBlocks(newSize) {
		err := oi.AddBlock(dev, free)
		if err == nil {
			continue
		}
		if !errors.Is(err, fserrors.ErrOutOfSpace) {
			return err
		}

		var shrinkErrs error
		for sizeToBlocks(oi.Size) > sizeToBlocks(oldSize) {
			if rerr := oi.RemoveBlock(dev, free); rerr != nil {
				shrinkErrs = multierror.Append(shrinkErrs, rerr)
				break
			}
		}
		if shrinkErrs != nil {
			return multierror.Append(err, shrinkErrs)
		}
		oi.Size = oldSize
		return err
	}

	for sizeToBlocks(oi.Size) > sizeToBlocks(newSize) {
		if err := oi.RemoveBlock(dev, free); err != nil {
			return err
		}
	}

	oi.Size = newSize
	return nil
}

// Package bitset implements the free-block bitmap used to track which
// blocks of the device are available for allocation.
package bitset

import (
	"github.com/boljen/go-bitmap"

	"github.com/ospfsdev/ospfs/fserrors"
)

// FreeBitmap tracks allocation state for a fixed number of blocks. Unlike
// the allocation bitmaps elsewhere in this codebase's lineage, a set bit
// here means the block is FREE, not in use: bit 1 is free, bit 0 is
// allocated.
type FreeBitmap struct {
	bits  bitmap.Bitmap
	total uint32
}

// NewFreeBitmap returns a FreeBitmap for total blocks, with every block
// initially marked free.
func NewFreeBitmap(total uint32) *FreeBitmap {
	bits := bitmap.New(int(total))
	for i := 0; i < int(total); i++ {
		bits.Set(i, true)
	}
	return &FreeBitmap{bits: bits, total: total}
}

// NewFreeBitmapFromBlock reconstructs a FreeBitmap from the raw bytes of
// an on-disk bitmap block, as written by Bytes.
func NewFreeBitmapFromBlock(raw []byte, total uint32) *FreeBitmap {
	bits := bitmap.New(int(total))
	for i := uint32(0); i < total; i++ {
		byteIndex := i / 8
		if int(byteIndex) >= len(raw) {
			break
		}
		bit := (raw[byteIndex] >> (i % 8)) & 1
		bits.Set(int(i), bit == 1)
	}
	return &FreeBitmap{bits: bits, total: total}
}

// Len returns the number of blocks tracked.
func (fb *FreeBitmap) Len() uint32 {
	return fb.total
}

// IsFree reports whether block n is currently unallocated.
func (fb *FreeBitmap) IsFree(n uint32) bool {
	return fb.bits.Get(int(n))
}

// Bytes returns the raw backing storage, suitable for writing directly
// to the bitmap's reserved block on the device.
func (fb *FreeBitmap) Bytes() []byte {
	return fb.bits.Data(false)
}

// Allocate finds the first free block, marks it allocated, and returns
// its index. It returns fserrors.ErrOutOfSpace if no block is free.
func (fb *FreeBitmap) Allocate() (uint32, error) {
	for i := uint32(0); i < fb.total; i++ {
		if fb.bits.Get(int(i)) {
			fb.bits.Set(int(i), false)
			return i, nil
		}
	}
	return 0, fserrors.ErrOutOfSpace
}

// Free marks block n as available again. Freeing an already-free block
// is a no-op, matching the classic OSPFS free_block behavior of not
// double-checking the caller's bookkeeping.
func (fb *FreeBitmap) Free(n uint32) {
	if n >= fb.total {
		return
	}
	fb.bits.Set(int(n), true)
}

// Reserve marks block n as allocated without going through Allocate. It
// is used during formatting to carve out the blocks owned by the
// superblock, the bitmap itself, and the inode table.
func (fb *FreeBitmap) Reserve(n uint32) {
	if n >= fb.total {
		return
	}
	fb.bits.Set(int(n), false)
}

// FreeCount returns the number of blocks currently marked free.
func (fb *FreeBitmap) FreeCount() uint32 {
	var count uint32
	for i := uint32(0); i < fb.total; i++ {
		if fb.bits.Get(int(i)) {
			count++
		}
	}
	return count
}

package ospfs

import (
	"fmt"
	"io"

	"github.com/ospfsdev/ospfs/fserrors"
)

// BlockDevice is a fixed-length array of BlockSize-byte blocks. It has no
// notion of files or inodes; it just hands back a mutable window onto a
// block's bytes, the same way ospfs_block() did in the kernel module this
// engine is descended from.
type BlockDevice struct {
	blocks [][]byte
}

// NewBlockDevice allocates an all-zero BlockDevice with the given number
// of blocks, entirely in memory.
func NewBlockDevice(totalBlocks uint32) *BlockDevice {
	blocks := make([][]byte, totalBlocks)
	for i := range blocks {
		blocks[i] = make([]byte, BlockSize)
	}
	return &BlockDevice{blocks: blocks}
}

// NewBlockDeviceFromStream reads totalBlocks worth of BlockSize-byte
// blocks out of stream, starting at its current position. It exists so
// tests can drive the engine through an io.ReadWriteSeeker, such as one
// backed by bytesextra.NewReadWriteSeeker, instead of a bare [][]byte.
func NewBlockDeviceFromStream(stream io.ReadWriteSeeker, totalBlocks uint32) (*BlockDevice, error) {
	dev := NewBlockDevice(totalBlocks)
	for i := range dev.blocks {
		if _, err := io.ReadFull(stream, dev.blocks[i]); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, fserrors.ErrIO.Wrap(err)
		}
	}
	return dev, nil
}

// TotalBlocks returns the number of blocks on the device.
func (dev *BlockDevice) TotalBlocks() uint32 {
	return uint32(len(dev.blocks))
}

// Block returns a mutable window onto the BlockSize bytes of block n.
// Writes through the returned slice are writes to the device. It panics
// if n is out of range, matching the kernel module's trust that callers
// have already validated block numbers through the pointer-tree helpers.
func (dev *BlockDevice) Block(n uint32) []byte {
	if n >= uint32(len(dev.blocks)) {
		panic(fmt.Sprintf("block %d out of range [0, %d)", n, len(dev.blocks)))
	}
	return dev.blocks[n]
}

// ZeroBlock clears block n to all zero bytes.
func (dev *BlockDevice) ZeroBlock(n uint32) {
	b := dev.Block(n)
	for i := range b {
		b[i] = 0
	}
}

// Flush writes every block to stream in order, starting at its current
// position. It's the inverse of NewBlockDeviceFromStream.
func (dev *BlockDevice) Flush(stream io.Writer) error {
	for _, b := range dev.blocks {
		if _, err := stream.Write(b); err != nil {
			return fserrors.ErrIO.Wrap(err)
		}
	}
	return nil
}

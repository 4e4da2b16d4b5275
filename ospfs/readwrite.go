package ospfs

import (
	"github.com/ospfsdev/ospfs/fserrors"
	"github.com/ospfsdev/ospfs/iocopy"
)

// Read copies up to len(buffer) bytes from inode's data starting at
// pos into buffer, never reading past the end of the file. It returns
// the number of bytes actually copied, matching ospfs_read's contract
// of clamping count to what's left in the file before looping block by
// block.
func (fs *FileSystem) Read(inode *Inode, pos uint32, buffer []byte) (int, error) {
	if pos >= inode.Size {
		return 0, nil
	}

	count := uint32(len(buffer))
	if pos+count > inode.Size {
		count = inode.Size - pos
	}

	var amount uint32
	for amount < count {
		offset := pos + amount
		blockno, ok := inode.BlockOf(fs.Device, offset)
		if !ok {
			return int(amount), fserrors.ErrIO
		}

		blockOff := offset % BlockSize
		block := fs.Device.Block(blockno)
		chunk := count - amount
		if remaining := uint32(BlockSize) - blockOff; chunk > remaining {
			chunk = remaining
		}

		n, err := iocopy.CopyOut(buffer[amount:amount+chunk], block[blockOff:blockOff+chunk])
		amount += uint32(n)
		if err != nil {
			if amount > 0 {
				return int(amount), nil
			}
			return 0, err
		}
	}
	return int(amount), nil
}

// Write copies len(data) bytes from data into inode's data starting at
// pos, growing the file via ChangeSize if the write extends past the
// current end, matching ospfs_write. Unlike Read, which copies nothing at
// or past the end of the file, a write there is not cut short.
func (fs *FileSystem) Write(inode *Inode, pos uint32, data []byte) (int, error) {
	count := uint32(len(data))
	if pos+count > inode.Size {
		if err := inode.ChangeSize(fs.Device, fs.Free, pos+count); err != nil {
			return 0, err
		}
	}

	var amount uint32
	for amount < count {
		offset := pos + amount
		blockno, ok := inode.BlockOf(fs.Device, offset)
		if !ok {
			return int(amount), fserrors.ErrIO
		}

		blockOff := offset % BlockSize
		block := fs.Device.Block(blockno)
		chunk := count - amount
		if remaining := uint32(BlockSize) - blockOff; chunk > remaining {
			chunk = remaining
		}

		n, err := iocopy.CopyIn(block[blockOff:blockOff+chunk], data[amount:amount+chunk])
		amount += uint32(n)
		if err != nil {
			if amount > 0 {
				return int(amount), nil
			}
			return 0, err
		}
	}
	return int(amount), nil
}

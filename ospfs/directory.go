package ospfs

import (
	"github.com/ospfsdev/ospfs/bitset"
	"github.com/ospfsdev/ospfs/fserrors"
)

// DirEntry is one decoded directory entry: an inode number paired with
// the name bound to it. An Inode of 0 marks a blank (tombstoned or
// never-used) slot.
type DirEntry struct {
	Inode uint32
	Name  string
}

func encodeDirEntry(e DirEntry) []byte {
	buf := make([]byte, DirEntSize)
	writeUint32At(buf, 0, e.Inode)
	copy(buf[4:4+MaxNameLen], e.Name)
	return buf
}

func decodeDirEntry(raw []byte) DirEntry {
	inode := readUint32At(raw, 0)
	nameBytes := raw[4:]
	end := 0
	for end < len(nameBytes) && nameBytes[end] != 0 {
		end++
	}
	return DirEntry{Inode: inode, Name: string(nameBytes[:end])}
}

// entryBytes returns the DirEntSize-byte window for the entry at byte
// offset within dir's data. Since DirEntSize evenly divides BlockSize, an
// entry never straddles a block boundary.
func entryBytes(dev *BlockDevice, dir *Inode, offset uint32) ([]byte, bool) {
	blockno, ok := dir.BlockOf(dev, offset)
	if !ok {
		return nil, false
	}
	blockOff := offset % BlockSize
	block := dev.Block(blockno)
	return block[blockOff : blockOff+DirEntSize], true
}

// FindEntry searches dir for a live entry named name, mirroring
// find_direntry. It returns the entry's byte offset within the
// directory's data and the decoded entry, or ok=false if no such entry
// exists.
func FindEntry(dev *BlockDevice, dir *Inode, name string) (offset uint32, entry DirEntry, ok bool) {
	for off := uint32(0); off < dir.Size; off += DirEntSize {
		raw, valid := entryBytes(dev, dir, off)
		if !valid {
			break
		}
		e := decodeDirEntry(raw)
		if e.Inode != 0 && e.Name == name {
			return off, e, true
		}
	}
	return 0, DirEntry{}, false
}

// CreateBlankEntry returns the byte offset of a blank entry in dir,
// reusing a tombstoned slot if one exists and otherwise growing the
// directory by one block, mirroring create_blank_direntry. Existing
// entries are never relocated; the directory only ever grows.
func CreateBlankEntry(dev *BlockDevice, free *bitset.FreeBitmap, dir *Inode) (uint32, error) {
	for off := uint32(0); off < dir.Size; off += DirEntSize {
		raw, ok := entryBytes(dev, dir, off)
		if !ok {
			break
		}
		if readUint32At(raw, 0) == 0 {
			return off, nil
		}
	}

	off := dir.Size
	if err := dir.AddBlock(dev, free); err != nil {
		return 0, err
	}
	raw, ok := entryBytes(dev, dir, off)
	if !ok || readUint32At(raw, 0) != 0 {
		return 0, fserrors.ErrIO
	}
	return off, nil
}

// writeEntry stores entry at the given byte offset within dir's data.
func writeEntry(dev *BlockDevice, dir *Inode, offset uint32, entry DirEntry) error {
	raw, ok := entryBytes(dev, dir, offset)
	if !ok {
		return fserrors.ErrIO
	}
	copy(raw, encodeDirEntry(entry))
	return nil
}

// ReadDir walks every live entry in dir in on-disk order, calling visit
// for each. Blank (tombstoned) entries are skipped. Iteration stops
// early if visit returns false, matching filldir's short-circuit
// contract in ospfs_dir_readdir.
func ReadDir(dev *BlockDevice, dir *Inode, visit func(DirEntry) bool) {
	for off := uint32(0); off < dir.Size; off += DirEntSize {
		raw, ok := entryBytes(dev, dir, off)
		if !ok {
			return
		}
		e := decodeDirEntry(raw)
		if e.Inode == 0 {
			continue
		}
		if !visit(e) {
			return
		}
	}
}

package ospfs

import "github.com/ospfsdev/ospfs/fserrors"

// Lookup searches dir for a live entry named name and returns the inode
// it's bound to, mirroring ospfs_dir_lookup.
func (fs *FileSystem) Lookup(dir *Inode, name string) (*Inode, error) {
	if len(name) > MaxNameLen {
		return nil, fserrors.ErrNameTooLong
	}

	_, entry, found := FindEntry(fs.Device, dir, name)
	if !found {
		return nil, fserrors.ErrNotExist
	}
	inode, ok := fs.GetInode(entry.Inode)
	if !ok {
		return nil, fserrors.ErrIO
	}
	return inode, nil
}

// ReadDirEntries returns every live entry of dir, in on-disk order.
func (fs *FileSystem) ReadDirEntries(dir *Inode) []DirEntry {
	var entries []DirEntry
	ReadDir(fs.Device, dir, func(e DirEntry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

// Create adds a new, empty regular file named name to dir, mirroring
// ospfs_create: the name-length check and the existing-entry check both
// happen before any allocation is attempted.
func (fs *FileSystem) Create(dir *Inode, name string, mode uint32) (*Inode, error) {
	if len(name) > MaxNameLen {
		return nil, fserrors.ErrNameTooLong
	}
	if _, _, found := FindEntry(fs.Device, dir, name); found {
		return nil, fserrors.ErrExists
	}

	entryOff, err := CreateBlankEntry(fs.Device, fs.Free, dir)
	if err != nil {
		return nil, err
	}

	inode, err := fs.FindFreeInode()
	if err != nil {
		return nil, err
	}
	inode.Type = TypeRegular
	inode.Mode = mode
	inode.NLink = 1

	if err := writeEntry(fs.Device, dir, entryOff, DirEntry{Inode: inode.Number, Name: name}); err != nil {
		return nil, err
	}
	return inode, nil
}

// Link binds an additional name to target within dir, mirroring
// ospfs_link. The original kernel module checked for an existing entry,
// then allocated a blank directory slot, and only *then* validated the
// new name's length -- so a too-long name would still burn a directory
// slot before being rejected. Here the length is validated first.
func (fs *FileSystem) Link(dir *Inode, target *Inode, name string) error {
	if len(name) > MaxNameLen {
		return fserrors.ErrNameTooLong
	}
	if _, _, found := FindEntry(fs.Device, dir, name); found {
		return fserrors.ErrExists
	}

	entryOff, err := CreateBlankEntry(fs.Device, fs.Free, dir)
	if err != nil {
		return err
	}

	if err := writeEntry(fs.Device, dir, entryOff, DirEntry{Inode: target.Number, Name: name}); err != nil {
		return err
	}
	target.NLink++
	return nil
}

// Symlink creates a new symlink named name in dir whose stored target is
// target, mirroring ospfs_symlink. Name and target length are both
// validated before the existing-entry check, matching the order the
// original implementation actually used.
func (fs *FileSystem) Symlink(dir *Inode, name string, target string) (*Inode, error) {
	if len(name) > MaxNameLen || len(target) > MaxSymlinkLen {
		return nil, fserrors.ErrNameTooLong
	}
	if _, _, found := FindEntry(fs.Device, dir, name); found {
		return nil, fserrors.ErrExists
	}

	inode, err := fs.FindFreeInode()
	if err != nil {
		return nil, err
	}

	entryOff, err := CreateBlankEntry(fs.Device, fs.Free, dir)
	if err != nil {
		return nil, err
	}

	inode.Type = TypeSymlink
	inode.NLink = 1
	inode.Size = uint32(len(target))
	inode.Symlink = target

	if err := writeEntry(fs.Device, dir, entryOff, DirEntry{Inode: inode.Number, Name: name}); err != nil {
		return nil, err
	}
	return inode, nil
}

// Unlink removes the entry named name from dir, decrementing the
// target's link count and freeing its data blocks once nothing
// references it anymore, mirroring ospfs_unlink. Symlinks are exempted
// from the free-on-zero-links step because their data lives inline in
// the inode rather than in allocated blocks.
func (fs *FileSystem) Unlink(dir *Inode, name string) error {
	offset, entry, found := FindEntry(fs.Device, dir, name)
	if !found {
		return fserrors.ErrNotExist
	}

	inode, ok := fs.GetInode(entry.Inode)
	if !ok {
		return fserrors.ErrIO
	}

	if err := writeEntry(fs.Device, dir, offset, DirEntry{}); err != nil {
		return err
	}

	inode.NLink--
	if inode.NLink == 0 && inode.Type != TypeSymlink {
		return inode.ChangeSize(fs.Device, fs.Free, 0)
	}
	return nil
}

// Resize changes a regular file's size via ChangeSize. Directories can
// never be resized directly, matching ospfs_notify_change's refusal of
// ATTR_SIZE changes on OSPFS_FTYPE_DIR inodes; growing a directory only
// ever happens as a side effect of CreateBlankEntry.
func (fs *FileSystem) Resize(inode *Inode, newSize uint32) error {
	if inode.Type == TypeDirectory {
		return fserrors.ErrPermission
	}
	return inode.ChangeSize(fs.Device, fs.Free, newSize)
}

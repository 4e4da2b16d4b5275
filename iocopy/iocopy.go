// Package iocopy implements the small fixed-size buffer copies the
// read/write engine uses to move bytes between a block's backing array
// and a caller-supplied buffer, reporting a fault instead of panicking
// if a copy can't be completed.
package iocopy

import (
	"github.com/noxer/bytewriter"

	"github.com/ospfsdev/ospfs/fserrors"
)

// CopyOut copies up to len(dst) bytes from src into dst and returns how
// many bytes were actually moved. It mirrors copy_to_user: a short copy
// is reported as fserrors.ErrFault rather than silently truncated.
func CopyOut(dst []byte, src []byte) (int, error) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	w := bytewriter.New(dst)
	written, err := w.Write(src[:n])
	if err != nil {
		return 0, fserrors.ErrFault.Wrap(err)
	}
	if written < n {
		return written, fserrors.ErrFault
	}
	return written, nil
}

// CopyIn copies up to len(src) bytes from src into dst and returns how
// many bytes were actually moved. It mirrors copy_from_user.
func CopyIn(dst []byte, src []byte) (int, error) {
	return CopyOut(dst, src)
}

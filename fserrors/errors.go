// Package fserrors defines the error taxonomy used throughout the file
// system engine.
package fserrors

import (
	"fmt"
	"syscall"
)

// FSError is a string-constant error, mirroring the taxonomy every
// operation in this package reports through. Each value also carries
// the syscall.Errno a caller would see from the equivalent POSIX call.
type FSError string

const (
	// ErrNameTooLong is returned when a path component exceeds MaxNameLen.
	ErrNameTooLong = FSError("file name too long")
	// ErrExists is returned when an operation that requires a name be
	// free finds it already bound to an inode.
	ErrExists = FSError("file exists")
	// ErrNotExist is returned when a name cannot be resolved to an inode.
	ErrNotExist = FSError("no such file or directory")
	// ErrOutOfSpace is returned when the free-block bitmap or inode
	// table has no free entries left to satisfy a request.
	ErrOutOfSpace = FSError("no space left on device")
	// ErrIO is returned when on-disk state is inconsistent, such as a
	// pointer-tree block that should exist but is unset or a file grown
	// past its last addressable block, or when the backing stream fails
	// while the device is loaded or flushed.
	ErrIO = FSError("input/output error")
	// ErrFault is returned when a caller-supplied buffer cannot satisfy
	// the requested transfer.
	ErrFault = FSError("bad address")
	// ErrPermission is returned when an operation is refused for reasons
	// other than name resolution or space, such as resizing a directory.
	ErrPermission = FSError("operation not permitted")
	// ErrInvalid is returned for malformed arguments: zero inode numbers,
	// negative offsets, and the like.
	ErrInvalid = FSError("invalid argument")

	// ErrNotADirectory is returned when a path component that must be a
	// directory resolves to a non-directory inode.
	ErrNotADirectory = FSError("not a directory")
	// ErrIsADirectory is returned when an operation that requires a
	// non-directory target resolves to a directory.
	ErrIsADirectory = FSError("is a directory")
	// ErrDirectoryNotEmpty is returned when removing a directory that
	// still contains live entries.
	ErrDirectoryNotEmpty = FSError("directory not empty")
	// ErrBusy is returned when an object cannot be modified because it
	// is in active use.
	ErrBusy = FSError("device or resource busy")
	// ErrReadOnlyFileSystem is returned when a mutating operation is
	// attempted on a file system mounted without write access.
	ErrReadOnlyFileSystem = FSError("read-only file system")
)

// errnoByKind maps each FSError to the syscall.Errno a POSIX caller
// would observe for the same condition.
var errnoByKind = map[FSError]syscall.Errno{
	ErrNameTooLong:        syscall.ENAMETOOLONG,
	ErrExists:             syscall.EEXIST,
	ErrNotExist:           syscall.ENOENT,
	ErrOutOfSpace:         syscall.ENOSPC,
	ErrIO:                 syscall.EIO,
	ErrFault:              syscall.EFAULT,
	ErrPermission:         syscall.EPERM,
	ErrInvalid:            syscall.EINVAL,
	ErrNotADirectory:      syscall.ENOTDIR,
	ErrIsADirectory:       syscall.EISDIR,
	ErrDirectoryNotEmpty:  syscall.ENOTEMPTY,
	ErrBusy:               syscall.EBUSY,
	ErrReadOnlyFileSystem: syscall.EROFS,
}

// Error implements the error interface.
func (e FSError) Error() string {
	return string(e)
}

// Errno returns the syscall.Errno a POSIX caller would see for this
// condition, or syscall.EINVAL if the kind is unrecognized.
func (e FSError) Errno() syscall.Errno {
	if errno, ok := errnoByKind[e]; ok {
		return errno
	}
	return syscall.EINVAL
}

// WrappedError carries one of the FSError kinds plus context about the
// specific operation that triggered it, while still satisfying
// errors.Is(err, kind) through Unwrap.
type WrappedError struct {
	kind    FSError
	message string
}

// Error implements the error interface.
func (e *WrappedError) Error() string {
	if e.message == "" {
		return e.kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.kind.Error(), e.message)
}

// Unwrap exposes the underlying FSError so errors.Is(err, fserrors.ErrNotExist)
// works through any amount of wrapping.
func (e *WrappedError) Unwrap() error {
	return e.kind
}

// WithMessage returns a WrappedError reporting this kind with additional
// context appended to the message.
func (e FSError) WithMessage(message string) *WrappedError {
	return &WrappedError{kind: e, message: message}
}

// Wrap returns a WrappedError reporting this kind, with the message of
// err folded in. The returned error still unwraps to e, not err.
func (e FSError) Wrap(err error) *WrappedError {
	return &WrappedError{kind: e, message: err.Error()}
}

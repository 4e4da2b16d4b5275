package main

import (
	"fmt"
	"io"

	"github.com/ospfsdev/ospfs/ospfs"
)

// runDemoSequence exercises the core engine end to end the way a real
// mount plus a short shell session would, since the engine itself never
// touches a real file or device. Output goes to w so fsck can run the
// same sequence silently before printing its report.
func runDemoSequence(fs *ospfs.FileSystem, w io.Writer) error {
	root, ok := fs.GetInode(fs.RootInode)
	if !ok {
		return fmt.Errorf("volume has no root directory")
	}

	hello, err := fs.Create(root, "hello.txt", 0o644)
	if err != nil {
		return fmt.Errorf("create hello.txt: %w", err)
	}
	fmt.Fprintln(w, "create hello.txt: ok")

	if _, err := fs.Write(hello, 0, []byte("hello from ospfs\n")); err != nil {
		return fmt.Errorf("write hello.txt: %w", err)
	}
	fmt.Fprintln(w, "write hello.txt: ok")

	if err := fs.Link(root, hello, "hello-again.txt"); err != nil {
		return fmt.Errorf("link hello-again.txt: %w", err)
	}
	fmt.Fprintln(w, "link hello-again.txt: ok")

	if _, err := fs.Symlink(root, "greeting", "root?/hello.txt:/hello-again.txt"); err != nil {
		return fmt.Errorf("symlink greeting: %w", err)
	}
	fmt.Fprintln(w, "symlink greeting: ok")

	fmt.Fprintln(w, "directory listing:")
	for _, entry := range fs.ReadDirEntries(root) {
		fmt.Fprintf(w, "  %-20s inode=%d\n", entry.Name, entry.Inode)
	}

	if err := fs.Unlink(root, "hello-again.txt"); err != nil {
		return fmt.Errorf("unlink hello-again.txt: %w", err)
	}
	fmt.Fprintln(w, "unlink hello-again.txt: ok")

	return nil
}

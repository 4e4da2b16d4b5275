package ospfs

import "strings"

// conditionalSymlinkPrefix marks a symlink target as conditional: it
// resolves to one of two paths depending on the caller's effective uid.
const conditionalSymlinkPrefix = "root?"

// ResolveSymlinkTarget returns the path a symlink with the given stored
// target resolves to for a caller with the given effective uid.
//
// A target of the form "root?A:B" resolves to A for uid 0 and B for any
// other uid. Anything else is returned unchanged. Unlike the historical
// follow_link implementation this is based on, the stored target string
// is never mutated: the split happens on a local copy via strings.Cut.
func ResolveSymlinkTarget(target string, uid uint32) string {
	rest, ok := strings.CutPrefix(target, conditionalSymlinkPrefix)
	if !ok {
		return target
	}

	ifRoot, ifNotRoot, ok := strings.Cut(rest, ":")
	if !ok {
		return target
	}

	if uid == 0 {
		return ifRoot
	}
	return ifNotRoot
}

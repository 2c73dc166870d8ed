package colfmt

import "fmt"

// libraryVersion is the version of this format library.
const libraryVersion = "0.3.0"

// Version returns the format library version string, including the on-disk
// format version it reads and writes.
func Version() string {
	return fmt.Sprintf("colfmt %s (format v%d)", libraryVersion, formatVersion)
}

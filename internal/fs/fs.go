// Package fs defines the filesystem abstraction used by archive-and-delete.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Inode uint64
	IsDir bool
}

// File is an open file for reading. *os.File satisfies it.
type File interface {
	io.Reader
	io.ReaderAt
	io.Closer
	Stat() (os.FileInfo, error)
}

// TempFile is a freshly created file for writing. *os.File satisfies it.
type TempFile interface {
	io.Writer
	io.Closer
	Name() string
	Sync() error
	Chmod(mode os.FileMode) error
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	WalkDir(root string, fn iofs.WalkDirFunc) error
	Open(path string) (File, error)
	CreateTemp(dir, pattern string) (TempFile, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
	RemoveAll(path string) error
}

// Changed reports whether the file described by now differs from orig.
func Changed(orig, now FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if !now.MTime.Equal(orig.MTime) {
		return true
	}
	if now.Size != orig.Size {
		return true
	}
	return false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package bundle

import (
	"io"
	"os"

	"github.com/absfs/absfs"
)

// FileSystem is the narrow filesystem surface .coordz reading and writing
// needs: whole-file reads plus streamed creation for the zip writer. The
// absfs-backed adapter lets tests round-trip bundles against an in-memory
// filesystem.
type FileSystem interface {
	// Create creates a file for writing.
	Create(name string) (absfs.File, error)
	// ReadFile reads a file's entire contents.
	ReadFile(name string) ([]byte, error)
	// WriteFile writes data to a file.
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// osFS backs FileSystem with the real filesystem.
type osFS struct{}

// DefaultFS is the FileSystem backed by the os package.
var DefaultFS FileSystem = osFS{}

func (osFS) Create(name string) (absfs.File, error) { return os.Create(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// absFS backs FileSystem with an absfs.FileSystem such as memfs, which has
// Open/Create but no whole-file read or write calls of its own.
type absFS struct {
	fs absfs.FileSystem
}

// NewAbsFSAdapter creates a FileSystem from an absfs.FileSystem.
func NewAbsFSAdapter(fs absfs.FileSystem) FileSystem {
	return absFS{fs: fs}
}

func (a absFS) Create(name string) (absfs.File, error) {
	return a.fs.Create(name)
}

func (a absFS) ReadFile(name string) ([]byte, error) {
	f, err := a.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (a absFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	f, err := a.fs.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

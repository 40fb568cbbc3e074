// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package bundle reads and writes .coordz bundles: zip archives holding a
// schema-tagged content.json composition plus a version.txt marker. All
// filesystem access goes through the FileSystem abstraction so bundles can
// be round-tripped in memory during tests.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/avalanche-io/coordgraph/composition"
	"github.com/avalanche-io/coordgraph/jsonio"
)

const (
	contentName = "content.json"
	versionName = "version.txt"

	// FormatVersion is written to version.txt in every bundle this package
	// produces.
	FormatVersion = "1.0"
)

// BundleError reports a failed bundle operation.
type BundleError struct {
	Operation string
	Path      string
	Message   string
	Cause     error
}

func (e *BundleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bundle %s %s: %s: %v", e.Operation, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("bundle %s %s: %s", e.Operation, e.Path, e.Message)
}

func (e *BundleError) Unwrap() error { return e.Cause }

// Write encodes the composition and writes a .coordz bundle at path.
func Write(fsys FileSystem, path string, root composition.Composable) error {
	data, err := jsonio.ToJSONIndent(root)
	if err != nil {
		return &BundleError{Operation: "write", Path: path, Message: "failed to encode composition", Cause: err}
	}

	f, err := fsys.Create(path)
	if err != nil {
		return &BundleError{Operation: "write", Path: path, Message: "failed to create bundle", Cause: err}
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{versionName, []byte(FormatVersion + "\n")},
		{contentName, data},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return &BundleError{Operation: "write", Path: path, Message: "failed to add " + entry.name, Cause: err}
		}
		if _, err := w.Write(entry.data); err != nil {
			return &BundleError{Operation: "write", Path: path, Message: "failed to write " + entry.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &BundleError{Operation: "write", Path: path, Message: "failed to finalize zip", Cause: err}
	}
	return nil
}

// Read opens a .coordz bundle at path and decodes its composition.
func Read(fsys FileSystem, path string) (composition.Composable, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to open bundle", Cause: err}
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to open zip", Cause: err}
	}

	var contentFile *zip.File
	for _, f := range zr.File {
		if f.Name == contentName {
			contentFile = f
			break
		}
	}
	if contentFile == nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "missing " + contentName}
	}

	rc, err := contentFile.Open()
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to open " + contentName, Cause: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to read " + contentName, Cause: err}
	}

	root, err := jsonio.FromJSON(data)
	if err != nil {
		return nil, &BundleError{Operation: "read", Path: path, Message: "failed to parse " + contentName, Cause: err}
	}
	return root, nil
}

// ReadVersion returns the bundle's format version string, or "" when the
// bundle predates version markers.
func ReadVersion(fsys FileSystem, path string) (string, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return "", &BundleError{Operation: "read", Path: path, Message: "failed to open bundle", Cause: err}
	}
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", &BundleError{Operation: "read", Path: path, Message: "failed to open zip", Cause: err}
	}
	for _, f := range zr.File {
		if f.Name != versionName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", &BundleError{Operation: "read", Path: path, Message: "failed to open " + versionName, Cause: err}
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", &BundleError{Operation: "read", Path: path, Message: "failed to read " + versionName, Cause: err}
		}
		return string(bytes.TrimSpace(data)), nil
	}
	return "", nil
}

// Package fileutil writes transformed buffers to disk.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// Options tune WriteAtomic.
type Options struct {
	// PreserveTimestamps copies the source modification time onto the output
	PreserveTimestamps bool
}

// WriteAtomic writes data to dst through a temporary file in dst's directory
// and renames it into place. The output is owner read/write, plus the source's
// executable bits when src is given. It returns the size of the written file.
func WriteAtomic(src, dst string, data []byte, opts Options) (size int64, err error) {
	var srcInfo os.FileInfo

	if src != "" {
		if srcInfo, err = os.Stat(src); err != nil {
			return 0, fmt.Errorf("getting file info for %q: %w", src, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".mv2-*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}

	defer func() {
		tmp.Close() //nolint:errcheck,gosec // closed below on success

		if err != nil {
			os.Remove(tmp.Name()) //nolint:errcheck,gosec // best-effort cleanup
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return 0, fmt.Errorf("writing temporary file: %w", err)
	}

	perm := os.FileMode(ownerReadWrite)
	if srcInfo != nil {
		perm |= srcInfo.Mode() & executableBits
	}

	if err = tmp.Chmod(perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err = os.Rename(tmp.Name(), dst); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	if opts.PreserveTimestamps && srcInfo != nil {
		modTime := srcInfo.ModTime()
		if err = os.Chtimes(dst, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	return int64(len(data)), nil
}

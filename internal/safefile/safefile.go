// Package safefile opens log and pattern files without following symlinks
// into special files, and enforces size limits on whole-file reads.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNotRegularFile is returned for symlinks, FIFOs, devices, sockets
	// and directories.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrFileTooLarge is returned when a file exceeds the caller's limit.
	ErrFileTooLarge = errors.New("file too large")
)

// OpenRegular opens path after checking, both before and after the open,
// that it is a regular file. A FIFO swapped in between Lstat and Open would
// otherwise block the reader forever.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}
	return f, info, nil
}

// OpenLimited is OpenRegular that also rejects files larger than maxSize
// bytes. A maxSize of zero or less disables the check.
func OpenLimited(path string, maxSize int64) (*os.File, os.FileInfo, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, nil, err
	}
	if maxSize > 0 && info.Size() > maxSize {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), maxSize)
	}
	return f, info, nil
}

// ReadLimited reads a whole regular file of at most maxSize bytes. The
// limit is checked again while reading in case the file grows after Stat.
func ReadLimited(path string, maxSize int64) ([]byte, error) {
	f, _, err := OpenLimited(path, maxSize)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, maxSize)
	}
	return data, nil
}

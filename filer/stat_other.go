//go:build !linux && !darwin && !freebsd && !windows

package filer

import (
	"fmt"
	"os"
)

// Stat returns a *FileInfo struct w/ attached os.FileInfo interface.
// This platform has no birth time, so CreateTime is the modification time.
func Stat(filename string) (*FileInfo, error) {
	fileStat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat err: %w", err)
	}

	return &FileInfo{FileInfo: fileStat, CreateTime: fileStat.ModTime()}, nil
}

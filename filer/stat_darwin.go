package filer

import (
	"fmt"
	"os"
	"syscall"
	"time"
)

// Stat returns a *FileInfo struct w/ attached os.FileInfo interface.
func Stat(filename string) (*FileInfo, error) {
	fileStat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat err: %w", err)
	}

	fileInfo, ok := fileStat.Sys().(*syscall.Stat_t)
	if !ok {
		return &FileInfo{FileInfo: fileStat, CreateTime: fileStat.ModTime()}, nil
	}

	return &FileInfo{
		FileInfo:   fileStat,
		CreateTime: time.Unix(fileInfo.Birthtimespec.Sec, fileInfo.Birthtimespec.Nsec),
	}, nil
}

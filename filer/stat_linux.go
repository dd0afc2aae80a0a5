package filer

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Stat returns a *FileInfo struct w/ attached os.FileInfo interface.
// The birth time comes from statx(2); older kernels and filesystems
// without one report the inode change time.
func Stat(filename string) (*FileInfo, error) {
	fileStat, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat err: %w", err)
	}

	var statx unix.Statx_t

	err = unix.Statx(unix.AT_FDCWD, filename, 0, unix.STATX_BTIME, &statx)
	if err == nil && statx.Mask&unix.STATX_BTIME != 0 {
		return &FileInfo{
			FileInfo:   fileStat,
			CreateTime: time.Unix(statx.Btime.Sec, int64(statx.Btime.Nsec)),
		}, nil
	}

	fileInfo, ok := fileStat.Sys().(*syscall.Stat_t)
	if !ok {
		return &FileInfo{FileInfo: fileStat, CreateTime: fileStat.ModTime()}, nil
	}

	return &FileInfo{
		FileInfo:   fileStat,
		CreateTime: time.Unix(int64(fileInfo.Ctim.Sec), int64(fileInfo.Ctim.Nsec)), //nolint:unconvert
	}, nil
}

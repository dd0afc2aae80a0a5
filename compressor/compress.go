// Package compressor archives rotated log segments. Each archive holds a
// single file: the segment, stored under its own base name. The plain
// segment is deleted only after the archive is completely written.
package compressor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golift.io/rollover/filer"
)

// Format is an archive container.
type Format string

// These are the supported containers. Zip is the default.
const (
	Zip  Format = "zip"
	Gzip Format = "gzip"
	Zstd Format = "zstd"
	LZ4  Format = "lz4"
	None Format = "none"
)

// These are appended to a fileName to make the new compressed file name.
const (
	SuffixZip  = ".zip"
	SuffixGZ   = ".gz"
	SuffixZstd = ".zst"
	SuffixLZ4  = ".lz4"
)

// ErrUnknownFormat is returned for an unsupported container name.
var ErrUnknownFormat = errors.New("unknown compression format")

// CompressLevel sets the global compression level for zip and gzip.
var CompressLevel = flate.DefaultCompression //nolint:gochecknoglobals

// Filer allows overriding os-file procedures. Used by Compress; CompressWith takes its own.
var Filer = filer.Default() //nolint:gochecknoglobals

// Report contains a report of the compression operation.
// Always check for Error to make sure the New* data is valid.
type Report struct {
	Format  Format
	OldFile string
	NewFile string
	OldSize int64
	NewSize int64
	Elapsed time.Duration
	Error   error
}

// ParseFormat turns a config value into a Format. An empty value is Zip.
func ParseFormat(name string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(name))); format {
	case "":
		return Zip, nil
	case "gz":
		return Gzip, nil
	case "zst":
		return Zstd, nil
	case Zip, Gzip, Zstd, LZ4, None:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Ext returns the file name extension for the format.
func (f Format) Ext() string {
	switch f {
	case Gzip:
		return SuffixGZ
	case Zstd:
		return SuffixZstd
	case LZ4:
		return SuffixLZ4
	case None:
		return ""
	case Zip:
		fallthrough
	default:
		return SuffixZip
	}
}

func (f Format) valid() bool {
	switch f {
	case Zip, Gzip, Zstd, LZ4, None:
		return true
	default:
		return false
	}
}

// Compress archives a file and returns a report. Blocks until finished.
// On success the source file is removed. On failure the source is left in
// place and any partial archive is removed. Format None does nothing.
func Compress(fileName string, format Format) (*Report, error) {
	return CompressWith(Filer, fileName, format)
}

// CompressWith is Compress using the provided file procedures. A nil files uses Filer.
func CompressWith(files filer.Filer, fileName string, format Format) (*Report, error) {
	if files == nil {
		files = Filer
	}

	if format == "" {
		format = Zip
	}

	report := &Report{
		Format:  format,
		OldFile: fileName,
		NewFile: fileName + format.Ext(),
	}

	if !format.valid() {
		report.Error = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		return report, report.Error
	}

	level := CompressLevel
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		level = flate.DefaultCompression
	}

	oldFile, err := files.Stat(report.OldFile)
	if report.Error = err; report.Error != nil {
		return report, fmt.Errorf("stating old file: %w", report.Error)
	}

	report.OldSize = oldFile.Size()

	if format == None {
		report.NewFile, report.NewSize = report.OldFile, report.OldSize
		return report, nil
	}

	start := time.Now()
	report.NewSize, report.Error = compress(files, report, oldFile, level)
	report.Elapsed = time.Since(start)

	if report.Error != nil {
		return report, fmt.Errorf("compressor error: %w", report.Error)
	}

	return report, nil
}

// Log sends a report to a custom procedure.
func Log(report *Report, printf func(msg string, fmt ...any)) {
	if printf == nil {
		printf = log.Printf
	}

	const kilobyte = 1024

	if report.Error != nil {
		printf("Compression Error after %v: %v", report.Elapsed.Round(time.Millisecond), report.Error)
	} else {
		printf("Compression Finished in %v: %s/%dkB -> %s/%dkB", report.Elapsed.Round(time.Millisecond),
			report.OldFile, report.OldSize/kilobyte, report.NewFile, report.NewSize/kilobyte)
	}
}

// compress does the "hard" work: open the old file, open the new file, wrap
// the new file in an archive writer, copy, close everything while checking
// every error, and lastly delete the old file.
func compress(files filer.Filer, report *Report, info *filer.FileInfo, level int) (int64, error) {
	src, err := files.OpenFile(report.OldFile, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("opening source file: %w", err)
	}

	dst, err := files.OpenFile(report.NewFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		src.Close()
		return 0, fmt.Errorf("opening archive file: %w", err)
	}

	err = archive(dst, src, report.Format, filepath.Base(report.OldFile), info.ModTime(), level)
	src.Close()

	if closeErr := dst.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing archive file: %w", closeErr)
	}

	if err != nil {
		_ = files.Remove(report.NewFile)
		return 0, fmt.Errorf("%s -> %s: %w", report.OldFile, report.NewFile, err)
	}

	var size int64
	if stat, err := files.Stat(report.NewFile); err == nil {
		size = stat.Size()
	}

	if err := files.Remove(report.OldFile); err != nil {
		return size, fmt.Errorf("removing source file: %w", err)
	}

	return size, nil
}

// archive copies src into a single-entry container written to dst.
func archive(dst io.Writer, src io.Reader, format Format, name string, modTime time.Time, level int) error {
	writer, err := newWriter(dst, format, name, modTime, level)
	if err != nil {
		return err
	}

	if _, err = io.Copy(writer, src); err != nil {
		writer.Close()
		return fmt.Errorf("writing %s archive: %w", format, err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("finishing %s archive: %w", format, err)
	}

	return nil
}

func newWriter(dst io.Writer, format Format, name string, modTime time.Time, level int) (io.WriteCloser, error) {
	switch format {
	case Gzip:
		gzw, err := gzip.NewWriterLevel(dst, level)
		if err != nil {
			return nil, fmt.Errorf("creating gzip writer: %w", err)
		}

		gzw.Name = name
		gzw.ModTime = modTime
		gzw.Comment = reflect.TypeFor[Report]().PkgPath()

		return gzw, nil
	case Zstd:
		zsw, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}

		return zsw, nil
	case LZ4:
		return lz4.NewWriter(dst), nil
	default:
		return newZipEntry(dst, name, modTime, level)
	}
}

// zipEntry is the only file in a zip archive. Closing it closes the archive.
type zipEntry struct {
	io.Writer
	archive *zip.Writer
}

func newZipEntry(dst io.Writer, name string, modTime time.Time, level int) (*zipEntry, error) {
	zw := zip.NewWriter(dst)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	entry, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modTime})
	if err != nil {
		zw.Close()
		return nil, fmt.Errorf("creating zip entry: %w", err)
	}

	return &zipEntry{Writer: entry, archive: zw}, nil
}

func (z *zipEntry) Close() error {
	return z.archive.Close()
}

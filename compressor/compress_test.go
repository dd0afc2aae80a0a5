package compressor_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
)

func writeTestFile(t *testing.T, name string, size int) []byte {
	t.Helper()

	data := bytes.Repeat([]byte("2024-03-05 13:47:00 a log line\n"), size/31+1)[:size]
	if err := os.WriteFile(name, data, 0o600); err != nil {
		t.Fatalf("error creating test file: %v", err)
	}

	return data
}

func TestCompressMissing(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	r, err := compressor.Compress("/does/not/exist/file", compressor.Zip)
	assert.NotNil(err)
	assert.Contains(err.Error(), "stating old file:")
	assert.ErrorIs(err, r.Error)
}

func TestCompressFormats(t *testing.T) {
	t.Parallel()

	readers := map[compressor.Format]func(t *testing.T, name string) []byte{
		compressor.Zip: func(t *testing.T, name string) []byte {
			t.Helper()

			archive, err := zip.OpenReader(name)
			if err != nil {
				t.Fatalf("opening zip: %v", err)
			}
			defer archive.Close()

			if len(archive.File) != 1 {
				t.Fatalf("zip must have exactly one entry, has %d", len(archive.File))
			}

			if archive.File[0].Name != "app.log.2024-03-05" {
				t.Errorf("wrong zip entry name: %s", archive.File[0].Name)
			}

			entry, err := archive.File[0].Open()
			if err != nil {
				t.Fatalf("opening zip entry: %v", err)
			}
			defer entry.Close()

			data, _ := io.ReadAll(entry)

			return data
		},
		compressor.Gzip: func(t *testing.T, name string) []byte {
			t.Helper()

			file, _ := os.Open(name)
			defer file.Close()

			gzr, err := gzip.NewReader(file)
			if err != nil {
				t.Fatalf("opening gzip: %v", err)
			}

			if gzr.Name != "app.log.2024-03-05" {
				t.Errorf("wrong gzip header name: %s", gzr.Name)
			}

			data, _ := io.ReadAll(gzr)

			return data
		},
		compressor.Zstd: func(t *testing.T, name string) []byte {
			t.Helper()

			file, _ := os.Open(name)
			defer file.Close()

			zsr, err := zstd.NewReader(file)
			if err != nil {
				t.Fatalf("opening zstd: %v", err)
			}
			defer zsr.Close()

			data, _ := io.ReadAll(zsr)

			return data
		},
		compressor.LZ4: func(t *testing.T, name string) []byte {
			t.Helper()

			file, _ := os.Open(name)
			defer file.Close()

			data, _ := io.ReadAll(lz4.NewReader(file))

			return data
		},
	}

	for format, read := range readers {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			assert := assert.New(t)

			name := filepath.Join(t.TempDir(), "app.log.2024-03-05")
			data := writeTestFile(t, name, 300000)

			report, err := compressor.Compress(name, format)
			if !assert.NoError(err) {
				return
			}

			assert.NoError(report.Error)
			assert.Equal(name+format.Ext(), report.NewFile)
			assert.EqualValues(len(data), report.OldSize)
			assert.Positive(report.NewSize)
			assert.Less(report.NewSize, report.OldSize, "a repetitive log must shrink")
			assert.NoFileExists(name, "the plain file must be removed after compression")
			assert.FileExists(report.NewFile)
			assert.Equal(data, read(t, report.NewFile))
		})
	}
}

func TestCompressNone(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "app.log.2024")
	writeTestFile(t, name, 100)

	report, err := compressor.Compress(name, compressor.None)
	assert.NoError(err)
	assert.Equal(name, report.NewFile)
	assert.EqualValues(100, report.NewSize)
	assert.FileExists(name)
}

func TestCompressUnknownFormat(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "app.log.2024")
	writeTestFile(t, name, 100)

	report, err := compressor.Compress(name, compressor.Format("rar"))
	assert.ErrorIs(err, compressor.ErrUnknownFormat)
	assert.ErrorIs(report.Error, compressor.ErrUnknownFormat)
	assert.FileExists(name)
}

// A failed archive write must never lose the plain segment.
func TestCompressFailureKeepsSource(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "app.log.2024")
	data := writeTestFile(t, name, 1000)
	// A directory where the archive should go makes the archive unwritable.
	assert.NoError(os.Mkdir(name+compressor.SuffixZip, 0o750))

	report, err := compressor.Compress(name, compressor.Zip)
	assert.Error(err)
	assert.Error(report.Error)

	kept, readErr := os.ReadFile(name)
	assert.NoError(readErr)
	assert.Equal(data, kept)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tests := map[string]compressor.Format{
		"":      compressor.Zip,
		"zip":   compressor.Zip,
		" GZIP": compressor.Gzip,
		"gz":    compressor.Gzip,
		"zst":   compressor.Zstd,
		"zstd":  compressor.Zstd,
		"lz4":   compressor.LZ4,
		"none":  compressor.None,
	}

	for name, want := range tests {
		got, err := compressor.ParseFormat(name)
		assert.NoError(err, name)
		assert.Equal(want, got, name)
	}

	_, err := compressor.ParseFormat("bzip2")
	assert.ErrorIs(err, compressor.ErrUnknownFormat)
	assert.Equal(".zip", compressor.Zip.Ext())
	assert.Equal(".gz", compressor.Gzip.Ext())
	assert.Equal(".zst", compressor.Zstd.Ext())
	assert.Equal(".lz4", compressor.LZ4.Ext())
	assert.Equal("", compressor.None.Ext())
}

func TestLog(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var lines []string

	printf := func(msg string, v ...any) { lines = append(lines, fmt.Sprintf(msg, v...)) }

	compressor.Log(&compressor.Report{OldFile: "a.log", NewFile: "a.log.zip", OldSize: 4096, NewSize: 1024}, printf)
	compressor.Log(&compressor.Report{Error: compressor.ErrUnknownFormat}, printf)

	if assert.Len(lines, 2) {
		assert.Equal("Compression Finished in 0s: a.log/4kB -> a.log.zip/1kB", lines[0])
		assert.Contains(lines[1], "unknown compression format")
	}
}

// openFiler records every file it opens.
type openFiler struct {
	filer.File
	opened []string
}

func (o *openFiler) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	o.opened = append(o.opened, name)
	return o.File.OpenFile(name, flag, perm)
}

func TestCompressWith(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	name := filepath.Join(t.TempDir(), "app.log.2024-03-05")
	writeTestFile(t, name, 1000)

	files := &openFiler{}
	report, err := compressor.CompressWith(files, name, compressor.Gzip)
	assert.NoError(err)
	assert.Equal(name+".gz", report.NewFile)
	assert.Equal([]string{name, name + ".gz"}, files.opened, "the provided filer must be used")
	assert.NoFileExists(name)
}

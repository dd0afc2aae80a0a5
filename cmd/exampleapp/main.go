// Package main is a simple example app to write logs to see log rotation in action.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golift.io/rollover"
	"golift.io/rollover/compressor"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs to see log rotation in action. */

// Usage, rotate every minute into zstd archives, keep five:
//   go run ./cmd/exampleapp --pattern "'.'yyyy-MM-dd_HH-mm" --compress zstd --keep 5
//
// Usage, settings from a file; flags override it:
//   go run ./cmd/exampleapp --config rollover.yaml --timezone UTC

const (
	logFilePath     = "/tmp/myfolder/myfile.log"
	bytesPerLogLine = 500
	timeBetweenLogs = time.Millisecond * 50
)

// ///////////////////////////////////////////////////////////////////////// //

type flags struct {
	config   string
	file     string
	pattern  string
	timezone string
	compress string
	keep     int
	interval time.Duration
	verbose  bool
}

func main() {
	args := parseFlags()

	zapLog, err := newZap(args.verbose)
	if err != nil {
		panic(err)
	}
	defer zapLog.Sync() //nolint:errcheck

	zap.ReplaceGlobals(zapLog)

	config, err := args.rolloverConfig()
	if err != nil {
		zapLog.Fatal("loading configuration", zap.Error(err))
	}

	config.Log = zapLog.Named("rollover")

	logger, err := rollover.New(config)
	if err != nil {
		zapLog.Fatal("starting logger", zap.Error(err))
	}
	defer logger.Close()

	next, suffix := logger.Policy().NextRollover()
	zapLog.Info("writing logs",
		zap.String("file", logger.CurrentFile()),
		zap.Stringer("period", logger.Policy().Granularity()),
		zap.Time("next_rollover", next),
		zap.String("next_segment", logger.CurrentFile()+suffix))

	log.SetFlags(log.LstdFlags)
	log.SetOutput(logger)
	makeLogs(args.interval)
}

func parseFlags() *flags {
	args := &flags{}

	flag.StringVarP(&args.config, "config", "c", "", "YAML or JSON config file")
	flag.StringVarP(&args.file, "file", "f", "", "log file path (default "+logFilePath+")")
	flag.StringVarP(&args.pattern, "pattern", "p", "", "segment suffix pattern, e.g. '.'yyyy-MM-dd")
	flag.StringVarP(&args.timezone, "timezone", "z", "", "IANA time zone for rollovers (default Local)")
	flag.StringVar(&args.compress, "compress", "", "archive format: zip, gzip, zstd, lz4 or none")
	flag.IntVarP(&args.keep, "keep", "k", 0, "rotated segments to keep")
	flag.DurationVarP(&args.interval, "interval", "i", timeBetweenLogs, "time between fake log lines")
	flag.BoolVarP(&args.verbose, "verbose", "v", false, "print debug logs from the rotator")
	flag.Parse()

	return args
}

// rolloverConfig loads the config file, if any, then applies the flags that were set.
func (f *flags) rolloverConfig() (*rollover.Config, error) {
	config := &rollover.Config{Filepath: logFilePath}

	if f.config != "" {
		var err error
		if config, err = rollover.LoadConfig(f.config); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}

		if config.Filepath == "" {
			config.Filepath = logFilePath
		}
	}

	for name, apply := range map[string]func(){
		"file":     func() { config.Filepath = f.file },
		"pattern":  func() { config.Pattern = f.pattern },
		"timezone": func() { config.TimeZone = f.timezone },
		"compress": func() { config.Compression = compressor.Format(f.compress) },
		"keep":     func() { config.Keep = f.keep },
	} {
		if flag.CommandLine.Changed(name) {
			apply()
		}
	}

	return config, nil
}

func newZap(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment() //nolint:wrapcheck
	}

	return zap.NewProduction() //nolint:wrapcheck
}

// Write fake logs!
func makeLogs(interval time.Duration) {
	logLine := string(bytes.Repeat([]byte{'_'}, bytesPerLogLine))

	ticker := time.NewTicker(interval)
	for range ticker.C {
		fmt.Fprint(os.Stdout, ".")

		err := log.Output(0, logLine)
		if err != nil {
			panic(err)
		}
	}
}

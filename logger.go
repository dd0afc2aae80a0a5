package rollover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"go.uber.org/multierr"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
	"golift.io/rollover/placeholder"
	"golift.io/rollover/timerotator"
)

// OpenRetry is the default time to wait before retrying openLog after a failure.
// Prevents a storm of syscalls when the log file has permission or other persistent errors.
const OpenRetry = 10 * time.Second

// Logger is what you get in return for providing a Config. Use this to set log output.
// You must obtain a Logger by calling one of the New() procedures.
// Logger is the Appender its own Executor rotates.
type Logger struct {
	config      *Config       // incoming configurtation.
	log         chan *record  // incoming log messages passed across go routines.
	resp        chan *resp    // response sent back across go routines.
	signal      chan struct{} // used for Rotate and Close ops.
	size        int64         // the size of the active open file.
	path        string        // the resolved path of the active file.
	File        *os.File      // The active open file. Useful for direct writing.
	filer.Filer               // overridable file system procedures.
	policy      *Policy       // decides when to roll over.
	lastOpenErr error         // last error from openLog; used to avoid retry storm.
	lastOpened  time.Time     // when openLog was last attempted (for backoff).
}

// record is one write and the time it happened.
type record struct {
	when time.Time
	data []byte
}

// resp is used to send responses back across our go routines.
type resp struct {
	size int64
	err  error
}

// New takes in your configuration and returns a Logger you can use with
// log.SetOutput(). The provided logger rolls the file over at each period
// boundary of the configured pattern, then compresses and prunes old segments.
func New(config *Config) (*Logger, error) {
	if config == nil {
		return nil, ErrNilConfig
	}

	logger := &Logger{config: config}

	err := logger.initialize(false)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// NewMust takes in your configuration and returns a Logger you can use with
// log.SetOutput(). If an error occurs opening the log file or making log
// directories it is ignored (and retried later). Configuration errors panic.
func NewMust(config *Config) *Logger {
	if config == nil {
		panic(ErrNilConfig)
	}

	logger := &Logger{config: config}

	err := logger.initialize(true)
	if errors.Is(err, ErrConfiguration) {
		panic(err)
	}

	return logger
}

// initialize runs all the startup routines.
func (l *Logger) initialize(ignoreErrors bool) error {
	var err error

	defer func() {
		if err == nil || (ignoreErrors && !errors.Is(err, ErrConfiguration)) {
			l.log = make(chan *record)
			l.resp = make(chan *resp)
			l.signal = make(chan struct{})

			go l.processLogChannel()
		}
	}()

	if err = l.setConfigDefaults(); err != nil {
		return err
	}

	if err = l.makeDirs(); err != nil {
		return err
	}

	err = l.openFirst()

	return err
}

// setConfigDefaults does exactly what it says. Sets missing values.
// Also builds the policy, which validates the pattern and time zone.
func (l *Logger) setConfigDefaults() error {
	if l.config.Filepath == "" {
		l.config.Filepath = filepath.Join(os.TempDir(),
			filepath.Base(os.Args[0])+"-"+path.Base(reflect.TypeFor[Logger]().PkgPath())+".log")
	}

	// Placeholders are expanded exactly once, before the path is ever opened.
	l.path = placeholder.Resolve(l.config.Filepath)

	if l.config.Pattern == "" {
		l.config.Pattern = DefaultPattern
	}

	if l.config.Keep == 0 {
		l.config.Keep = DefaultKeep
	}

	if l.config.DirMode == 0 {
		l.config.DirMode = DirMode
	}

	if l.config.FileMode == 0 {
		l.config.FileMode = FileMode
	}

	if l.config.OpenRetry <= 0 {
		l.config.OpenRetry = OpenRetry
	}

	if l.config.Filer == nil {
		l.config.Filer = filer.Default()
	}

	if l.config.Reporter == nil {
		l.config.Reporter = NewZapReporter(l.config.Log)
	}

	l.Filer = l.config.Filer

	format, err := compressor.ParseFormat(string(l.config.Compression))
	if err != nil {
		return configError(err)
	}

	loc, err := l.config.location()
	if err != nil {
		return err
	}

	executor := &Executor{
		Appender: l,
		Layout:   &timerotator.Layout{Filer: l.Filer, Compression: format},
		Log:      l.config.Log,
	}

	l.policy = NewPolicy(executor, l.config.Clock)
	l.policy.SetRetention(l.config.Keep)

	if err := l.policy.SetLocation(loc); err != nil {
		return err
	}

	return l.policy.SetPattern(l.config.Pattern)
}

// makeDirs creates the directory the log file lives in.
func (l *Logger) makeDirs() error {
	layout := &timerotator.Layout{Filer: l.Filer}

	dirs, err := layout.Dirs(l.path)
	if err != nil {
		return fmt.Errorf("validating log path: %w", err)
	}

	for _, dir := range dirs {
		err := l.MkdirAll(dir, l.config.DirMode)
		if err != nil {
			return fmt.Errorf("making directories for logfiles: %w", err)
		}
	}

	return nil
}

// openFirst opens the log file at startup. A file left over from an earlier
// period is rolled over, under that period's name, on the first write.
func (l *Logger) openFirst() error {
	info, statErr := l.Stat(l.path)

	l.lastOpened = time.Now()
	if l.lastOpenErr = l.openLog(l.path); l.lastOpenErr != nil {
		return l.lastOpenErr
	}

	if statErr == nil && info.CreateTime.Before(l.now()) {
		l.policy.Anchor(info.CreateTime)
	}

	return nil
}

// processLogChannel runs in a go routine and reads the incoming logs channel.
// Received logs are dispatched to the write method. Replies are then sent to the
// response channel. This also handles forced rotation and routine shutdown.
// Every write and every rollover happens in this one go routine.
func (l *Logger) processLogChannel() {
	for {
		select {
		case rec := <-l.log:
			size, err := l.write(rec)
			l.resp <- &resp{int64(size), err}
		case _, ok := <-l.signal:
			if !ok {
				l.signal = nil
				l.resp <- &resp{err: l.stop()}

				return
			}

			size := l.size
			l.policy.Rotate()
			l.resp <- &resp{size, l.lastOpenErr}
		}
	}
}

// openLog opens the log file for appending. If it does not exist, it is created.
// Any necessary folders are also created.
func (l *Logger) openLog(fileName string) error {
	err := l.MkdirAll(filepath.Dir(fileName), l.config.DirMode)
	if err != nil {
		return fmt.Errorf("making directories for logfiles: %w", err)
	}

	l.size = 0
	if info, err := l.Stat(fileName); err == nil {
		l.size = info.Size()
	}

	file, err := l.OpenFile(fileName, os.O_WRONLY|os.O_APPEND|os.O_CREATE, l.config.FileMode)
	if err != nil {
		return fmt.Errorf("error with new logfile: %w", err)
	}

	l.File = file
	l.path = fileName

	return nil
}

// Write sends data directly to the file. This satisfies the io.WriteCloser interface.
// The write is stamped with the current time. You should generally not call this
// and instead pass *Logger into log.SetOutput().
func (l *Logger) Write(b []byte) (int, error) {
	return l.WriteRecord(l.now(), b)
}

// WriteRecord writes data stamped with when, such as a log record's own time stamp.
// If when crosses a rollover boundary, the file is rolled over first.
func (l *Logger) WriteRecord(when time.Time, b []byte) (int, error) {
	l.log <- &record{when: when, data: b}
	resp := <-l.resp

	return int(resp.size), resp.err
}

// write sends a message into the log file after everyhing checks out - from a channel message.
func (l *Logger) write(rec *record) (int, error) {
	l.policy.PreWrite(rec.when)

	if err := l.checkOpen(); err != nil {
		return 0, err
	}

	size, err := l.File.Write(rec.data)
	l.size += int64(size)

	if err != nil {
		err = fmt.Errorf("error writing log msg: %w", err)
		l.ReportError("Unable to write log file", err, KindWriteFailure)

		return size, err
	}

	return size, nil
}

// checkOpen makes sure the log file is open and ready for writing.
// When the log file cannot be opened (e.g. permission denied), retries are backed off
// to avoid a storm of syscalls that can cause high CPU and IO. Each failed retry is
// reported; writes inside the backoff window only return the last error.
func (l *Logger) checkOpen() error {
	if l.File != nil {
		return nil
	}

	if l.lastOpenErr != nil && time.Since(l.lastOpened) < l.config.OpenRetry {
		return l.lastOpenErr
	}

	l.lastOpened = time.Now()
	if l.lastOpenErr = l.openLog(l.path); l.lastOpenErr != nil {
		l.ReportError("Unable to open log file", fmt.Errorf("%w: %w", ErrOpenFailure, l.lastOpenErr), KindOpenFailure)
	}

	return l.lastOpenErr
}

// CurrentFile returns the path of the open log file, or "" if none is open.
// This satisfies the Appender interface.
func (l *Logger) CurrentFile() string {
	if l.File == nil {
		return ""
	}

	return l.path
}

// SetActiveFile closes the open log file and opens fileName for appending.
// An empty fileName only closes. This satisfies the Appender interface and
// is called by the Executor during rollover, from the logging go routine.
// A close error is returned even when fileName opens.
func (l *Logger) SetActiveFile(fileName string) error {
	err := l.close()
	if fileName == "" {
		return err
	}

	l.lastOpened = time.Now()
	l.lastOpenErr = l.openLog(fileName)

	return multierr.Append(err, l.lastOpenErr)
}

// ReportError sends a failure to the configured ErrorReporter.
// This satisfies the Appender interface.
func (l *Logger) ReportError(msg string, err error, kind ErrorKind) {
	l.config.Reporter.ReportError(msg, err, kind)
}

// Policy returns the settings of the rollover policy. Use it to change the
// pattern, time zone or retention count while the Logger runs. Use Rotate to
// force a rollover.
func (l *Logger) Policy() Settings {
	return Settings{policy: l.policy}
}

// Rotate forces the log to roll over immediately, naming the segment for the
// current period. Returns the size of the rotated log.
func (l *Logger) Rotate() (int64, error) {
	l.signal <- struct{}{}
	resp := <-l.resp

	return resp.size, resp.err
}

// Close stops the go routines, closes the active log file session and all channels.
// If another Write() is sent, a panic will ensue.
func (l *Logger) Close() error {
	defer close(l.resp)
	close(l.signal)

	return (<-l.resp).err
}

// close closes the active log file - from a channel message.
func (l *Logger) close() error {
	if l.File == nil {
		return nil
	}

	err := l.File.Close()
	l.File = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", l.path, err)
	}

	return nil
}

// stop closes everything down.
func (l *Logger) stop() error {
	if l.log != nil {
		close(l.log)
	}

	l.log = nil

	return l.close()
}

func (l *Logger) now() time.Time {
	if l.config.Clock != nil {
		return l.config.Clock()
	}

	return time.Now()
}

// Our interface must satify an io.WriteCloser and an Appender.
var (
	_ io.WriteCloser = (*Logger)(nil)
	_ Appender       = (*Logger)(nil)
)

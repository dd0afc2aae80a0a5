package rollover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
	"golift.io/rollover/compressor"
	"golift.io/rollover/filer"
	"gopkg.in/yaml.v3"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// DefaultPattern rotates daily: service.log.2024-03-05.
const DefaultPattern = "'.'yyyy-MM-dd"

// DefaultKeep is the number of rotated segments kept when Config.Keep is 0.
const DefaultKeep = 1

// Config is the data needed to create a new Logger.
// The first group of members may be loaded from a file with LoadConfig.
type Config struct {
	// Full path to log file. ${NAME}, ${NAME:default} and ${A,B} placeholders
	// are expanded from the environment once, when the Logger is created.
	Filepath string `json:"file" yaml:"file"`
	// Pattern names rotated segments and sets the rotation period.
	// Letters follow SimpleDateFormat: 'text' yyyy MM dd HH mm ... Default: DefaultPattern.
	Pattern string `json:"pattern" yaml:"pattern"`
	// TimeZone is an IANA zone name such as "UTC" or "America/New_York". Default: Local.
	TimeZone string `json:"timezone" yaml:"timezone"`
	// Keep is the number of rotated segments to keep. Default: DefaultKeep.
	// Use a negative number to keep none.
	Keep int `json:"keep" yaml:"keep"`
	// Compression is the archive format for rotated segments: zip, gzip, zstd, lz4 or none.
	Compression compressor.Format `json:"compression" yaml:"compression"`
	FileMode    os.FileMode       `json:"file_mode" yaml:"file_mode"` // POSIX mode for new files.
	DirMode     os.FileMode       `json:"dir_mode" yaml:"dir_mode"`   // POSIX mode for new folders.
	// OpenRetry is how long writes wait before retrying a log file that failed to open.
	// Each failed retry is reported. Default: OpenRetry.
	OpenRetry time.Duration `json:"open_retry" yaml:"open_retry"`

	Location *time.Location   `json:"-" yaml:"-"` // Overrides TimeZone.
	Reporter ErrorReporter    `json:"-" yaml:"-"` // Receives rotation failures. Default: NewZapReporter(Log).
	Log      *zap.Logger      `json:"-" yaml:"-"` // Rotation messages. Default: the global zap logger.
	Filer    filer.Filer      `json:"-" yaml:"-"` // Overridable file system procedures.
	Clock    func() time.Time `json:"-" yaml:"-"` // Time source for Write. Default: time.Now.
}

// LoadConfig reads a Config from a YAML file (.yaml, .yml) or a JSON file,
// which may contain comments and trailing commas.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes a Config. ext picks the decoder, like a file name extension.
func ParseConfig(data []byte, ext string) (*Config, error) {
	config := &Config{}

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, configError(fmt.Errorf("decoding yaml config: %w", err))
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
			return nil, configError(fmt.Errorf("decoding json config: %w", err))
		}
	}

	return config, nil
}

// location returns the configured time zone.
func (c *Config) location() (*time.Location, error) {
	switch {
	case c.Location != nil:
		return c.Location, nil
	case c.TimeZone == "":
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, configError(fmt.Errorf("loading time zone: %w", err))
	}

	return loc, nil
}

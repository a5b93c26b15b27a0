// config.go - scan and render configuration.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package qrscan

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unkaktus/qrscan/util"
	"gopkg.in/yaml.v3"
	"rsc.io/qr"
)

// StdioPath selects standard input as image source or standard output as
// export destination.
const StdioPath = "-"

// ConfigEnv names the environment variable holding the defaults file path.
const ConfigEnv = "QRSCAN_CONFIG"

// Config holds the settings of one qrscan run.
type Config struct {
	// Input is an image path, StdioPath, or empty for the camera.
	Input  string
	Device int
	Once   bool

	Interval time.Duration
	Timeout  time.Duration

	Preview  bool
	PreviewX int
	PreviewY int
	PreviewW int
	PreviewH int

	PrintQR   bool
	NoContent bool
	Metadata  bool

	InvertColors bool
	NoQuietZone  bool
	Foreground   string
	Background   string
	Level        string
	Scale        int
	JPEGQuality  int

	SVG   string
	PNG   string
	JPEG  string
	ASCII string

	Debug bool
}

// DefaultConfig returns the configuration used when neither flags nor the
// defaults file say otherwise.
func DefaultConfig() Config {
	return Config{
		Interval:    200 * time.Millisecond,
		Foreground:  "#000",
		Background:  "#fff",
		Level:       "M",
		Scale:       8,
		JPEGQuality: 90,
	}
}

// FileConfig is the on-disk form of the defaults file. Unset fields keep
// their current value.
type FileConfig struct {
	Foreground   *string `yaml:"fg"`
	Background   *string `yaml:"bg"`
	InvertColors *bool   `yaml:"invert_colors"`
	NoQuietZone  *bool   `yaml:"no_quiet_zone"`
	Level        *string `yaml:"ec_level"`
	Scale        *int    `yaml:"scale"`
	JPEGQuality  *int    `yaml:"jpeg_quality"`
	Interval     *string `yaml:"interval"`
	Timeout      *string `yaml:"timeout"`
	Device       *int    `yaml:"device"`
}

// DefaultConfigPath returns the path of the defaults file: $QRSCAN_CONFIG if
// set, otherwise qrscan/config.yaml under the user config directory.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qrscan", "config.yaml")
}

// LoadFile applies the defaults file at path to c, skipping the settings for
// which isSet reports true (by flag name). A missing file is not an error
// unless required is set.
func (c *Config) LoadFile(path string, required bool, isSet func(name string) bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return newError(IoError, "read config", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return newError(UsageError, "parse config", path, err)
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}
	if err := c.apply(fc, isSet); err != nil {
		return newError(UsageError, "parse config", path, err)
	}
	return nil
}

func (c *Config) apply(fc FileConfig, isSet func(string) bool) error {
	if fc.Foreground != nil && !isSet("fg") {
		c.Foreground = *fc.Foreground
	}
	if fc.Background != nil && !isSet("bg") {
		c.Background = *fc.Background
	}
	if fc.InvertColors != nil && !isSet("invert-colors") {
		c.InvertColors = *fc.InvertColors
	}
	if fc.NoQuietZone != nil && !isSet("no-quiet-zone") {
		c.NoQuietZone = *fc.NoQuietZone
	}
	if fc.Level != nil && !isSet("ec-level") {
		c.Level = *fc.Level
	}
	if fc.Scale != nil && !isSet("scale") {
		c.Scale = *fc.Scale
	}
	if fc.JPEGQuality != nil && !isSet("jpeg-quality") {
		c.JPEGQuality = *fc.JPEGQuality
	}
	if fc.Device != nil && !isSet("device") {
		c.Device = *fc.Device
	}
	if fc.Interval != nil && !isSet("interval") {
		d, err := time.ParseDuration(*fc.Interval)
		if err != nil {
			return fmt.Errorf("interval: %v", err)
		}
		c.Interval = d
	}
	if fc.Timeout != nil && !isSet("timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %v", err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks c before any I/O happens.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return newError(UsageError, "", "", err)
	}
	if _, _, err := c.Colors(); err != nil {
		return newError(UsageError, "", "", err)
	}
	if c.Scale < 1 {
		return Usagef("scale must be positive, got %d", c.Scale)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return Usagef("jpeg quality must be within 1..100, got %d", c.JPEGQuality)
	}
	if c.Interval < 0 || c.Timeout < 0 {
		return Usagef("interval and timeout must not be negative")
	}
	if c.Device < 0 {
		return Usagef("invalid camera device %d", c.Device)
	}
	if c.PreviewW < 0 || c.PreviewH < 0 {
		return Usagef("preview size must not be negative")
	}
	return nil
}

// Colors returns the dark and light module colors, swapped when
// InvertColors is set.
func (c Config) Colors() (dark, light color.RGBA, err error) {
	dark, err = util.ParseColor(c.Foreground)
	if err != nil {
		return dark, light, fmt.Errorf("foreground: %v", err)
	}
	light, err = util.ParseColor(c.Background)
	if err != nil {
		return dark, light, fmt.Errorf("background: %v", err)
	}
	if c.InvertColors {
		dark, light = light, dark
	}
	return dark, light, nil
}

// QuietZone returns the quiet zone width in modules.
func (c Config) QuietZone() int {
	if c.NoQuietZone {
		return 0
	}
	return DefaultQuietZone
}

// Exports reports whether any file export is requested.
func (c Config) Exports() bool {
	return c.SVG != "" || c.PNG != "" || c.JPEG != "" || c.ASCII != ""
}

// ParseLevel parses an error correction level letter.
func ParseLevel(s string) (qr.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return qr.L, nil
	case "M", "":
		return qr.M, nil
	case "Q":
		return qr.Q, nil
	case "H":
		return qr.H, nil
	}
	return 0, fmt.Errorf("unknown error correction level %q", s)
}

package qrscan

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"rsc.io/qr"
)

func TestDefaultConfigValid(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.NoErr(cfg.Validate())
	is.Equal(cfg.QuietZone(), DefaultQuietZone)
	is.True(!cfg.Exports())
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"level":    func(c *Config) { c.Level = "X" },
		"fg":       func(c *Config) { c.Foreground = "#12" },
		"bg":       func(c *Config) { c.Background = "nope" },
		"scale":    func(c *Config) { c.Scale = 0 },
		"quality":  func(c *Config) { c.JPEGQuality = 101 },
		"interval": func(c *Config) { c.Interval = -time.Second },
		"device":   func(c *Config) { c.Device = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			cfg := DefaultConfig()
			mutate(&cfg)
			err := cfg.Validate()
			is.Equal(KindOf(err), UsageError)
			is.Equal(ExitCode(err), ExitUsage)
		})
	}
}

func TestConfigColors(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.Foreground = "#102030"
	dark, light, err := cfg.Colors()
	is.NoErr(err)
	is.Equal(dark, color.RGBA{0x10, 0x20, 0x30, 0xff})
	is.Equal(light, color.RGBA{0xff, 0xff, 0xff, 0xff})

	cfg.InvertColors = true
	dark, light, err = cfg.Colors()
	is.NoErr(err)
	is.Equal(light, color.RGBA{0x10, 0x20, 0x30, 0xff})
	is.Equal(dark, color.RGBA{0xff, 0xff, 0xff, 0xff})
}

func TestParseLevel(t *testing.T) {
	is := is.New(t)
	for in, want := range map[string]qr.Level{"l": qr.L, "M": qr.M, "q": qr.Q, "H": qr.H} {
		got, err := ParseLevel(in)
		is.NoErr(err)
		is.Equal(got, want)
	}
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := writeFile(t, "config.yaml", []byte(`
fg: "#ff0000"
bg: "#00ff00"
ec_level: H
scale: 4
interval: 50ms
no_quiet_zone: true
`))
	cfg := DefaultConfig()
	set := map[string]bool{"bg": true}
	is.NoErr(cfg.LoadFile(path, true, func(name string) bool { return set[name] }))
	is.Equal(cfg.Foreground, "#ff0000")
	is.Equal(cfg.Background, "#fff")
	is.Equal(cfg.Level, "H")
	is.Equal(cfg.Scale, 4)
	is.Equal(cfg.Interval, 50*time.Millisecond)
	is.True(cfg.NoQuietZone)
	is.Equal(cfg.JPEGQuality, DefaultConfig().JPEGQuality)
	is.NoErr(cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "absent.yaml")
	cfg := DefaultConfig()
	is.NoErr(cfg.LoadFile(path, false, nil))
	is.Equal(cfg, DefaultConfig())

	err := cfg.LoadFile(path, true, nil)
	is.Equal(KindOf(err), IoError)
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestLoadFileInvalid(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	err := cfg.LoadFile(writeFile(t, "bad.yaml", []byte("interval: soon\n")), true, nil)
	is.Equal(KindOf(err), UsageError)

	err = cfg.LoadFile(writeFile(t, "bad.yaml", []byte("scale: [1, 2\n")), true, nil)
	is.Equal(KindOf(err), UsageError)
}

func TestDefaultConfigPathEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv(ConfigEnv, "/etc/qrscan.yaml")
	is.Equal(DefaultConfigPath(), "/etc/qrscan.yaml")
}

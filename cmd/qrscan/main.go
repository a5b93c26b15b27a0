// main.go - qrscan command line interface.
//
// To the extent possible under law, Ivan Markin waived all copyright
// and related or neighboring rights to this module of qrscan, using the creative
// commons "cc0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/unkaktus/qrscan"
)

const version = "0.3.0"

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := qrscan.DefaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "qrscan [flags] [path]",
		Short: "Scan a QR code from an image or the camera",
		Long: `Scan a QR code from an image file, standard input or the system camera
and print its content. If no path is given, the camera is used.

Examples:
  qrscan /path/to/input.png
  cat /path/to/input.png | qrscan -`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return qrscan.Usagef("You should specify at most one image path")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			qrscan.SetLogger(newLogger(stderr, cfg.Debug))
			required := configPath != ""
			if !required {
				configPath = qrscan.DefaultConfigPath()
			}
			if err := cfg.LoadFile(configPath, required, cmd.Flags().Changed); err != nil {
				return err
			}
			s := &qrscan.Scanner{
				Config: cfg,
				Stdin:  stdin,
				Stdout: stdout,
				Stderr: stderr,
			}
			return s.Run(cmd.Context())
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return qrscan.Usagef("%v", err)
	})

	f := cmd.Flags()
	f.BoolVarP(&cfg.Preview, "preview", "p", false, "Preview the camera on the terminal")
	f.IntVar(&cfg.PreviewX, "preview-x", 0, "Preview column (works with --preview)")
	f.IntVar(&cfg.PreviewY, "preview-y", 0, "Preview row (works with --preview)")
	f.IntVar(&cfg.PreviewW, "preview-w", 0, "Preview width in cells (works with --preview)")
	f.IntVar(&cfg.PreviewH, "preview-h", 0, "Preview height in cells (works with --preview)")
	f.BoolVarP(&cfg.Metadata, "metadata", "m", false, "Print metadata")
	f.BoolVar(&cfg.PrintQR, "qr", false, "Print the QR code (one module quiet zone on color terminals)")
	f.BoolVarP(&cfg.NoContent, "no-content", "n", false, "Do not print the content")
	f.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "Interval between camera scans")
	f.DurationVar(&cfg.Timeout, "timeout", 0, "Give up camera scanning after this long (0 waits forever)")
	f.BoolVar(&cfg.Once, "once", false, "Capture a single camera frame instead of scanning until a code is found")
	f.IntVar(&cfg.Device, "device", 0, "Camera device index")
	f.BoolVar(&cfg.InvertColors, "invert-colors", false, "Invert the QR code colors")
	f.StringVar(&cfg.Foreground, "fg", cfg.Foreground, "QR code foreground color")
	f.StringVar(&cfg.Background, "bg", cfg.Background, "QR code background color")
	f.BoolVar(&cfg.NoQuietZone, "no-quiet-zone", false, "Do not add quiet zone to the QR code")
	f.StringVar(&cfg.Level, "ec-level", cfg.Level, "Error correction level of the rendered QR code (L, M, Q, H)")
	f.IntVar(&cfg.Scale, "scale", cfg.Scale, "Pixels per module of exported PNG and JPEG images")
	f.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "Quality of exported JPEG images (1-100)")
	f.StringVar(&cfg.ASCII, "ascii", "", "Export the QR code as ascii text to the given path (- for stdout)")
	f.StringVar(&cfg.SVG, "svg", "", "Export the QR code as svg image to the given path (- for stdout)")
	f.StringVar(&cfg.PNG, "png", "", "Export the QR code as png image to the given path (- for stdout)")
	f.StringVar(&cfg.JPEG, "jpeg", "", "Export the QR code as jpeg image to the given path (- for stdout)")
	f.StringVar(&configPath, "config", "", "Path to a YAML file with default settings (default $"+qrscan.ConfigEnv+" or the user config dir)")
	f.BoolVar(&cfg.Debug, "debug", false, "Show what's happening")
	return cmd
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return qrscan.ExitOK
	}
	if errors.Is(err, qrscan.ErrNoCode) {
		// the formatter already printed the notice
		return qrscan.ExitCode(err)
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(stderr, "error: qrscan: %s\n", line)
	}
	if qrscan.KindOf(err) == qrscan.UsageError {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return qrscan.ExitCode(err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rc := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(rc)
}

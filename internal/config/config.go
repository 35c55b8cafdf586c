// Package config loads the settings of the xgx-boundary command.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	xgxboundary "github.com/xgx-io/xgx-boundary"
	"github.com/xgx-io/xgx-boundary/public"
)

// Capturer backends.
const (
	CapturerRuntime   = "runtime"
	CapturerPkgErrors = "pkgerrors"
	CapturerNop       = "nop"
)

// Log formats.
const (
	LogFormatLogfmt = "logfmt"
	LogFormatJSON   = "json"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config is the root configuration.
type Config struct {
	// Format renders public failures; one verb receives the cause description.
	Format string `yaml:"format"`
	// Trace is the boundary trace policy: inherit, capture or omit.
	Trace string `yaml:"trace"`

	Capture CaptureConfig `yaml:"capture"`
	Log     LogConfig     `yaml:"log"`
}

// CaptureConfig controls stack capture.
type CaptureConfig struct {
	// Origin enables capture at the internal failure site.
	Origin   bool   `yaml:"origin"`
	Backend  string `yaml:"backend"`
	MaxDepth int    `yaml:"max_depth"`
}

// LogConfig controls the command's own logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format: public.DefaultFormat,
		Trace:  xgxboundary.TraceInherit.String(),
		Capture: CaptureConfig{
			Origin:   true,
			Backend:  CapturerRuntime,
			MaxDepth: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatLogfmt,
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Parse(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML from buf into cfg, keeping fields buf leaves unset.
func Parse(buf []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document leaves the defaults in place.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := public.ValidateFormat(c.Format); err != nil {
		return err
	}
	if _, ok := xgxboundary.ParseTracePolicy(c.Trace); !ok {
		return errors.Errorf("invalid trace policy %q: want inherit, capture or omit", c.Trace)
	}
	switch c.Capture.Backend {
	case CapturerRuntime, CapturerPkgErrors, CapturerNop:
	default:
		return errors.Errorf("invalid capture backend %q", c.Capture.Backend)
	}
	if c.Capture.MaxDepth < 0 || c.Capture.MaxDepth > xgxboundary.MaxCaptureDepth {
		return errors.Errorf("capture.max_depth must be between 0 and %d, got %d",
			xgxboundary.MaxCaptureDepth, c.Capture.MaxDepth)
	}
	if !slices.Contains(validLogLevels, c.Log.Level) {
		return errors.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case LogFormatLogfmt, LogFormatJSON:
	default:
		return errors.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

// TracePolicy returns the parsed trace policy. Call Validate first.
func (c Config) TracePolicy() xgxboundary.TracePolicy {
	p, _ := xgxboundary.ParseTracePolicy(c.Trace)
	return p
}

// Capturer builds the configured capturer.
func (c Config) Capturer() xgxboundary.Capturer {
	switch c.Capture.Backend {
	case CapturerPkgErrors:
		return xgxboundary.PkgErrorsCapturer{}
	case CapturerNop:
		return xgxboundary.NopCapturer{}
	default:
		return xgxboundary.RuntimeCapturer{MaxDepth: c.Capture.MaxDepth}
	}
}

// ConverterOptions translates the configuration into public.Converter
// options.
func (c Config) ConverterOptions() []public.Option {
	capturer := c.Capturer()
	opts := []public.Option{
		public.WithFormat(c.Format),
		public.WithBoundaryOptions(
			xgxboundary.WithTracePolicy(c.TracePolicy()),
			xgxboundary.WithCapturer(capturer),
		),
	}
	if c.Capture.Origin {
		opts = append(opts, public.WithOriginCapturer(capturer))
	} else {
		opts = append(opts, public.WithOriginCapturer(nil))
	}
	return opts
}

// String renders the configuration as YAML.
func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return strings.TrimSpace(string(out))
}

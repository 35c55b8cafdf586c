package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli/v3"

	xgxboundary "github.com/xgx-io/xgx-boundary"
	"github.com/xgx-io/xgx-boundary/internal/config"
	"github.com/xgx-io/xgx-boundary/public"
)

// scenario is one way of wiring the boundary: whether the failure site
// captures a trace and which trace the public failure keeps.
type scenario struct {
	Name        string
	Description string
	Origin      bool
	Policy      xgxboundary.TracePolicy
}

var scenarios = []scenario{
	{
		Name:        "plain",
		Description: "untraced internal failure, public failure without trace",
		Origin:      false,
		Policy:      xgxboundary.TraceOmit,
	},
	{
		Name:        "traced",
		Description: "traced internal failure, public failure shares its trace",
		Origin:      true,
		Policy:      xgxboundary.TraceInherit,
	},
	{
		Name:        "boundary",
		Description: "traced internal failure, public failure captures its own trace",
		Origin:      true,
		Policy:      xgxboundary.TraceCapture,
	},
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// App is the xgx-boundary command line.
type App struct {
	cmd    *cli.Command
	stdout io.Writer
	stderr io.Writer

	cfg    config.Config
	logger log.Logger
}

// NewApp builds the command tree writing results to stdout and logs to
// stderr.
func NewApp(stdout, stderr io.Writer) *App {
	app := &App{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		logger: log.NewNopLogger(),
	}

	app.cmd = &cli.Command{
		Name:      "xgx-boundary",
		Usage:     "raise a public failure across the module boundary and duplicate it",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "log.level",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log.format",
				Usage: "log format: logfmt, json",
			},
		},
		Before: app.before,
		Commands: []*cli.Command{
			app.raiseCommand(),
			app.scenariosCommand(),
		},
	}

	return app
}

// Run executes the command line.
func (app *App) Run(ctx context.Context, args []string) error {
	return app.cmd.Run(ctx, args)
}

func (app *App) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return ctx, NewExitError(ExitConfigError, "failed to load config", err)
		}
		app.cfg = cfg
	}
	if cmd.IsSet("log.level") {
		app.cfg.Log.Level = cmd.String("log.level")
	}
	if cmd.IsSet("log.format") {
		app.cfg.Log.Format = cmd.String("log.format")
	}
	if err := app.cfg.Validate(); err != nil {
		return ctx, NewExitError(ExitConfigError, "invalid config", err)
	}
	app.logger = newLogger(app.stderr, app.cfg.Log)
	level.Debug(app.logger).Log("msg", "configuration loaded", "config", app.cfg.String())

	return ctx, nil
}

func (app *App) raiseCommand() *cli.Command {
	return &cli.Command{
		Name:  "raise",
		Usage: "raise the public failure once and print it with a duplicate",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "public rendering format with one %s for the cause",
			},
			&cli.StringFlag{
				Name:  "trace",
				Usage: "public trace policy: inherit, capture, omit",
			},
			&cli.BoolFlag{
				Name:  "origin-trace",
				Usage: "capture a stack at the internal failure site",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "stack capture backend: runtime, pkgerrors, nop",
			},
			&cli.BoolFlag{
				Name:  "stack",
				Usage: "print the public failure's stack trace",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "print a debug dump of the duplicate",
			},
		},
		Action: app.runRaise,
	}
}

func (app *App) runRaise(_ context.Context, cmd *cli.Command) error {
	cfg := app.cfg
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("trace") {
		cfg.Trace = cmd.String("trace")
	}
	if cmd.IsSet("origin-trace") {
		cfg.Capture.Origin = cmd.Bool("origin-trace")
	}
	if cmd.IsSet("backend") {
		cfg.Capture.Backend = cmd.String("backend")
	}
	if err := cfg.Validate(); err != nil {
		return NewExitError(ExitUsageError, "invalid flags", err)
	}

	conv := public.NewConverter(cfg.ConverterOptions()...)

	return app.report("raise", conv, cmd.Bool("stack"), cmd.Bool("dump"))
}

func (app *App) scenariosCommand() *cli.Command {
	return &cli.Command{
		Name:  "scenarios",
		Usage: "raise the public failure under each trace scenario",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "run a single scenario: plain, traced, boundary",
			},
			&cli.BoolFlag{
				Name:  "stack",
				Usage: "print each public failure's stack trace",
			},
		},
		Action: app.runScenarios,
	}
}

func (app *App) runScenarios(_ context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	ran := 0

	for _, sc := range scenarios {
		if name != "" && sc.Name != name {
			continue
		}

		capturer := app.cfg.Capturer()
		opts := append(app.baseOptions(),
			public.WithBoundaryOptions(
				xgxboundary.WithTracePolicy(sc.Policy),
				xgxboundary.WithCapturer(capturer),
			),
		)
		if sc.Origin {
			opts = append(opts, public.WithOriginCapturer(capturer))
		} else {
			opts = append(opts, public.WithOriginCapturer(nil))
		}

		fmt.Fprintf(app.stdout, "# %s: %s\n", sc.Name, sc.Description)
		if err := app.report(sc.Name, public.NewConverter(opts...), cmd.Bool("stack"), false); err != nil {
			return err
		}
		ran++
	}

	if ran == 0 {
		return NewExitError(ExitUsageError, fmt.Sprintf("unknown scenario %q", name), nil)
	}

	return nil
}

func (app *App) baseOptions() []public.Option {
	return []public.Option{public.WithFormat(app.cfg.Format)}
}

// report raises through conv, duplicates the public failure and prints the
// original and the duplicate.
func (app *App) report(name string, conv *public.Converter, stack, dump bool) error {
	v, err := conv.Raise()
	if err == nil {
		fmt.Fprintf(app.stdout, "%s: value %d\n", name, v)

		return nil
	}

	if xgxboundary.Exposed(err) {
		return NewExitError(ExitGeneralError, "internal failure crossed the boundary", err)
	}

	var pub public.PublicFailure
	if !errors.As(err, &pub) {
		return NewExitError(ExitGeneralError, "unexpected failure", err)
	}

	dup := pub.Clone()
	defer pub.Release()
	defer dup.Release()

	fmt.Fprintf(app.stdout, "original:  %v\n", pub)
	fmt.Fprintf(app.stdout, "duplicate: %v\n", dup)

	if stack {
		if tr := dup.Trace(); !tr.Empty() {
			fmt.Fprintf(app.stdout, "%+v\n", tr)
		} else {
			fmt.Fprintln(app.stdout, "stack: none")
		}
	}

	if dump {
		dumper.Fdump(app.stdout, dup)
	}

	level.Info(app.logger).Log(
		"msg", "raised public failure",
		"scenario", name,
		"variant", xgxboundary.VariantOf(dup),
		"cause", xgxboundary.VariantOf(dup.Cause()),
		"refs", refs(dup),
		"trace_frames", dup.Trace().Len(),
		"trace_policy", conv.TracePolicy(),
	)

	return nil
}

func refs(f public.PublicFailure) int64 {
	if h, ok := f.(interface{ Handle() *xgxboundary.Handle }); ok {
		return h.Handle().Refs()
	}
	return 0
}

// newLogger builds the go-kit logger for cfg.
func newLogger(w io.Writer, cfg config.LogConfig) log.Logger {
	var logger log.Logger
	if cfg.Format == config.LogFormatJSON {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	// Must put the level filter last for efficiency.
	return level.NewFilter(logger, levelOption(cfg.Level))
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

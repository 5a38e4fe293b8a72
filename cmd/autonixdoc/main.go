package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
	"git.home.luguber.info/inful/autonixdoc/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"autonixdoc.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Input     string `short:"i" help:"Directory containing the Nix library (overrides config)"`
		Output    string `short:"o" help:"Directory where generated documentation is stored (overrides config)"`
		OnFailure string `help:"Behavior when individual modules fail" enum:"log,fail" default:"log"`
		Report    string `help:"Write the full run report as JSON to this path"`
	} `cmd:"" help:"Generate documentation for the library tree"`

	Watch struct {
		Input  string `short:"i" help:"Directory containing the Nix library (overrides config)"`
		Output string `short:"o" help:"Directory where generated documentation is stored (overrides config)"`
	} `cmd:"" help:"Regenerate documentation whenever the library tree changes"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Runs struct {
		Limit int `help:"Number of runs to show" default:"10"`
	} `cmd:"" help:"Show recent runs from the history store"`

	Version struct{} `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := apperrors.NewCLIErrorAdapter(CLI.Verbose, logger)

	var err error
	switch ctx.Command() {
	case "generate":
		err = runGenerate(signalContext())
	case "watch":
		err = runWatch(signalContext())
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	case "runs":
		err = runRuns(context.Background(), CLI.Runs.Limit)
	case "version":
		fmt.Printf("autonixdoc %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	default:
		err = fmt.Errorf("unknown command: %s", ctx.Command())
	}

	if err != nil {
		slog.Error(adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so an
// interrupted run still produces a report of the work done so far.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}

// loadConfig loads the config file when present, otherwise falls back to a
// default configuration built from the input/output flags.
func loadConfig(input, output string) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(CLI.Config); err == nil {
		cfg, err = config.Load(CLI.Config)
		if err != nil {
			return nil, err
		}
	} else {
		if input == "" || output == "" {
			return nil, apperrors.ConfigNotFound(CLI.Config).
				WithContext("hint", "pass --input and --output, or create a config file with 'autonixdoc init'")
		}
		cfg = config.Default(input, output)
	}

	if input != "" {
		cfg.Input = input
	}
	if output != "" {
		cfg.Output = output
	}
	return cfg, cfg.Validate()
}

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
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/genetic/config"
	"github.com/domino14/genetic/report"
	"github.com/domino14/genetic/runner"
)

var (
	GitVersion string
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		// Stop after the generation in flight.
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	return zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// run is the whole command minus signal handling; it returns the process
// exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(stderr, cfg.GetBool(config.ConfigDebug))
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).Msg("loaded config")
	ctx = logger.WithContext(ctx)

	r, err := runner.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("could not set up run")
		return exitFailed
	}
	rep, err := r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("run failed")
		return exitFailed
	}
	if err := report.WriteFinal(stdout, rep, cfg.GetInt(config.ConfigHistogramBins)); err != nil {
		log.Error().Err(err).Msg("could not write report")
		return exitFailed
	}
	return exitOK
}

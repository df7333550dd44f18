package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/indigo-web/minihttp"
	"github.com/indigo-web/minihttp/config"
	"github.com/rs/zerolog"
)

var (
	directory  = flag.String("directory", ".", "base directory for the /files route")
	addr       = flag.String("addr", "", "address to listen on (overrides the config)")
	configPath = flag.String("config", "", "path to a JSON config file")
	logLevel   = flag.String("log-level", "info", "one of trace, debug, info, warn, error, disabled")
	pretty     = flag.Bool("pretty", false, "human-readable logs instead of JSON")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*logLevel, *pretty)
	if err != nil {
		logger.Fatal().Err(err).Str("level", *logLevel).Msg("bad log level")
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load the config")
	}

	app := minihttp.New(cfg).Logger(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		app.Stop()
	}()

	if err = app.Serve(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newLogger(level string, pretty bool) (zerolog.Logger, error) {
	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	logger = logger.With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return logger, err
	}

	return logger.Level(lvl), nil
}

// loadConfig reads the config file, if any. Flags set explicitly take precedence over it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if len(*configPath) > 0 {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "directory":
			cfg.Files.Directory = *directory
		case "addr":
			cfg.NET.Addr = *addr
		}
	})

	return cfg, nil
}

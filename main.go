package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ObiAU/freshdigest/internal/aggregator"
	"github.com/ObiAU/freshdigest/internal/ai"
	"github.com/ObiAU/freshdigest/internal/config"
	"github.com/ObiAU/freshdigest/internal/extract"
	"github.com/ObiAU/freshdigest/internal/models"
	"github.com/ObiAU/freshdigest/internal/sources"
	"github.com/ObiAU/freshdigest/internal/telegram"
	"github.com/ObiAU/freshdigest/internal/ui"
	"github.com/ObiAU/freshdigest/internal/watchdog"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// deps are the process-level collaborators of a run.
type deps struct {
	stdin      io.Reader
	stdout     io.Writer
	probe      watchdog.Probe
	exit       func(code int)
	newSource  func(cfg *config.Config, log *logrus.Entry) (models.FeedSource, error)
	newBackend func(cfg *config.Config, session config.Session) (ai.Backend, error)
	extractor  extract.Extractor
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	os.Exit(run(config.Load(), deps{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		probe:      watchdog.VirtualMemoryPercent,
		exit:       os.Exit,
		newSource:  sources.NewSource,
		newBackend: ai.NewBackend,
	}))
}

func run(cfg *config.Config, d deps) int {
	logger := newLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	ramWatchdog := watchdog.New(cfg.RAMThreshold, cfg.RAMCheckInterval, cfg.RAMGracePeriod,
		watchdog.WithProbe(d.probe),
		watchdog.WithExit(d.exit),
		watchdog.WithLogger(logrus.NewEntry(logger)))
	go ramWatchdog.Run(ctx, cancelRun)

	renderer, err := ui.NewRenderer(d.stdout, cfg.MarkdownStyle)
	if err != nil {
		logger.WithError(err).Error("Invalid MARKDOWN_STYLE")
		return 1
	}

	session, err := ui.NewPrompter(d.stdin, d.stdout).Session(runCtx)
	if err != nil {
		switch {
		case ramWatchdog.Breached():
			renderer.Error("Run aborted: memory usage limit reached.")
		case errors.Is(err, context.Canceled):
			renderer.Error("Interrupted.")
		default:
			renderer.Error("Could not read the run settings: " + err.Error())
		}
		return 1
	}
	if err := session.Validate(); err != nil {
		renderer.Error("Invalid run settings: " + err.Error())
		return 1
	}

	backend, err := d.newBackend(cfg, session)
	if err != nil {
		renderer.Error(err.Error())
		return 1
	}

	source, err := d.newSource(cfg, logrus.NewEntry(logger))
	if err != nil {
		renderer.Error(err.Error())
		return 1
	}

	extractor := d.extractor
	if extractor == nil {
		extractor = extract.NewReadability(cfg.HTTPTimeout, logrus.NewEntry(logger))
	}

	newsAggregator := aggregator.New(
		source,
		extractor,
		ai.NewAnalyst(backend, session.Language),
		renderer,
		logrus.NewEntry(logger),
		publishers(cfg, logger)...,
	)

	logger.WithFields(logrus.Fields{
		"backend":  backend.Name(),
		"model":    session.Model,
		"language": session.Language,
	}).Info("Starting digest run")

	if _, err := newsAggregator.Run(runCtx); err != nil {
		if ramWatchdog.Breached() {
			renderer.Error("Run aborted: memory usage limit reached.")
			return 1
		}
		renderer.Error("Error: " + err.Error())
		return 1
	}

	if ramWatchdog.Breached() {
		return 1
	}
	return 0
}

func publishers(cfg *config.Config, logger *logrus.Logger) []aggregator.Publisher {
	var out []aggregator.Publisher

	if cfg.DigestOutputDir != "" {
		out = append(out, ui.NewDigestFile(cfg.DigestOutputDir))
	}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, logrus.NewEntry(logger))
		if err != nil {
			logger.WithError(err).Warn("Telegram delivery disabled")
		} else {
			out = append(out, bot)
		}
	}

	return out
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

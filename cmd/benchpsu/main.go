// cmd/benchpsu/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/benchpsu/internal/config"
	"github.com/tamzrod/benchpsu/internal/console"
	"github.com/tamzrod/benchpsu/internal/metrics"
	"github.com/tamzrod/benchpsu/internal/poller"
	"github.com/tamzrod/benchpsu/internal/report"
	"github.com/tamzrod/benchpsu/internal/schema"
	"github.com/tamzrod/benchpsu/internal/status"
)

func main() {
	log := logrus.StandardLogger()

	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("flag parsing failed: %v", err)
	}

	if err := setupLogging(log, opts.logLevel, opts.logJSON); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	if err := run(opts, log); err != nil {
		log.WithField("code", fmt.Sprintf("0x%03x", status.ErrorCode(err))).Fatal(err)
	}
}

func setupLogging(log *logrus.Logger, level string, asJSON bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	if asJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func run(opts *options, log *logrus.Logger) error {
	// --------------------
	// Load + validate config
	// --------------------

	cfg := &config.Config{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		cfg = loaded
	}
	for _, override := range opts.overrides {
		override(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Session
	// --------------------

	sess, closeSession, err := poller.Build(cfg, log)
	if err != nil {
		return fmt.Errorf("session build failed: %w", err)
	}
	defer closeSession()

	log.WithFields(logrus.Fields{
		"family": sess.Family().String(),
		"port":   cfg.Device.Port,
		"baud":   cfg.Device.Baud,
		"unit":   *cfg.Device.UnitID,
		"driver": cfg.Device.Driver,
	}).Debug("Session ready")

	if cfg.MetricsAddr != "" {
		m := metrics.New(sess.Family(), *cfg.Device.UnitID)
		sess.OnCycle(m.Observe)
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	// One-time settings go out before the first read.
	if err := sess.ApplySettings(poller.SettingsFromConfig(cfg.Settings)); err != nil {
		return fmt.Errorf("applying settings failed: %w", err)
	}

	// --------------------
	// Mode
	// --------------------

	switch {
	case opts.console:
		c, err := console.New(sess, log, cfg.Output.JSON)
		if err != nil {
			return err
		}
		log.SetOutput(c.Stdout())
		c.Run(ctx, stop)
		return nil

	case cfg.Poll.Watch:
		trends := report.NewTrends(cfg.Output.TrendPoints)
		for st, err := range sess.Watch(ctx) {
			if err != nil {
				return err
			}
			if err := render(os.Stdout, st, trends, cfg.Output.JSON); err != nil {
				return err
			}
		}
		return nil

	default:
		st, err := sess.RunOnce()
		if err != nil {
			return err
		}
		return render(os.Stdout, st, nil, cfg.Output.JSON)
	}
}

func render(w io.Writer, st *schema.DeviceState, trends *report.Trends, asJSON bool) error {
	if asJSON {
		return report.JSON(w, st)
	}
	if err := report.Text(w, st, trends); err != nil {
		return err
	}
	// Blank line between watch cycles.
	if trends != nil {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

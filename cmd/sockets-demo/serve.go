// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"grimm.is/sockets"
	"grimm.is/sockets/metrics"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the countdown line server on IPv4 and IPv6",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if err := applyServeOverrides(cmd.Flags(), &cfg); err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	defaults := defaultServeConfig()
	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")
	cmd.Flags().Uint16("port", defaults.Port, "TCP port to listen on")
	cmd.Flags().String("metrics-listen", "", "address for the Prometheus /metrics endpoint (disabled if empty)")
	cmd.Flags().String("log-level", defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	cmd.Flags().Int("count", defaults.Count, "how many numbers to count down")
	cmd.Flags().Duration("interval", time.Duration(defaults.Interval), "delay between countdown lines")
	cmd.Flags().String("farewell", defaults.Farewell, "final line sent before disconnecting")
	return cmd
}

// applyServeOverrides copies flag values the user set explicitly into cfg;
// untouched flags leave the config (file or default) alone.
func applyServeOverrides(flags *pflag.FlagSet, cfg *serveConfig) error {
	if flags.Changed("port") {
		v, err := flags.GetUint16("port")
		if err != nil {
			return err
		}
		cfg.Port = v
	}
	if flags.Changed("metrics-listen") {
		v, err := flags.GetString("metrics-listen")
		if err != nil {
			return err
		}
		cfg.MetricsListen = v
	}
	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.LogLevel = v
	}
	if flags.Changed("count") {
		v, err := flags.GetInt("count")
		if err != nil {
			return err
		}
		cfg.Count = v
	}
	if flags.Changed("interval") {
		v, err := flags.GetDuration("interval")
		if err != nil {
			return err
		}
		cfg.Interval = duration(v)
	}
	if flags.Changed("farewell") {
		v, err := flags.GetString("farewell")
		if err != nil {
			return err
		}
		cfg.Farewell = v
	}
	return nil
}

func runServe(cfg serveConfig) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	handler := func(conn *sockets.Conn) {
		countdown(conn, logger, cfg)
	}
	opts := []sockets.Option{
		sockets.WithLogger(logger),
		sockets.WithStats(registry),
	}

	ipv4, err := sockets.Listen(sockets.FamilyIPv4, cfg.Port, handler, opts...)
	if err != nil {
		return err
	}
	defer ipv4.Stop()

	ipv6, err := sockets.Listen(sockets.FamilyIPv6, cfg.Port, handler, opts...)
	if err != nil {
		return err
	}
	defer ipv6.Stop()

	logger.Info().
		Uint16("port", cfg.Port).
		Msg("listening on IPv4 and IPv6")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsListen != "" {
		srv := &http.Server{
			Addr:    cfg.MetricsListen,
			Handler: metricsMux(registry),
		}
		g.Go(func() error {
			logger.Info().Str("addr", cfg.MetricsListen).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("shutting down")
	return nil
}

func metricsMux(registry *metrics.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	return mux
}

// countdown sends the numbers 0..count-1 to the client, one line per
// interval, followed by a farewell line, then hangs up.
func countdown(conn *sockets.Conn, logger zerolog.Logger, cfg serveConfig) {
	defer conn.Close()

	logger = logger.With().Stringer("remote", conn.RemoteAddr()).Logger()
	logger.Info().Msg("client connected")

	for i := 0; i < cfg.Count; i++ {
		fut, err := conn.SendString(strconv.Itoa(i) + "\n")
		if err != nil {
			logger.Error().Err(err).Msg("send failed")
			return
		}
		if _, err := fut.Get(); err != nil {
			logger.Info().Err(err).Msg("client went away")
			return
		}
		logger.Debug().Int("n", i).Int("of", cfg.Count).Msg("sent")
		if i < cfg.Count-1 {
			time.Sleep(time.Duration(cfg.Interval))
		}
	}

	if fut, err := conn.SendString(cfg.Farewell + "\n"); err == nil {
		_, _ = fut.Get()
	}
	logger.Info().Msg("countdown finished")
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(parsed)
	return logger, nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flashkit"
	"github.com/dmitrymomot/flashkit/pkg/actions"
	"github.com/dmitrymomot/flashkit/pkg/httpserver"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/redisevents"
	"github.com/dmitrymomot/flashkit/pkg/transport"
)

const readHeaderTimeout = 10 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notification queue over HTTP",
		Long: `Serve the notification queue over HTTP until SIGINT or SIGTERM.

With redis_enabled set, lifecycle events published on the Redis channel are
relayed into the local queue.

Examples:
  flashkit serve
  flashkit serve --config flashkit.yaml
  FLASHKIT_HTTP_ADDR=:9000 flashkit serve --demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("version", version)))
			if err != nil {
				return err
			}
			logger.SetAsDefault(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, log, demo)
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "Mount demo pages that flash every notification kind")
	return cmd
}

func runServe(ctx context.Context, cfg appConfig, log *slog.Logger, demo bool) error {
	p, err := installPlugin(cfg, log, demo)
	if err != nil {
		return err
	}
	defer p.Uninstall()

	srvOpts := []httpserver.Option{
		httpserver.WithLogger(log),
		httpserver.WithServer(&http.Server{
			ReadHeaderTimeout: readHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		}),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("flashkit serving",
				slog.String("base_path", mountPath(cfg.BasePath)),
				slog.Bool("demo", demo),
				slog.Bool("redis", cfg.RedisEnabled),
			)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("flashkit stopped", logger.Count(p.Notifier().Queue().Len()))
		}),
	}
	var checks []httpserver.Check

	if cfg.RedisEnabled {
		client, err := redisevents.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		sub, err := redisevents.NewSubscriber(client, cfg.Redis.Channel, p.Bus(), redisevents.WithLogger(log))
		if err != nil {
			return err
		}
		srvOpts = append(srvOpts, httpserver.WithWorker(sub.Run))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redisevents.Healthcheck(client)})
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, checks...))
	if demo {
		r.Mount("/demo", demoRoutes(p, cfg.BasePath))
	}
	r.Mount(mountPath(cfg.BasePath), p.Handler())

	if err := httpserver.NewFromConfig(cfg.HTTP, srvOpts...).Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func installPlugin(cfg appConfig, log *slog.Logger, demo bool) (*flashkit.Plugin, error) {
	overrides, err := cfg.Notify.Overrides()
	if err != nil {
		return nil, err
	}
	if demo {
		overrides.Actions = map[string]actions.Handler{
			"undo-delete": undoDelete(log),
		}
	}

	opts := []flashkit.Option{
		flashkit.WithLogger(log),
		flashkit.WithTransportOptions(transport.WithBasePath(cfg.BasePath)),
	}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, flashkit.WithMetrics(reg))
	}
	switch {
	case cfg.NavigatorURL != "":
		nav, err := actions.NewHTTPNavigator(cfg.NavigatorURL, actions.WithVisitLogger(log))
		if err != nil {
			return nil, err
		}
		opts = append(opts, flashkit.WithNavigator(nav))
	case demo:
		opts = append(opts, flashkit.WithNavigator(demoNavigator(log)))
	}

	return flashkit.Install(overrides, opts...)
}

func mountPath(base string) string {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

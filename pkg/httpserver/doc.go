// Package httpserver runs an http.Handler with graceful shutdown, background
// workers and health checks.
//
// Run listens on the configured address, starts every worker registered with
// WithWorker and blocks until the context is cancelled, SIGINT or SIGTERM
// arrives, Shutdown is called or a worker fails. Workers are cancelled and
// awaited before http.Server.Shutdown runs with the configured deadline.
//
// HealthCheckHandler serves liveness (no checks) and readiness probes.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithWorker(subscriber.Run),
//	)
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, httpserver.Check{
//		Name: "redis",
//		Fn:   redisevents.Healthcheck(client),
//	}))
//	r.Mount("/", plugin.Handler())
//
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Listen failures are wrapped with ErrStart, shutdown failures with
// ErrShutdown and worker failures with ErrWorker.
package httpserver

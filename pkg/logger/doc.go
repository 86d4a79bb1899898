// Package logger builds the slog loggers used across flashkit and provides
// attribute helpers so every component names its fields the same way.
//
// New creates a *slog.Logger from functional options: output format, level,
// static attributes and context extractors. The handler is wrapped in
// LogHandlerDecorator, which appends attributes stored in the context with
// WithAttrs and those produced by registered extractors.
//
// # Usage
//
//	log := logger.New(logger.WithDevelopment("flashkit"))
//	logger.SetAsDefault(log)
//
//	ctx = logger.WithAttrs(ctx, logger.Event("navigation-succeeded"))
//	log.LogAttrs(ctx, slog.LevelInfo, "flash processed",
//	    logger.FlashKey(flash.KeySuccess),
//	    logger.Count(2),
//	)
//
// NewFromConfig reads the same settings from a Config loaded from the
// environment (APP_NAME, APP_ENV, LOG_LEVEL, LOG_FORMAT).
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("dispatched", logger.Error(err))
//
// needs no nil check.
package logger

// Package logger builds the process logger on Go's standard slog package
// and carries the attribute helpers shared across components.
//
// # Basic Usage
//
//	log := logger.New(logger.WithDevelopment("qgate"))
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Production processes use JSON records at info level:
//
//	log := logger.New(logger.WithProduction("qgate"))
//
// Attribute helpers are nil-safe: logger.Error(nil) and logger.RequestID("")
// produce empty attributes that slog drops, so call sites never need
// conditional logging.
package logger

// Package logger provides structured logging utilities built on Go's standard slog package.
//
// Loggers are created with New and configured through functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("sessattr"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("session started",
//		logger.Component("session"),
//		logger.SessionID(id),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or zero input, which slog
// drops, so callers can pass optional values without branching:
//
//	log.Error("flush failed", logger.Error(err), logger.Backend("redis"))
//
// Components that accept a *slog.Logger default to Discard when none is given.
package logger

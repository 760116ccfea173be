// Package logger builds configured slog.Logger instances for the toolkit.
//
// Output defaults to JSON at info level, which suits log aggregation in
// production. Development builds usually want readable text output:
//
//	log := logger.New(logger.WithDevelopment("billing"))
//	log.Info("purchase started", "product_id", id)
//
// The purchase package emits its checkpoint events through an EventSink;
// logger.New produces the slog.Logger that the slog-backed sink writes to.
package logger

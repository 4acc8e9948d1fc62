// Package logger provides structured logging for ignitor applications
// using zerolog.
//
// Loggers take optional field maps instead of chained builders:
//
//	log := logger.WithComponent("ignitor")
//	log.Info("providers booted", logger.Fields("count", 3))
//
// The global logger starts as a console logger at info level and is replaced
// by Init once the application config has been read.
package logger

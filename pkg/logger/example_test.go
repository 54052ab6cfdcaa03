package logger_test

import (
	"errors"

	"github.com/wonny/bunkerwatch/backend/pkg/config"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"product":   "VLSFO",
		"rows":      20,
		"nominated": 2,
	}).Info("Procurement board built")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("forecast api timeout")
	log.WithError(err).
		WithField("product", "HSFO").
		Error("Forecast sync failed")
}

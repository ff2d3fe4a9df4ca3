// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging configures the process-wide slog.Logger used by
// cmd/ledgerinspect. The codec packages themselves never log.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var globalLogger *slog.Logger

// Config selects the logger's verbosity and output shape.
type Config struct {
	Level string // debug, info, warn, error
	JSON  bool
}

// Configure builds the process-wide logger from cfg. Call once at startup;
// later calls replace the logger returned by GetLogger.
func Configure(cfg Config) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	globalLogger = slog.New(handler).With("component", "ledgerinspect")
}

// GetLogger returns the process-wide logger, configuring a sane default
// (text, info level) on first use if Configure was never called.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		Configure(Config{Level: "info"})
	}
	return globalLogger
}

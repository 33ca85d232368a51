// Package cli implements the treesearch command-line interface.
//
// This package provides commands for searching trees and state graphs loaded
// from files, running the built-in demo scenarios, drawing search paths and
// serving searches over HTTP. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - search: Run a search over a tree or graph file
//   - demo: Run one of the built-in scenarios (users, files, logs)
//   - render: Draw a tree or graph as DOT, SVG or PNG, with found paths highlighted
//   - serve: Accept search requests over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. The search engine reports every depth
// pass through observability hooks, which this package logs at debug level.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Searched dir1.json (12ms)"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))...)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks logs search and HTTP events. Events carry the logger of their
// context when there is one, so request-scoped fields such as request_id
// show up on search lines too.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) from(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return h.logger
}

func (h *logHooks) OnSearchStart(ctx context.Context, algorithm string, limit int) {
	h.from(ctx).Debug("search started", "algorithm", algorithm, "limit", limit)
}

func (h *logHooks) OnIteration(ctx context.Context, algorithm string, limit int, outcome string, expanded int, d time.Duration) {
	h.from(ctx).Debug("pass finished", "algorithm", algorithm, "limit", limit, "outcome", outcome, "expanded", expanded, "took", d)
}

func (h *logHooks) OnSearchComplete(ctx context.Context, algorithm, outcome string, depth int, d time.Duration, err error) {
	l := h.from(ctx)
	if err != nil {
		l.Warn("search aborted", "algorithm", algorithm, "err", err, "took", d)
		return
	}
	l.Debug("search finished", "algorithm", algorithm, "outcome", outcome, "depth", depth, "took", d)
}

func (h *logHooks) OnRequest(ctx context.Context, method, path string) {
	h.from(ctx).Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	h.from(ctx).Info("response", "method", method, "path", path, "status", status, "took", d)
}

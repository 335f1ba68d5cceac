// Package logging builds the per-run logger.
//
// Records fan out to stderr and to an append-only run log under the log
// directory. When SEQ_URL is set they are additionally shipped to a Seq
// server. The logger is constructed at the top of each invocation and
// closed when the run ends; there is no process-global logging state.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

// fanoutHandler forwards each record to every underlying handler.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (f *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: handlers}
}

func (f *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &fanoutHandler{handlers: handlers}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the run logger and returns it with a close func. dir is
// created if missing; the run log file is opened for append so the log is
// an append-only artifact across runs.
func New(level slog.Level, dir string) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: level}

	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}
	closers := []func(){}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		logPath := filepath.Join(dir, "extractor.log")
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening run log: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(f, opts))
		closers = append(closers, func() { _ = f.Close() })
	}

	if url := os.Getenv("SEQ_URL"); url != "" {
		_, seqHandler := slogseq.NewLogger(
			url,
			slogseq.WithBatchSize(10),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(opts),
		)
		if seqHandler != nil {
			handlers = append(handlers, seqHandler)
			closers = append(closers, func() { seqHandler.Close() })
		}
	}

	logger := slog.New(&fanoutHandler{handlers: handlers})
	closeFn := func() {
		for _, c := range closers {
			c()
		}
	}
	return logger, closeFn, nil
}

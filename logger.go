// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler drops every record. Enabled is always false, so disabled
// log calls never format their attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var silent = slog.New(nopHandler{})

var (
	current atomic.Pointer[slog.Logger]

	forwardMu sync.Mutex
	forwards  []func(*slog.Logger)
)

func init() {
	current.Store(silent)
}

// SetLogger sets the logger shared by framehost, its backends and its
// platform packages, and hands it to every function registered with
// ForwardLogger. framehost is silent until SetLogger is called; nil
// restores the silent logger.
//
// Levels:
//   - [slog.LevelDebug]: per-frame diagnostics (skipped frames, suboptimal acquires)
//   - [slog.LevelInfo]: lifecycle (adapter selected, surface configured, mode switches)
//   - [slog.LevelWarn]: recoverable frame failures (timeouts, reconfiguration)
//   - [slog.LevelError]: unexpected frame failures and out-of-memory
//
//	framehost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	forwardMu.Lock()
	defer forwardMu.Unlock()
	current.Store(l)
	for _, fn := range forwards {
		fn(l)
	}
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return current.Load()
}

// ForwardLogger registers fn to receive the logger on every SetLogger
// call and calls it once with the current logger. Backends use it to
// route the logging of the GPU library they wrap.
func ForwardLogger(fn func(*slog.Logger)) {
	if fn == nil {
		return
	}
	forwardMu.Lock()
	defer forwardMu.Unlock()
	forwards = append(forwards, fn)
	fn(current.Load())
}

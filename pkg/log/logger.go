// Package log is a small structured key/value logger with levels,
// request-id propagation through context, and pluggable transporters.
package log

import (
	"context"
	"sync"
	"time"
)

// Logger dispatches entries at or above its level to its transporters.
type Logger struct {
	mu           sync.RWMutex
	level        Level
	transporters []Transporter
	baseFields   map[string]any
}

// New creates a logger with the given minimum level and transporters.
func New(level Level, transporters ...Transporter) *Logger {
	return &Logger{
		level:        level,
		transporters: transporters,
		baseFields:   map[string]any{},
	}
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// With returns a child logger carrying additional base fields.
func (l *Logger) With(keysAndValues ...any) *Logger {
	l.mu.RLock()
	fields := make(map[string]any, len(l.baseFields))
	for k, v := range l.baseFields {
		fields[k] = v
	}
	level := l.level
	transporters := l.transporters
	l.mu.RUnlock()

	addPairs(fields, keysAndValues)
	return &Logger{level: level, transporters: transporters, baseFields: fields}
}

func (l *Logger) log(level Level, ctx context.Context, msg string, keysAndValues ...any) {
	l.mu.RLock()
	minLevel := l.level
	transporters := l.transporters
	base := l.baseFields
	l.mu.RUnlock()

	if !minLevel.Enables(level) {
		return
	}

	entry := Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		RequestID: RequestIDFromContext(ctx),
		Fields:    make(map[string]any, len(base)+len(keysAndValues)/2),
	}
	for k, v := range base {
		entry.Fields[k] = v
	}
	addPairs(entry.Fields, keysAndValues)

	for _, t := range transporters {
		// A failing transporter must not take the process down.
		_ = t.Write(entry)
	}
}

func addPairs(fields map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
}

// Debug logs at Debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) { l.log(Debug, nil, msg, keysAndValues...) }

// Info logs at Info level.
func (l *Logger) Info(msg string, keysAndValues ...any) { l.log(Info, nil, msg, keysAndValues...) }

// Warn logs at Warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) { l.log(Warn, nil, msg, keysAndValues...) }

// Error logs at Error level.
func (l *Logger) Error(msg string, keysAndValues ...any) { l.log(Error, nil, msg, keysAndValues...) }

// DebugCtx logs at Debug level with context.
func (l *Logger) DebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Debug, ctx, msg, keysAndValues...)
}

// InfoCtx logs at Info level with context.
func (l *Logger) InfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Info, ctx, msg, keysAndValues...)
}

// WarnCtx logs at Warn level with context.
func (l *Logger) WarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Warn, ctx, msg, keysAndValues...)
}

// ErrorCtx logs at Error level with context.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(Error, ctx, msg, keysAndValues...)
}

// --- Global logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// SetDefault installs the global logger.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the global logger, or a silent one when unset.
func Default() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return New(Error + 1)
	}
	return l
}

// GlobalDebug logs at Debug level using the global logger.
func GlobalDebug(msg string, keysAndValues ...any) { Default().Debug(msg, keysAndValues...) }

// GlobalInfo logs at Info level using the global logger.
func GlobalInfo(msg string, keysAndValues ...any) { Default().Info(msg, keysAndValues...) }

// GlobalWarn logs at Warn level using the global logger.
func GlobalWarn(msg string, keysAndValues ...any) { Default().Warn(msg, keysAndValues...) }

// GlobalError logs at Error level using the global logger.
func GlobalError(msg string, keysAndValues ...any) { Default().Error(msg, keysAndValues...) }

// GlobalDebugCtx logs at Debug level with context using the global logger.
func GlobalDebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().DebugCtx(ctx, msg, keysAndValues...)
}

// GlobalInfoCtx logs at Info level with context using the global logger.
func GlobalInfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().InfoCtx(ctx, msg, keysAndValues...)
}

// GlobalWarnCtx logs at Warn level with context using the global logger.
func GlobalWarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().WarnCtx(ctx, msg, keysAndValues...)
}

// GlobalErrorCtx logs at Error level with context using the global logger.
func GlobalErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().ErrorCtx(ctx, msg, keysAndValues...)
}

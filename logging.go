package affs

import (
	"context"
	"log/slog"
)

// slogLevelTrace is one notch below slog.LevelDebug, used for per-block and
// per-hop events that are too frequent for ordinary debug logging.
const slogLevelTrace = slog.LevelDebug - 2

func (r *Reader) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if r.log != nil {
		r.log.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

func (r *Reader) trace(msg string, attrs ...slog.Attr) {
	r.logattrs(slogLevelTrace, msg, attrs...)
}

func (r *Reader) debug(msg string, attrs ...slog.Attr) {
	r.logattrs(slog.LevelDebug, msg, attrs...)
}

func (r *Reader) info(msg string, attrs ...slog.Attr) {
	r.logattrs(slog.LevelInfo, msg, attrs...)
}

func (r *Reader) warn(msg string, attrs ...slog.Attr) {
	r.logattrs(slog.LevelWarn, msg, attrs...)
}

func (r *Reader) logerror(msg string, attrs ...slog.Attr) {
	r.logattrs(slog.LevelError, msg, attrs...)
}

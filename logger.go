package teximage

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/teximage/driver"
)

// discardHandler drops every record. Enabled reports false, so disabled
// Debug calls on the texture paths cost no formatting.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func discardLogger() *slog.Logger { return slog.New(discardHandler{}) }

// defaultLogger is what new devices, binders and context registries log
// through unless WithLogger says otherwise.
var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(discardLogger())
}

// SetLogger sets the logger that devices created afterwards start with.
// Existing devices keep theirs; use Device.SetLogger to change one.
// Nil restores the default, which logs nothing. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: allocations, uploads, binds, filter changes, releases
//   - [slog.LevelInfo]: device creation with the backend name
//   - [slog.LevelWarn]: Release called on an already released image
//
// To see texture traffic on stderr:
//
//	teximage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	defaultLogger.Store(l)
}

// Logger returns the logger new devices start with.
func Logger() *slog.Logger {
	return defaultLogger.Load()
}

// loggerSetter is the optional driver method that receives the device
// logger. backend/wgpu implements it; the software driver does not log.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger hands l to drv when drv accepts a logger.
func propagateLogger(drv driver.Driver, l *slog.Logger) {
	if ls, ok := drv.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// LogFormat selects the slog handler behind a Logger.
type LogFormat int

const (
	// JSON emits one JSON object per line.
	JSON LogFormat = iota
	// Text emits key=value lines.
	Text
)

// Logger is the structured logger used by the probe, the agent harness and
// the examples.
type Logger interface {
	Debug(msg string, fields ...slog.Attr)
	Info(msg string, fields ...slog.Attr)
	Warn(msg string, fields ...slog.Attr)
	Error(msg string, fields ...slog.Attr)
	With(fields ...slog.Attr) Logger
	WithContext(ctx context.Context) Logger
	Log(ctx context.Context, level slog.Level, msg string, fields ...slog.Attr)
}

// LoggerConfig configures NewLogger. A nil Output writes to stderr.
type LoggerConfig struct {
	Level  slog.Level
	Format LogFormat
	Output io.Writer
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	SetDefaultLogger(NewLogger(LoggerConfig{Level: slog.LevelInfo, Format: Text}))
}

// SetDefaultLogger replaces the package-level logger. It is safe to call
// while agents are logging.
func SetDefaultLogger(l Logger) {
	defaultLogger.Store(&l)
}

// Default returns the package-level logger.
func Default() Logger {
	return *defaultLogger.Load()
}

// Debug, Info, Warn and Error log through Default.
func Debug(msg string, fields ...slog.Attr) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...slog.Attr) { Default().Info(msg, fields...) }
func Warn(msg string, fields ...slog.Attr) { Default().Warn(msg, fields...) }
func Error(msg string, fields ...slog.Attr) { Default().Error(msg, fields...) }

type logger struct {
	slogger *slog.Logger
}

// NewLogger builds a Logger over a slog JSON or text handler.
func NewLogger(config LoggerConfig) Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	if config.Format == JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &logger{slogger: slog.New(handler)}
}

func (l *logger) Debug(msg string, fields ...slog.Attr) {
	l.Log(context.Background(), slog.LevelDebug, msg, fields...)
}

func (l *logger) Info(msg string, fields ...slog.Attr) {
	l.Log(context.Background(), slog.LevelInfo, msg, fields...)
}

func (l *logger) Warn(msg string, fields ...slog.Attr) {
	l.Log(context.Background(), slog.LevelWarn, msg, fields...)
}

func (l *logger) Error(msg string, fields ...slog.Attr) {
	l.Log(context.Background(), slog.LevelError, msg, fields...)
}

// With returns a logger that adds fields to every record.
func (l *logger) With(fields ...slog.Attr) Logger {
	return &logger{slogger: l.slogger.With(attrArgs(fields)...)}
}

// WithContext adds the run and agent fields carried by ctx. It returns l
// itself when ctx carries neither.
func (l *logger) WithContext(ctx context.Context) Logger {
	var fields []slog.Attr
	if run, ok := ctx.Value(runKey{}).(string); ok {
		fields = append(fields, slog.String("run_id", run))
	}
	if id, ok := ctx.Value(agentKey{}).(int); ok {
		fields = append(fields, AgentID(id))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *logger) Log(ctx context.Context, level slog.Level, msg string, fields ...slog.Attr) {
	l.slogger.LogAttrs(ctx, level, msg, fields...)
}

func attrArgs(fields []slog.Attr) []any {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return args
}

type (
	runKey   struct{}
	agentKey struct{}
)

// ContextWithRun tags ctx with a run identifier picked up by WithContext.
func ContextWithRun(ctx context.Context, run string) context.Context {
	return context.WithValue(ctx, runKey{}, run)
}

// ContextWithAgent tags ctx with an agent identifier picked up by WithContext.
func ContextWithAgent(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, agentKey{}, id)
}

// Field helpers

func Width(bits int) slog.Attr { return slog.Int("word.bits", bits) }
func Mode(mode string) slog.Attr { return slog.String("wait.mode", mode) }
func WaitOutcome(outcome string) slog.Attr { return slog.String("wait.outcome", outcome) }
func Primitive(kind string) slog.Attr { return slog.String("primitive", kind) }
func Operation(op string) slog.Attr { return slog.String("operation", op) }
func AgentID(id int) slog.Attr { return slog.Int("agent_id", id) }
func AgentCount(count int) slog.Attr { return slog.Int("agent_count", count) }
func Iterations(n int) slog.Attr { return slog.Int("iterations", n) }
func Permits(n uint32) slog.Attr { return slog.Uint64("permits", uint64(n)) }
func Duration(key string, d time.Duration) slog.Attr { return slog.Duration(key, d) }

// ErrorField records err under "error".
func ErrorField(err error) slog.Attr {
	return slog.String("error", err.Error())
}

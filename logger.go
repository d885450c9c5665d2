package scrapegraph

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger receives debug output from the client. Key-value pairs follow the
// message, alternating string keys and arbitrary values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// DebugConfig gates what the client logs. All flags default off; enable via
// WithDebug or WithDebugConfig.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogRetries   bool
	LogRateLimit bool
	LogCircuit   bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a config with all log categories on but the
// master switch off.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		LogRequests:  true,
		LogRetries:   true,
		LogRateLimit: true,
		LogCircuit:   true,
		RequestIDGen: uuid.NewString,
	}
}

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps the given zerolog logger.
func NewZerologLogger(log zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: log}
}

func (z *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	z.emit(z.log.Debug(), msg, keysAndValues)
}

func (z *ZerologLogger) Info(msg string, keysAndValues ...any) {
	z.emit(z.log.Info(), msg, keysAndValues)
}

func (z *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	z.emit(z.log.Warn(), msg, keysAndValues)
}

func (z *ZerologLogger) Error(msg string, keysAndValues ...any) {
	z.emit(z.log.Error(), msg, keysAndValues)
}

func (z *ZerologLogger) emit(ev *zerolog.Event, msg string, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	ev.Msg(msg)
}

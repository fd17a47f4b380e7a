package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control the encoding and destination of log lines. Stdout belongs
// to the report, so logs go to stderr unless Output names another zap sink.
type Options struct {
	JSON   bool
	Debug  bool
	Color  bool
	Output string
}

func Build(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"
	encodeLevel := zapcore.LowercaseLevelEncoder

	if opts.JSON {
		encoding = "json"
	} else if opts.Color {
		encodeLevel = zapcore.LowercaseColorLevelEncoder
	}

	if opts.Debug {
		level = zapcore.DebugLevel
	}

	output := opts.Output
	if output == "" {
		output = "stderr"
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: encodeLevel,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	if opts.Debug {
		cfg.EncoderConfig.StacktraceKey = "stacktrace"
	} else {
		cfg.DisableStacktrace = true
	}

	return cfg.Build()
}

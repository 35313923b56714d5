package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the service logger. When logPath is empty, output goes to
// stdout; otherwise it is written to a size-rotated file.
func New(logPath string) *zap.Logger {
	var sink zapcore.WriteSyncer
	if logPath == "" {
		sink = zapcore.AddSync(os.Stdout)
	} else {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // MB per file
			MaxBackups: 10,
			MaxAge:     7, // days
			LocalTime:  true,
		})
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		CallerKey:      "C",
		NameKey:        "N",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(time.RFC3339),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, zapcore.InfoLevel)
	return zap.New(core, zap.AddCaller())
}

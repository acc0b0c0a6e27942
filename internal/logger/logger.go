package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger *zap.SugaredLogger

// Init sets up the global logger. With debug off only warnings and errors
// reach the user, so normal runs stay quiet. When logFile is set, debug
// output goes to a rotated file instead of stderr, which keeps the TUI's
// screen clean.
func Init(debug bool, logFile string) {
	writeSyncer := zapcore.AddSync(os.Stderr)
	if logFile != "" {
		writeSyncer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // MB
			MaxBackups: 2,
		})
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	globalLogger = zap.New(core).Sugar()
}

// Sync flushes any buffered log entries.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

// L returns the global logger, falling back to a no-op logger before Init.
func L() *zap.SugaredLogger {
	if globalLogger == nil {
		return zap.NewNop().Sugar()
	}
	return globalLogger
}

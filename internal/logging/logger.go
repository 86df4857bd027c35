package logging

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go-bdjobs-e2e/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global atomic.Pointer[zap.Logger]
	once   sync.Once
)

// Initialize builds the global logger. Only the first call has any effect.
func Initialize(cfg config.LoggerConfig) {
	InitializeWith(cfg, zapcore.Lock(os.Stdout))
}

// InitializeWith is Initialize with an explicit console writer.
func InitializeWith(cfg config.LoggerConfig, console zapcore.WriteSyncer) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		cores := []zapcore.Core{zapcore.NewCore(encoder(cfg.Format), console, level)}

		if cfg.LogFile != "" {
			//file output is always json
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			})
			cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
		}

		logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("e2e")
		global.Store(logger)
	})
}

func encoder(format string) zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if strings.EqualFold(format, "json") {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encCfg)
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}

// L returns the global logger, or a development logger if Initialize was never called.
func L() *zap.Logger {
	if logger := global.Load(); logger != nil {
		return logger
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("fallback")
}

// Named is shorthand for L().Named(name).
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries. Errors from syncing stdout are expected on some platforms and ignored.
func Sync() {
	if logger := global.Load(); logger != nil {
		_ = logger.Sync()
	}
}

// ResetForTest clears the global logger so Initialize can run again.
func ResetForTest() {
	global.Store(nil)
	once = sync.Once{}
}

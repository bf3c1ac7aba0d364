package utils

import (
	"github.com/nzai/divdash/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger create logger, log to a rotated json file when path is set
func NewLogger(c config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	if c.Path == "" {
		lc := zap.NewDevelopmentConfig()
		lc.Level = zap.NewAtomicLevelAt(level)
		return lc.Build()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)
	return zap.New(core, zap.AddCaller()), nil
}

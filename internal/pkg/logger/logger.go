package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l *zap.Logger = zap.NewNop()

// Init builds the process logger. prod selects the JSON production
// encoder; everything else gets the console development encoder.
func Init(prod bool) error {
	var cfg zap.Config
	if prod {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	l = built
	return nil
}

func L() *zap.Logger { return l }

func Sync() { _ = l.Sync() }

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New はJSON構造化ログのzapロガーを作る。devのときは読みやすい開発用設定。
func New(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Must はロガーを作れなかったらpanicする。
func Must(l *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return l
}

package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 初始化 Zap Logger
// debug: 控制台彩色输出，人类可读
// test: 不输出
// 其他: JSON 输出，机器可读 (ELK)
func NewLogger(mode string) (*zap.Logger, error) {
	var config zap.Config

	switch mode {
	case "test":
		return zap.NewNop(), nil
	case "debug":
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building zap logger: %w", err)
	}
	return logger.Named("bookkeeping"), nil
}

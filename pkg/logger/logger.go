// Package logger 基于zap的结构化日志封装
//
// 设计说明：
// 1. 业务代码只依赖本包，不直接import zap（便于统一替换输出格式）
// 2. Init在main中调用一次；未Init时L()返回no-op logger，测试无需初始化
// 3. Field辅助函数是zap.Field的别名转发，零额外开销
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field 日志字段
type Field = zap.Field

// 常用字段构造函数
var (
	String = zap.String
	Int    = zap.Int
	Int64  = zap.Int64
	Uint   = zap.Uint
	Err    = zap.Error
	Any    = zap.Any
	Bool   = zap.Bool
	Dur    = zap.Duration
)

var global = zap.NewNop()

// Init 初始化全局logger
// level: debug | info | warn | error
// format: console | json
func Init(level, format string) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), parseLevel(level))
	global = zap.New(core, zap.AddCaller())
}

// L 获取全局logger
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲（main退出前调用）
func Sync() {
	_ = global.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Package logger 提供全局结构化日志器（zap）
//
// 未调用 Init 之前所有函数都写入 no-op 日志器，
// 因此各个包和测试可以无条件记录日志。
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	log         = zap.NewNop()
	sugar       = log.Sugar()
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Options 日志初始化参数
// 零值表示完全由环境变量决定
type Options struct {
	// Verbose 为 true 时强制 debug 级别
	Verbose bool
	// Console 使用可读的控制台编码（而不是 JSON）
	Console bool
}

// Init 初始化全局日志器，支持通过环境变量控制：
// - LOG_LEVEL=debug|info|warn|error（默认：info）
// - LOG_FILE=./logs/giftbox.log（优先级高于 LOG_DIR）
// - LOG_DIR=./logs（若设置则写入 logs/giftbox.log）
// - LOG_MAX_SIZE_MB=50、LOG_MAX_BACKUPS=3、LOG_MAX_DAYS=7、LOG_COMPRESS=false
func Init(opts Options) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	atomicLevel.SetLevel(level)

	var enc zapcore.Encoder
	if opts.Console {
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig)
	}
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), atomicLevel),
	}

	if logFile := logFilePath(); logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create log dir: %v\n", err)
		} else {
			lw := &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    getenvInt("LOG_MAX_SIZE_MB", 50),
				MaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
				MaxAge:     getenvInt("LOG_MAX_DAYS", 7),
				Compress:   getenvBool("LOG_COMPRESS", false),
			}
			fileEnc := zapcore.NewJSONEncoder(encoderConfig)
			cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(lw), atomicLevel))
		}
	}

	Replace(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)))
}

// Replace 替换全局日志器（测试中可注入 zaptest/observer 日志器）
func Replace(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
	sugar = l.Sugar()
}

// L 返回底层 zap.Logger
func L() *zap.Logger { return log }

func logFilePath() string {
	if f := strings.TrimSpace(os.Getenv("LOG_FILE")); f != "" {
		return f
	}
	if d := strings.TrimSpace(os.Getenv("LOG_DIR")); d != "" {
		return filepath.Join(d, "giftbox.log")
	}
	return ""
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }

func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }

// Sync 刷新缓冲（程序退出前调用）
func Sync() { _ = log.Sync() }

// SetLevel 动态调整日志级别（debug/info/warn/error），无效级别忽略
func SetLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		atomicLevel.SetLevel(parseLevel(level))
	}
}

// Level 返回当前日志级别
func Level() zapcore.Level { return atomicLevel.Level() }

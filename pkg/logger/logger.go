package logger

import (
	"os"
	"spikeboard/conf"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 基于zap的全局日志，文件滚动由lumberjack负责

var log *zap.Logger

func InitLogger(cfg *conf.LogConfig, appName string) {
	writers := make([]zapcore.WriteSyncer, 0, 2)
	if cfg.FileName != "" {
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}))
	}
	if cfg.Console || len(writers) == 0 {
		writers = append(writers, zapcore.AddSync(os.Stdout))
	}

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(writers...),
		level,
	)
	log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(appName)
}

// ensure 未初始化时兜底输出到stdout（测试场景）
func ensure() *zap.Logger {
	if log == nil {
		l, _ := zap.NewProduction(zap.AddCallerSkip(1))
		log = l
	}
	return log
}

// Pair 构造一个结构化字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Info(msg string, fields ...zap.Field) {
	ensure().Info(msg, fields...)
}

func Infof(template string, args ...interface{}) {
	ensure().Sugar().Infof(template, args...)
}

func Warn(msg string, fields ...zap.Field) {
	ensure().Warn(msg, fields...)
}

func Warnf(template string, args ...interface{}) {
	ensure().Sugar().Warnf(template, args...)
}

func Error(msg string, fields ...zap.Field) {
	ensure().Error(msg, fields...)
}

func Errorf(template string, args ...interface{}) {
	ensure().Sugar().Errorf(template, args...)
}

func Debug(msg string, fields ...zap.Field) {
	ensure().Debug(msg, fields...)
}

func Debugf(template string, args ...interface{}) {
	ensure().Sugar().Debugf(template, args...)
}

func Fatal(msg string, fields ...zap.Field) {
	ensure().Fatal(msg, fields...)
}

func Fatalf(template string, args ...interface{}) {
	ensure().Sugar().Fatalf(template, args...)
}

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger はアプリケーション全体で使用する構造化ロガーです。
// 標準出力とローテーション付きのログファイルの両方に JSON で出力します。
type Logger struct {
	slog *slog.Logger
}

// New は新しいLoggerを作成します。
// levelは debug/info/warn/error のいずれか、fileは出力先のログファイル名です。
func New(level, file string) *Logger {
	if file == "" {
		file = "logiq.log"
	}

	// ログローテーションの設定
	logFile := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // 1ファイルあたりの最大サイズ (MB)
		MaxBackups: 5,  // 保持する古いログの最大数
		MaxAge:     30, // 古いログを保持する最大日数
		Compress:   true,
	}

	var w io.Writer = io.MultiWriter(os.Stdout, logFile)

	return &Logger{
		slog: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     parseLevel(level),
		})),
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debugレベルのログを出力
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Infoレベルのログを出力
// 例: log.Info("Botが起動しました", "version", "1.2.3")
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warnレベルのログを出力
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Errorレベルのログを出力
// 例: log.Error("コマンドの実行に失敗", "error", err, "command", "ping")
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Fatalレベルのログを出力し、プログラムを終了します。
func (l *Logger) Fatal(msg string, args ...any) {
	l.slog.Error(msg, args...)
	os.Exit(1)
}

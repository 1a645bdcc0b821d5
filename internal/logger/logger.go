package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ロガーの設定
type Options struct {
	Service string
	Env     string
	Level   string
	Output  io.Writer // nilなら標準出力
}

// JSONで出すlogrusロガーを作る。
// フィールド名は timestamp / severity / message に揃える。
func New(opts Options) *logrus.Entry {
	log := logrus.New()
	log.Level = parseLevel(opts.Level)
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log.Out = opts.Output
	if log.Out == nil {
		log.Out = os.Stdout
	}

	return log.WithFields(logrus.Fields{
		"service": opts.Service,
		"env":     opts.Env,
	})
}

// テスト用：何も出さない
func Discard() *logrus.Entry {
	log := logrus.New()
	log.Out = io.Discard
	return logrus.NewEntry(log)
}

func parseLevel(lvl string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

// writerHook отправляет записи лога сразу в несколько writer'ов
// для заданных уровней логирования.
type writerHook struct {
	Writer    []io.Writer
	LogLevels []logrus.Level
}

func (hook *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	for _, w := range hook.Writer {
		_, _ = w.Write([]byte(line))
	}
	return nil
}

func (hook *writerHook) Levels() []logrus.Level {
	return hook.LogLevels
}

var e *logrus.Entry

// Logger — обертка над logrus.Entry, чтобы не тащить logrus напрямую
// по всем слоям приложения.
type Logger struct {
	*logrus.Entry
}

func GetLogger() *Logger {
	return &Logger{e}
}

func (l *Logger) GetLoggerWithField(k string, v interface{}) *Logger {
	return &Logger{l.WithField(k, v)}
}

func callerPrettyfier(frame *runtime.Frame) (function string, file string) {
	filename := path.Base(frame.File)
	return fmt.Sprintf("%s()", frame.Function), fmt.Sprintf("%s:%d", filename, frame.Line)
}

func init() {
	l := logrus.New()
	l.SetReportCaller(true)
	l.Formatter = &logrus.TextFormatter{
		CallerPrettyfier: callerPrettyfier,
		DisableColors:    false,
		FullTimestamp:    true,
	}

	l.SetOutput(io.Discard)

	l.AddHook(&writerHook{
		Writer:    []io.Writer{os.Stdout},
		LogLevels: logrus.AllLevels,
	})

	l.SetLevel(logrus.InfoLevel)

	e = logrus.NewEntry(l)
}

// SetLevel меняет уровень логирования после чтения конфигурации.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		e.Logger.Warnf("неизвестный уровень логирования '%s', остается info", level)
		return
	}
	e.Logger.SetLevel(parsed)
}

// SetFormat переключает формат вывода: "json" для агрегаторов логов,
// "text" для локальной разработки.
func SetFormat(format string) {
	switch format {
	case "json":
		e.Logger.Formatter = &logrus.JSONFormatter{
			CallerPrettyfier: callerPrettyfier,
		}
	case "", "text":
		e.Logger.Formatter = &logrus.TextFormatter{
			CallerPrettyfier: callerPrettyfier,
			DisableColors:    false,
			FullTimestamp:    true,
		}
	default:
		e.Logger.Warnf("неизвестный формат логирования '%s', остается прежний", format)
	}
}

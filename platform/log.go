package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hook 按天切换日志文件
type Hook struct {
	mu       sync.Mutex
	writer   *os.File
	logPath  string
	fileName string
	fileDate string
}

func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *Hook) Fire(entry *logrus.Entry) error {
	line, err := entry.Bytes()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	//需要切换日志文件
	if h.fileDate != today || h.writer == nil {
		writer, err := openLogFile(h.logPath, h.fileName, today)
		if err != nil {
			return err
		}
		if h.writer != nil {
			h.writer.Close()
		}
		h.writer = writer
		h.fileDate = today
	}
	_, err = h.writer.Write(line)
	return err
}

func openLogFile(logPath, fileName, date string) (*os.File, error) {
	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		return nil, err
	}
	name := filepath.Join(logPath, fmt.Sprintf("%s-%s.log", date, fileName))
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
}

type LogFormatter struct {
}

func (m *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	b.WriteString(fmt.Sprintf("[%s] [%s] %s\n", timestamp, entry.Level, entry.Message))
	return b.Bytes(), nil
}

// NewLogger returns a logger writing to stderr and, when logPath is set, to a daily file
// named <date>-<fileName>.log under logPath.
func NewLogger(logPath, fileName, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stderr)

	if logPath == "" {
		return logger, nil
	}
	logger.AddHook(&Hook{logPath: logPath, fileName: fileName})
	return logger, nil
}

// NewNopLogger discards everything.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

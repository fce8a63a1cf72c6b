package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logsDir        = "logs"
	fileBufferSize = 32 * 1024
)

// NewLogger writes JSON lines to logs/<serverType>.log through an async
// writer and echoes every entry to stdout. The returned closer flushes the
// file.
func NewLogger(serverType string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(ParseLevel(os.Getenv("LOG_LEVEL")))

	logFile, err := logFilePath(serverType)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(logsDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, fileBufferSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}

	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook())

	return logger, asyncWriter, nil
}

func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func logFilePath(serverType string) (string, error) {
	if serverType == "" {
		serverType = "storefront"
	}
	logFile := filepath.Clean(filepath.Join(logsDir, serverType+".log"))
	if !strings.HasPrefix(logFile, logsDir+string(filepath.Separator)) || strings.Count(logFile, string(filepath.Separator)) != 1 {
		return "", fmt.Errorf("invalid log file path %q: must be in %s directory", logFile, logsDir)
	}
	return logFile, nil
}

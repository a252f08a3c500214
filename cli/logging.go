package cli

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

//
// newLogger builds the logger every client logs through. Output goes to stderr unless a log file is
// configured, in which case the file is rotated once it reaches 100 MB. The returned closer
// releases the log file.
//
func newLogger(cfg *Config, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	logger.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	if cfg.LogFile == "" {
		logger.SetOutput(stderr)

		return logger, nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    100,
		MaxAge:     28,
		MaxBackups: 3,
		Compress:   true,
	}

	logger.SetOutput(file)

	return logger, file, nil
}

package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Environment variables configuring the process logger.
const (
	EnvLoggingLevel  = "PLUGINHOST_LOGGING_LEVEL"
	EnvLoggingFormat = "PLUGINHOST_LOGGING_FORMAT"
)

const (
	defaultLevel     = logrus.WarnLevel
	defaultTimestamp = "2006-01-02 15:04:05.000 MST"
	formatJSON       = "json"
)

var (
	once sync.Once
	lg   *logrus.Entry
)

// Logger returns the logger for the plugin host, configured once from the environment.
func Logger() *logrus.Entry {
	once.Do(func() {
		lg = New(os.Getenv(EnvLoggingLevel), os.Getenv(EnvLoggingFormat)).
			WithField("module", "pluginhost")
	})

	return lg
}

// New creates a logger writing to stderr. An empty or unknown level falls back to
// warning; format "json" selects the JSON formatter, anything else the text one.
func New(level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	lvl := defaultLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			l.Warnf("unknown logging level '%s', using '%s'", level, defaultLevel)
		} else {
			lvl = parsed
		}
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, formatJSON) {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: defaultTimestamp})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: defaultTimestamp})
	}

	return l
}

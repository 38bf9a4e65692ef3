package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoggerWrongLevel(t *testing.T) {
	l := New("wrongLevel", "")
	assert.NotNil(t, l)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}

func TestLoggerCorrectLevel(t *testing.T) {
	l := New("debug", "json")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestLoggerEmptyEnv(t *testing.T) {
	l := New("", "")
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestLoggerNotSetEnv(t *testing.T) {
	logger := Logger()
	assert.NotNil(t, logger)
	assert.Same(t, logger, Logger())
	assert.Equal(t, "pluginhost", logger.Data["module"])
}

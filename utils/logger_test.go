package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Info("загружено %d", 3)
	logger.Error("ошибка %s", "x")
	logger.Debug("не должно попасть")

	out := buf.String()
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "загружено 3")
	assert.Contains(t, out, "ERROR: ")
	assert.NotContains(t, out, "не должно попасть")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestLoggerVerboseDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, true)

	logger.Debug("детали %d", 7)
	assert.Contains(t, buf.String(), "DEBUG: ")
	assert.Contains(t, buf.String(), "детали 7")
}

func TestFileLoggerWithoutPath(t *testing.T) {
	logger, err := NewFileLogger("", false)
	assert.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Close()
}

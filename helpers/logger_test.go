package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "scrape_errors.log")

	logger := NewLogger(tmpFile)
	logger.LogError("duo", errors.New("https://duo.example.jp/p/1: product name not found"))
	logger.LogError("osp", errors.New("unexpected status code: 404"))

	data, err := os.ReadFile(tmpFile)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[duo]")
	assert.Contains(t, lines[0], "product name not found")
	assert.Contains(t, lines[1], "[osp]")

	// Info messages go to the structured logger, not the file
	logger.LogInfo("Test info message: %s", "hello")
	after, _ := os.ReadFile(tmpFile)
	assert.Equal(t, data, after)
}

func TestLoggerWithoutFile(t *testing.T) {
	logger := NewLogger("")
	assert.NotPanics(t, func() {
		logger.LogError("duo", errors.New("boom"))
	})
}

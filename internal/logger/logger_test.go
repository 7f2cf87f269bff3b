package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskman/internal/logger"
)

func TestNew_DebugWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(true, &buf)

	log.Debug("api request", zap.String("path", "/tasks/"))

	require.Contains(t, buf.String(), "api request")
	require.Contains(t, buf.String(), "/tasks/")
}

func TestNew_NonDebugIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(false, &buf)

	log.Error("should not appear")

	require.Empty(t, buf.String())
}

func TestEmail(t *testing.T) {
	require.Equal(t, "al***@example.com", logger.Email("alice@example.com"))
	require.Equal(t, "***@example.com", logger.Email("al@example.com"))
	require.Equal(t, "***", logger.Email("not-an-email"))
}

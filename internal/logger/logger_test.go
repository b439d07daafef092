package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultWriter(t *testing.T) {
	logger := New(Config{Level: slog.LevelInfo})
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestNew_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       slog.LevelInfo,
		Environment: "production",
		Writer:      &buf,
	})

	logger.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, `"msg":"test message"`)
	assert.Contains(t, output, `"level":"INFO"`)
	assert.Contains(t, output, `"key":"value"`)
}

func TestNew_DevelopmentUsesColoredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       slog.LevelInfo,
		Environment: "development",
		Writer:      &buf,
	})

	logger.Info("test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "INF")
	assert.Contains(t, output, colorReset)
	assert.NotContains(t, output, `"msg"`)
}

func TestNew_ProductionTrimsSourcePath(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       slog.LevelInfo,
		Environment: "production",
		AddSource:   true,
		Writer:      &buf,
	})

	logger.Info("with source")

	output := buf.String()
	assert.Contains(t, output, "logger_test.go")
	assert.NotContains(t, output, "/internal/logger/logger_test.go")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestDevHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		checkLevel   slog.Level
		wantEnabled  bool
	}{
		{"debug handler allows debug", slog.LevelDebug, slog.LevelDebug, true},
		{"info handler blocks debug", slog.LevelInfo, slog.LevelDebug, false},
		{"info handler allows info", slog.LevelInfo, slog.LevelInfo, true},
		{"info handler allows error", slog.LevelInfo, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := newDevHandler(&buf, &slog.HandlerOptions{Level: tt.handlerLevel})

			enabled := handler.Enabled(context.Background(), tt.checkLevel)
			assert.Equal(t, tt.wantEnabled, enabled)
		})
	}
}

func TestDevHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	handler := newDevHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(handler)
	logger.Info("test message", "key1", "value1", "key2", 42)

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=42")
	assert.Contains(t, output, "INF")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestDevHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	handler := newDevHandler(&buf, nil)

	logger := slog.New(handler)
	logger.Info("test")

	assert.Contains(t, buf.String(), "test")
}

func TestDevHandler_AddSource(t *testing.T) {
	var buf bytes.Buffer
	handler := newDevHandler(&buf, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	})

	logger := slog.New(handler)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestDevHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := newDevHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	withAttrs := handler.WithAttrs([]slog.Attr{
		slog.String("service", "test-service"),
		slog.Int("version", 1),
	})

	logger := slog.New(withAttrs)
	logger.Info("test message", "extra", "attr")

	output := buf.String()
	assert.Contains(t, output, "service=test-service")
	assert.Contains(t, output, "version=1")
	assert.Contains(t, output, "extra=attr")

	// The original handler is unchanged.
	buf.Reset()
	slog.New(handler).Info("plain")
	assert.NotContains(t, buf.String(), "service=")
}

func TestDevHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := newDevHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	// Groups are flattened in development output.
	grouped := handler.WithGroup("request")
	assert.Equal(t, slog.Handler(handler), grouped)

	logger := slog.New(grouped)
	logger.Info("test message", "method", "GET")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "method=GET")
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantTag   string
		wantColor string
	}{
		{slog.LevelDebug, "DBG", colorPurple},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
		{slog.LevelError + 4, "ERR", colorRed},
	}

	for _, tt := range tests {
		t.Run(tt.wantTag, func(t *testing.T) {
			tag, color := levelTag(tt.level)
			assert.Equal(t, tt.wantTag, tag)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       slog.LevelWarn,
		Environment: "production",
		Writer:      &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestLogger_AllLevelsDevelopment(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:       slog.LevelDebug,
		Environment: "development",
		Writer:      &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, tag := range []string{"DBG", "INF", "WRN", "ERR"} {
		assert.Contains(t, output, tag)
	}
}

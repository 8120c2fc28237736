package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

type patient struct {
	Name   string `masq:"secret"`
	Gender string
}

func TestNew_JSONRedactsSecretFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	logger.Info("case loaded", "child", patient{Name: "Sara", Gender: "F"})

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.String(t, buf.String()).NotContains("Sara")
	gt.String(t, buf.String()).Contains("case loaded")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatJSON)

	logger.Info("hidden")
	gt.Number(t, buf.Len()).Equal(0)

	logger.Warn("shown")
	gt.String(t, buf.String()).Contains("shown")
}

func TestFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON)
		ctx := logging.With(context.Background(), logger)
		gt.Value(t, logging.From(ctx)).Equal(logger)
	})
}

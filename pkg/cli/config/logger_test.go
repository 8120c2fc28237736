package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/cli/config"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	t.Run("writes JSON to a file", func(t *testing.T) {
		prev := logging.Default()
		t.Cleanup(func() { logging.SetDefault(prev) })

		path := filepath.Join(t.TempDir(), "casebook.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Debug("hello from test")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("hello from test")
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})
}

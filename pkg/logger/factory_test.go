package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovD3v/entitlements/pkg/logger"
)

type ctxKey struct{}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format emits parseable records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithFormat(logger.FormatJSON),
			logger.WithOutput(&buf),
		)

		userID := uuid.New()
		log.Info("denied", logger.UserID(userID), logger.Plan("basic"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "denied", rec["msg"])
		assert.Equal(t, userID.String(), rec["user_id"])
		assert.Equal(t, "basic", rec["plan"])
	})

	t.Run("context values are injected per record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithFormat(logger.FormatJSON),
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", ctxKey{}),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-42")
		log.InfoContext(ctx, "checked")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "req-42", rec["request_id"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("hidden")
		assert.Zero(t, buf.Len())

		log.Warn("shown")
		assert.NotZero(t, buf.Len())
	})

	t.Run("nil error attr stays empty", func(t *testing.T) {
		t.Parallel()

		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	})
}

package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"shelf/internal/config"
)

func TestForCarriesRequestID(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ctx := ContextWithID(context.Background(), "abc123")
	For(ctx).Info("hello")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "abc123", entry.Data["request_id"])
	require.Equal(t, "abc123", IDFrom(ctx))
	require.Empty(t, IDFrom(context.Background()))
}

func TestSetupRejectsBadLevel(t *testing.T) {
	require.Error(t, Setup(config.LogConfig{Level: "loud"}))

	prev := logrus.GetLevel()
	defer logrus.SetLevel(prev)
	require.NoError(t, Setup(config.LogConfig{Level: "warn"}))
	require.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

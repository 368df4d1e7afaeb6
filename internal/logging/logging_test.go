package logging_test

import (
	"errors"
	"io"
	"testing"

	"homerelief/internal/logging"
	"homerelief/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	logger, closeFn, err := logging.New(&types.Config{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	_, _, err = logging.New(&types.Config{LogLevel: "chatty"})
	require.Error(t, err)
}

func TestRollbarHookForwardsErrors(t *testing.T) {
	var got []any
	hook := logging.NewRollbarHook(func(interfaces ...any) {
		got = interfaces
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)

	logger.WithField("kind", "damage_reports").Info("ignored")
	require.Nil(t, got)

	logger.WithError(errors.New("connection reset")).
		WithField("kind", "damage_reports").
		Error("failed to fetch records")

	require.Len(t, got, 2)
	cause, ok := got[0].(error)
	require.True(t, ok)
	require.EqualError(t, cause, "failed to fetch records: connection reset")
	require.Equal(t, map[string]any{"kind": "damage_reports"}, got[1])
}

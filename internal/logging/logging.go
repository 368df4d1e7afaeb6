// Package logging configures the process logger and forwards errors to
// Rollbar when a token is configured.
package logging

import (
	"errors"
	"fmt"
	"os"

	"homerelief/pkg/types"

	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"
	"github.com/sirupsen/logrus"
)

// New returns a JSON logger at the configured level. The returned close
// function flushes pending Rollbar items.
func New(cfg *types.Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level := logrus.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	if cfg.RollbarToken == "" {
		return logger, func() {}, nil
	}

	rollbar.SetToken(cfg.RollbarToken)
	rollbar.SetEnvironment(cfg.Environment)
	rollbar.SetServerRoot("homerelief")
	rollbar.SetStackTracer(rollbarerrors.StackTracer)
	logger.AddHook(NewRollbarHook(rollbar.Error))

	return logger, rollbar.Wait, nil
}

// RollbarHook reports error-level entries. The entry fields travel as
// custom data.
type RollbarHook struct {
	report func(interfaces ...any)
}

func NewRollbarHook(report func(interfaces ...any)) *RollbarHook {
	return &RollbarHook{report: report}
}

func (h *RollbarHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *RollbarHook) Fire(entry *logrus.Entry) error {
	extras := make(map[string]any, len(entry.Data))
	var cause error
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				cause = err
				continue
			}
		}
		extras[k] = v
	}

	if cause == nil {
		cause = errors.New(entry.Message)
	} else {
		cause = fmt.Errorf("%s: %w", entry.Message, cause)
	}

	h.report(cause, extras)
	return nil
}

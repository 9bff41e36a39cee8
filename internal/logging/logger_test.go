package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected logrus.Level
	}{
		{level: "debug", expected: logrus.DebugLevel},
		{level: "ERROR", expected: logrus.ErrorLevel},
		{level: "fatal", expected: logrus.FatalLevel},
		{level: "Info", expected: logrus.InfoLevel},
		{level: "trace", expected: logrus.TraceLevel},
		{level: "warn", expected: logrus.WarnLevel},
		{level: "", expected: logrus.InfoLevel},
		{level: "verbose", expected: logrus.InfoLevel},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, GetLevel(tc.level), tc.level)
	}
}

func TestSentryHook_Levels(t *testing.T) {
	levels := []logrus.Level{logrus.PanicLevel, logrus.ErrorLevel}
	hook := NewSentryHook(levels)
	assert.Equal(t, levels, hook.Levels())
}

func TestEventFromEntry(t *testing.T) {
	now := time.Now()
	entry := &logrus.Entry{
		Level:   logrus.ErrorLevel,
		Message: "process frame failed",
		Time:    now,
		Data: logrus.Fields{
			"client": "alice",
			"error":  errors.New("boom"),
		},
	}

	event := eventFromEntry(entry)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "process frame failed", event.Message)
	assert.Equal(t, now, event.Timestamp)
	assert.Equal(t, "alice", event.Extra["client"])
	assert.Equal(t, "boom", event.Extra["error"])
}

func TestSentryLevel(t *testing.T) {
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.PanicLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(logrus.FatalLevel))
	assert.Equal(t, sentry.LevelWarning, sentryLevel(logrus.WarnLevel))
	assert.Equal(t, sentry.LevelInfo, sentryLevel(logrus.InfoLevel))
	assert.Equal(t, sentry.LevelDebug, sentryLevel(logrus.TraceLevel))
}

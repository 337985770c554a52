package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHandler(t *testing.T) {
	testCases := []struct {
		name     string
		env      string
		override string
		level    slog.Level
		json     bool
	}{
		{name: "Production", env: "prod", level: slog.LevelInfo, json: true},
		{name: "Local", env: "local", level: slog.LevelDebug},
		{name: "Unknown env", env: "test", level: slog.LevelInfo},
		{name: "Override", env: "prod", override: "warn", level: slog.LevelWarn, json: true},
		{name: "Bad override ignored", env: "dev", override: "loud", level: slog.LevelDebug},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler, level := newHandler(&buf, tc.env, tc.override)

			assert.Equal(t, tc.level, level)
			slog.New(handler).Log(context.Background(), tc.level, "hello")
			if tc.json {
				assert.Contains(t, buf.String(), `"msg":"hello"`)
			} else {
				assert.Contains(t, buf.String(), "msg=hello")
			}
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(WithLogger(context.Background(), base), "member_id", 7)
	FromContext(ctx).Info("saved")

	assert.Contains(t, buf.String(), "member_id=7")
	assert.Equal(t, slog.Default(), FromContext(nil)) //nolint:staticcheck
}

func TestMask(t *testing.T) {
	assert.Equal(t, "j***@gmail.com", MaskEmail("john.doe@gmail.com"))
	assert.Equal(t, "***@gmail.com", MaskEmail("@gmail.com"))
	assert.Equal(t, "***@***", MaskEmail("no-at-sign"))
	assert.Equal(t, "", MaskEmail(""))

	assert.Equal(t, "***-****-5678", MaskPhone("010-1234-5678"))
	assert.Equal(t, "***-****-5678", MaskPhone("01012345678"))
	assert.Equal(t, "***", MaskPhone("12"))
}

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(zapcore.AddSync(&buf), DebugLevel, true).Named("kayawood").With("n", 16)
	l.Debugw("sampled setup word", "attempts", 3)
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "DEBUG", entry["level"])
	require.Equal(t, "kayawood", entry["logger"])
	require.Equal(t, "sampled setup word", entry["msg"])
	require.EqualValues(t, 16, entry["n"])
	require.EqualValues(t, 3, entry["attempts"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(zapcore.AddSync(&buf), WarnLevel, false)
	l.Infow("hidden")
	l.Warnw("shown", "k", "v")
	require.NoError(t, l.Sync())
	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.True(t, strings.Contains(out, "WARN") && strings.Contains(out, "shown"))
}

func TestNopAndDefault(t *testing.T) {
	NewNop().Errorw("dropped")
	require.NotNil(t, DefaultLogger())
	require.NotNil(t, DefaultLogger().AddCallerSkip(1))
}

package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"off":     LevelSilent,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelSharedWithDerivedLoggers(t *testing.T) {
	l := NewNop()
	child := l.With(String("scene", "Scene 1"))

	l.SetLevel(LevelWarn)
	assert.Equal(t, LevelWarn, child.GetLevel())

	child.SetLevel(LevelSilent)
	assert.Equal(t, LevelSilent, l.GetLevel())
}

func TestNopAcceptsAllFieldTypes(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("tick",
			Any("v", struct{}{}),
			Bool("thrown", true),
			Float64("x", 1.5),
			Int("frame", 3),
			Int64("step", 4),
			Uint64("seq", 5),
			Error(errors.New("boom")),
			Error(nil),
		)
	})
}

package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `
steps:
  - frame: 0
    axis: -1
  - frame: 1
    axis: 2.5
  - frame: 3
    launch: true
`

func TestScriptedReplaysFrames(t *testing.T) {
	script, err := LoadScript(strings.NewReader(sampleScript))
	require.NoError(t, err)
	require.Len(t, script.Steps, 3)

	in := NewScripted(script)
	assert.Equal(t, int64(-1), in.Frame())
	assert.Zero(t, in.Axis(AxisHorizontal))

	require.NoError(t, in.Update(0.016))
	assert.Equal(t, -1.0, in.Axis(AxisHorizontal))
	assert.False(t, in.KeyDown(KeyLaunch))

	require.NoError(t, in.Update(0.016))
	assert.Equal(t, 2.5, in.Axis(AxisHorizontal), "axis values are not clamped")

	require.NoError(t, in.Update(0.016))
	assert.Zero(t, in.Axis(AxisHorizontal))

	require.NoError(t, in.Update(0.016))
	assert.True(t, in.KeyDown(KeyLaunch))
	assert.False(t, in.KeyDown("Enter"))
	assert.Zero(t, in.Axis("Vertical"))

	require.NoError(t, in.Update(0.016))
	assert.False(t, in.KeyDown(KeyLaunch), "key down is an edge, not a level")
}

func TestEmptyScript(t *testing.T) {
	script, err := LoadScript(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, script.Steps)

	in := NewScripted(nil)
	require.NoError(t, in.Update(0.016))
	assert.False(t, in.KeyDown(KeyLaunch))
}

func TestLoadScriptRejectsGarbage(t *testing.T) {
	_, err := LoadScript(strings.NewReader("steps: {frame: [}"))
	assert.Error(t, err)
}

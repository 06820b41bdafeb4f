package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const fastConfig = `
timings:
  initialDelayMs: 10
  shakeMs: 20
  revealDelayMs: 10
  holdMs: 20
`

const slowConfig = `
timings:
  initialDelayMs: 500
  shakeMs: 500
  revealDelayMs: 500
  holdMs: 500
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reward_sequence.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// simulate 重置全局参数后执行一次 simulate 命令
func simulate(t *testing.T, setup func()) string {
	t.Helper()
	amountFlag, currencyFlag, labelFlag, configPath = "50", "$", "", ""
	teardownAt, tickFlag = 0, time.Millisecond
	noAudio, noHaptics, noParticles = false, false, false
	setup()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runSimulate(cmd, nil))
	return out.String()
}

func TestSimulate_RunsToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := writeConfig(t, fastConfig)

	out := simulate(t, func() { configPath = path })

	assert.Contains(t, out, "$50")
	assert.Contains(t, out, "shaking")
	assert.Contains(t, out, "opening")
	assert.Contains(t, out, "finished")
	assert.Contains(t, out, "audio: play")
	assert.Contains(t, out, "haptics: vibrate")
	assert.Contains(t, out, "particles: burst 200")
	assert.Contains(t, out, "audio: release")
	assert.Contains(t, out, "completed (onComplete fired 1 time(s))")
}

func TestSimulate_TeardownCancelsReveal(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := writeConfig(t, slowConfig)

	out := simulate(t, func() {
		configPath = path
		teardownAt = 50 * time.Millisecond
	})

	assert.Contains(t, out, "torn down in idle")
	assert.Contains(t, out, "onComplete fired 0 time(s)")
	assert.NotContains(t, out, "particles: burst")
	assert.NotContains(t, out, "haptics: vibrate")
}

func TestSimulate_MissingCapabilities(t *testing.T) {
	path := writeConfig(t, fastConfig)

	out := simulate(t, func() {
		configPath = path
		noAudio, noHaptics, noParticles = true, true, true
	})

	assert.Contains(t, out, "skipped")
	assert.NotContains(t, out, "audio: play")
	assert.Contains(t, out, "completed (onComplete fired 1 time(s))")
}

func TestSimulate_InvalidAmount(t *testing.T) {
	amountFlag = "-5"
	defer func() { amountFlag = "50" }()

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, runSimulate(cmd, nil))
}

func TestSimulate_BadConfigPath(t *testing.T) {
	amountFlag, configPath = "50", filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { configPath = "" }()

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, runSimulate(cmd, nil))
}

package reward

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/gonewx/giftbox/pkg/config"
)

func fastConfig() *config.RewardSequenceConfig {
	cfg := config.DefaultRewardSequenceConfig()
	cfg.Timings = config.SequenceTimings{InitialDelayMs: 5, ShakeMs: 10, RevealDelayMs: 5, HoldMs: 10}
	return cfg
}

func TestDriver_RunsToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness()
	s, err := NewSequencer(Params{
		Amount:       decimal.NewFromInt(50),
		OnComplete:   func() { h.completed++ },
		Capabilities: h.caps(),
		Config:       fastConfig(),
	})
	require.NoError(t, err)

	ticks := 0
	d := &Driver{Tick: time.Millisecond, OnTick: func(*Sequencer) { ticks++ }}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, d.Run(ctx, s))
	assert.Equal(t, PhaseFinished, s.Phase())
	assert.Equal(t, 1, h.completed)
	assert.True(t, h.audio.track.closed)
	assert.Positive(t, ticks)
}

// TestDriver_CancelTearsDown ctx 取消等同于调用方提前销毁
func TestDriver_CancelTearsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness()
	s, err := NewSequencer(Params{
		Amount:       decimal.NewFromInt(50),
		OnComplete:   func() { h.completed++ },
		Capabilities: h.caps(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = (&Driver{}).Run(ctx, s)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, s.TornDown())
	assert.Equal(t, 0, h.completed)
	assert.True(t, h.audio.track.closed)
}

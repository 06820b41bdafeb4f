package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/reward"
)

var (
	teardownAt  time.Duration
	tickFlag    time.Duration
	noAudio     bool
	noHaptics   bool
	noParticles bool
)

// simulateCmd 无窗口运行一次揭晓序列
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one reveal headless and print what happens",
	Long: `Run one gift box reveal without a window. The sequence is advanced in
real time by a fixed tick; phase changes and reveal side effects are printed.

Use --teardown-at to cancel the reveal part way through, and --no-audio,
--no-haptics or --no-particles to simulate a missing capability.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&teardownAt, "teardown-at", 0, "Tear the sequence down after this long (0 = run to completion)")
	simulateCmd.Flags().DurationVar(&tickFlag, "tick", reward.DefaultTick, "Tick interval")
	simulateCmd.Flags().BoolVar(&noAudio, "no-audio", false, "Run without an audio capability")
	simulateCmd.Flags().BoolVar(&noHaptics, "no-haptics", false, "Run without a haptic capability")
	simulateCmd.Flags().BoolVar(&noParticles, "no-particles", false, "Run without a particle capability")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	amount, err := reward.ParseAmount(amountFlag)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", amountFlag, err)
	}
	cfg, err := config.LoadRewardSequenceConfig(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	caps := reward.Capabilities{}
	if !noAudio {
		caps.Audio = &logAudio{out: out}
	}
	if !noHaptics {
		caps.Haptics = &logHaptics{out: out}
	}
	if !noParticles {
		caps.Particles = &logParticles{out: out}
	}

	completions := 0
	seq, err := reward.NewSequencer(reward.Params{
		Amount:       amount,
		Text:         reward.DisplayText{Currency: currencyFlag, Label: labelFlag},
		Capabilities: caps,
		Config:       cfg,
		OnComplete:   func() { completions++ },
		OnReveal: func(results []reward.EffectResult) {
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(out, "  %-10s %s (%v)\n", r.Kind, r.Outcome, r.Err)
				} else {
					fmt.Fprintf(out, "  %-10s %s\n", r.Kind, r.Outcome)
				}
			}
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run %s: %s\n", seq.RunID(), seq.AmountText())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if teardownAt > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, teardownAt)
		defer cancel()
	}

	last := seq.Phase()
	driver := &reward.Driver{
		Tick: tickFlag,
		OnTick: func(s *reward.Sequencer) {
			if p := s.Phase(); p != last {
				last = p
				fmt.Fprintf(out, "%6dms %s\n", s.Elapsed().Milliseconds(), p)
			}
		},
	}

	err = driver.Run(ctx, seq)
	switch {
	case err == nil:
		fmt.Fprintf(out, "completed (onComplete fired %d time(s))\n", completions)
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "torn down in %s (onComplete fired %d time(s))\n", seq.Phase(), completions)
		return nil
	default:
		return err
	}
}

// 以下能力只打印调用，用于无窗口环境

type logAudio struct{ out io.Writer }

func (a *logAudio) Open(assetRef string) (reward.AudioTrack, error) {
	fmt.Fprintf(a.out, "  audio: open %s\n", assetRef)
	return &logTrack{out: a.out}, nil
}

type logTrack struct {
	out    io.Writer
	volume float64
}

func (t *logTrack) SetVolume(v float64) { t.volume = v }
func (t *logTrack) Rewind() error       { return nil }
func (t *logTrack) Pause()              {}

func (t *logTrack) Play() error {
	fmt.Fprintf(t.out, "  audio: play (volume %.2f)\n", t.volume)
	return nil
}

func (t *logTrack) Close() error {
	fmt.Fprintln(t.out, "  audio: release")
	return nil
}

type logHaptics struct{ out io.Writer }

func (h *logHaptics) Vibrate(pattern []time.Duration) error {
	fmt.Fprintf(h.out, "  haptics: vibrate %v\n", pattern)
	return nil
}

type logParticles struct{ out io.Writer }

func (p *logParticles) Available() bool { return true }
func (p *logParticles) EnsureLoaded()   {}

func (p *logParticles) Burst(cfg config.BurstConfig) error {
	fmt.Fprintf(p.out, "  particles: burst %d at (%.2f, %.2f)\n", cfg.ParticleCount, cfg.OriginX, cfg.OriginY)
	return nil
}

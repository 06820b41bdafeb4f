package reward

import (
	"errors"
	"sync"
	"time"

	"github.com/gonewx/giftbox/pkg/config"
)

// fakeTrack 记录音轨调用顺序
type fakeTrack struct {
	mu      sync.Mutex
	calls   []string
	volume  float64
	playErr error
	closed  bool
}

func (t *fakeTrack) record(c string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, c)
}

func (t *fakeTrack) SetVolume(v float64) { t.volume = v; t.record("volume") }
func (t *fakeTrack) Rewind() error       { t.record("rewind"); return nil }
func (t *fakeTrack) Play() error         { t.record("play"); return t.playErr }
func (t *fakeTrack) Pause()              { t.record("pause") }
func (t *fakeTrack) Close() error        { t.closed = true; t.record("close"); return nil }

func (t *fakeTrack) count(c string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, x := range t.calls {
		if x == c {
			n++
		}
	}
	return n
}

type fakeAudio struct {
	track   *fakeTrack
	openErr error
	opened  []string
}

func newFakeAudio() *fakeAudio { return &fakeAudio{track: &fakeTrack{}} }

func (a *fakeAudio) Open(ref string) (AudioTrack, error) {
	a.opened = append(a.opened, ref)
	if a.openErr != nil {
		return nil, a.openErr
	}
	return a.track, nil
}

type fakeHaptics struct {
	patterns [][]time.Duration
	err      error
	panicMsg string
}

func (h *fakeHaptics) Vibrate(p []time.Duration) error {
	h.patterns = append(h.patterns, p)
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	return h.err
}

type fakeParticles struct {
	available   bool
	ensureCalls int
	bursts      []config.BurstConfig
	err         error
}

func (p *fakeParticles) Available() bool { return p.available }
func (p *fakeParticles) EnsureLoaded()   { p.ensureCalls++ }
func (p *fakeParticles) Burst(cfg config.BurstConfig) error {
	p.bursts = append(p.bursts, cfg)
	return p.err
}

var errBlocked = errors.New("autoplay blocked")

type harness struct {
	audio     *fakeAudio
	haptics   *fakeHaptics
	particles *fakeParticles
	completed int
}

func newHarness() *harness {
	return &harness{
		audio:     newFakeAudio(),
		haptics:   &fakeHaptics{},
		particles: &fakeParticles{available: true},
	}
}

func (h *harness) caps() Capabilities {
	return Capabilities{Audio: h.audio, Haptics: h.haptics, Particles: h.particles}
}

func (h *harness) effectCalls() (plays, vibrations, bursts int) {
	return h.audio.track.count("play"), len(h.haptics.patterns), len(h.particles.bursts)
}

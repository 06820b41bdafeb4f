package install

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/giftbox/pkg/config"
)

type fakeAction struct {
	choice Choice
	err    error
	calls  int
}

func (a *fakeAction) Prompt() (Choice, error) {
	a.calls++
	return a.choice, a.err
}

func testConfig() config.InstallPromptConfig {
	return config.DefaultRewardSequenceConfig().InstallPrompt
}

// step 以 100ms 为单位推进
func step(b *Banner, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += 100 * time.Millisecond {
		b.Update(100 * time.Millisecond)
	}
}

func TestStore_SingleSlot(t *testing.T) {
	s := NewStore()
	_, ok := s.Action()
	assert.False(t, ok)

	first := &fakeAction{}
	second := &fakeAction{}
	s.Capture(first)
	s.Capture(second)
	s.Capture(nil)

	a, ok := s.Action()
	require.True(t, ok)
	assert.Same(t, second, a)

	a, ok = s.Consume()
	require.True(t, ok)
	assert.Same(t, second, a)

	_, ok = s.Consume()
	assert.False(t, ok, "动作只能消费一次")
}

func TestStore_ShownFlag(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Shown())
	assert.True(t, s.MarkShown())
	assert.False(t, s.MarkShown())
	assert.True(t, s.Shown())

	s.Capture(&fakeAction{})
	s.Reset()
	assert.False(t, s.Shown())
	_, ok := s.Action()
	assert.False(t, ok)
}

func TestStore_ConcurrentCapture(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Capture(&fakeAction{})
			s.Action()
		}()
	}
	wg.Wait()
	_, ok := s.Consume()
	assert.True(t, ok)
}

func TestEvents_Unsubscribe(t *testing.T) {
	ev := NewEvents()
	var got []DeferredAction
	unsub := ev.OnReady(func(a DeferredAction) { got = append(got, a) })
	assert.Equal(t, 1, ev.ListenerCount())

	a := &fakeAction{}
	ev.EmitReady(a)
	unsub()
	ev.EmitReady(a)

	assert.Len(t, got, 1)
	assert.Equal(t, 0, ev.ListenerCount())
}

func TestBanner_ExistingActionShowsAfterDelay(t *testing.T) {
	store := NewStore()
	store.Capture(&fakeAction{choice: ChoiceAccepted})
	b := NewBanner(store, NewEvents(), testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	// 第一帧启动计时器，不计入延迟
	step(b, 5000*time.Millisecond)
	assert.False(t, b.Visible(), "5000ms 前不可见")
	assert.True(t, b.Pending())

	step(b, 100*time.Millisecond)
	assert.True(t, b.Visible())
	assert.True(t, store.Shown())
}

// 展示计时器在启动帧不推进：一次大步长也不会立即展示
func TestBanner_ShowDelayStartsAfterArmingTick(t *testing.T) {
	events := NewEvents()
	b := NewBanner(NewStore(), events, testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	events.EmitReady(&fakeAction{})
	b.Update(10 * time.Second)
	assert.False(t, b.Visible())
	assert.True(t, b.Pending())

	b.Update(4999 * time.Millisecond)
	assert.False(t, b.Visible())
	b.Update(time.Millisecond)
	assert.True(t, b.Visible())
}

func TestBanner_AutoHide(t *testing.T) {
	store := NewStore()
	store.Capture(&fakeAction{})
	b := NewBanner(store, NewEvents(), testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	step(b, 5100*time.Millisecond)
	require.True(t, b.Visible())

	step(b, 19900*time.Millisecond)
	assert.True(t, b.Visible())
	step(b, 100*time.Millisecond)
	assert.False(t, b.Visible(), "20000ms 后自动隐藏")

	// 动作仍在槽位中，供稍后手动触发
	_, ok := store.Action()
	assert.True(t, ok)
}

func TestBanner_NativeOfferIsPreventedAndCaptured(t *testing.T) {
	store := NewStore()
	events := NewEvents()
	b := NewBanner(store, events, testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	action := &fakeAction{choice: ChoiceAccepted}
	offer := NewNativeOffer(action)
	events.EmitOffer(offer)

	assert.True(t, offer.DefaultPrevented())
	got, ok := store.Action()
	require.True(t, ok)
	assert.Same(t, action, got)

	step(b, 5100*time.Millisecond)
	assert.True(t, b.Visible())
}

func TestBanner_ReadyNotification(t *testing.T) {
	store := NewStore()
	events := NewEvents()
	b := NewBanner(store, events, testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	events.EmitReady(&fakeAction{})
	step(b, 5100*time.Millisecond)
	assert.True(t, b.Visible())
}

func TestBanner_SingleShowTimer(t *testing.T) {
	store := NewStore()
	events := NewEvents()
	b := NewBanner(store, events, testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	events.EmitReady(&fakeAction{})
	step(b, 3*time.Second)
	// 第二个通知不会重置计时器
	events.EmitReady(&fakeAction{})
	step(b, 2100*time.Millisecond)
	assert.True(t, b.Visible())
}

func TestBanner_ShownOncePerSession(t *testing.T) {
	store := NewStore()
	events := NewEvents()
	b := NewBanner(store, events, testConfig(), nil)
	b.Mount()

	events.EmitReady(&fakeAction{})
	step(b, 5100*time.Millisecond)
	require.True(t, b.Visible())
	b.Dismiss()
	b.Unmount()

	// 重新挂载，同一 Store 已记录展示过
	b2 := NewBanner(store, events, testConfig(), nil)
	b2.Mount()
	defer b2.Unmount()
	step(b2, 6*time.Second)
	assert.False(t, b2.Visible())
	assert.False(t, b2.Pending())
}

func TestBanner_StandaloneNeverShows(t *testing.T) {
	store := NewStore()
	store.Capture(&fakeAction{})
	b := NewBanner(store, NewEvents(), testConfig(), func() bool { return true })
	b.Mount()
	defer b.Unmount()

	step(b, 6*time.Second)
	assert.False(t, b.Visible())
	assert.False(t, store.Shown())
}

func TestBanner_InstallConsumesAction(t *testing.T) {
	store := NewStore()
	action := &fakeAction{choice: ChoiceAccepted}
	store.Capture(action)
	b := NewBanner(store, NewEvents(), testConfig(), nil)
	b.Mount()
	defer b.Unmount()
	step(b, 5100*time.Millisecond)
	require.True(t, b.Visible())

	res, err := b.Install()
	require.NoError(t, err)
	assert.True(t, res.Prompted)
	assert.Equal(t, ChoiceAccepted, res.Choice)
	assert.Equal(t, 1, action.calls)
	assert.False(t, b.Visible())

	// 第二次调用走手动说明
	res, err = b.Install()
	assert.ErrorIs(t, err, ErrNoDeferredAction)
	assert.Equal(t, config.DefaultFallbackInstruction, res.Fallback)
	assert.Equal(t, 1, action.calls)
}

func TestBanner_InstallWithoutAction(t *testing.T) {
	b := NewBanner(NewStore(), NewEvents(), testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	res, err := b.Install()
	require.ErrorIs(t, err, ErrNoDeferredAction)
	assert.False(t, res.Prompted)
	assert.Equal(t, config.DefaultFallbackInstruction, res.Fallback)
	assert.False(t, b.Visible())
}

func TestBanner_PromptError(t *testing.T) {
	store := NewStore()
	boom := errors.New("prompt failed")
	store.Capture(&fakeAction{err: boom})
	b := NewBanner(store, NewEvents(), testConfig(), nil)
	b.Mount()
	defer b.Unmount()

	res, err := b.Install()
	assert.ErrorIs(t, err, boom)
	assert.True(t, res.Prompted)
	_, ok := store.Action()
	assert.False(t, ok, "失败也会消费动作")
}

func TestBanner_UnmountCancelsTimersAndListeners(t *testing.T) {
	store := NewStore()
	events := NewEvents()
	b := NewBanner(store, events, testConfig(), nil)
	b.Mount()

	events.EmitReady(&fakeAction{})
	step(b, 1*time.Second)
	require.True(t, b.Pending())

	b.Unmount()
	b.Unmount()
	assert.Equal(t, 0, events.ListenerCount())
	assert.False(t, b.Pending())

	step(b, 10*time.Second)
	assert.False(t, b.Visible())
	assert.False(t, store.Shown())
}

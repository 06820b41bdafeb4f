package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
)

type stubBanner struct {
	visible bool
}

func (s *stubBanner) Visible() bool   { return s.visible }
func (s *stubBanner) AppName() string { return "Gift Box" }

func TestBannerRenderSystem_HitTest(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewBannerRenderSystem(em, config.ScreenWidth)
	state := &stubBanner{}
	c := bs.Component()

	bs.Update(state, 0)
	assert.Equal(t, BannerHitNone, bs.HitTest(c.InstallX+1, c.InstallY+1), "不可见时不响应点击")

	state.visible = true
	bs.Update(state, 0)
	assert.Equal(t, "Gift Box", c.Title)
	assert.Equal(t, BannerHitInstall, bs.HitTest(c.InstallX+1, c.InstallY+1))
	assert.Equal(t, BannerHitClose, bs.HitTest(c.CloseX+1, c.CloseY+1))
	assert.Equal(t, BannerHitBody, bs.HitTest(c.X+5, c.Y+5))
	assert.Equal(t, BannerHitNone, bs.HitTest(c.X+5, c.Y+c.Height+20))
}

func TestBannerRenderSystem_LayoutInsideScreen(t *testing.T) {
	em := ecs.NewEntityManager()
	c := NewBannerRenderSystem(em, config.ScreenWidth).Component()

	assert.LessOrEqual(t, c.CloseX+c.CloseW, c.X+c.Width)
	assert.Less(t, c.InstallX+c.InstallW, c.CloseX, "按钮不重叠")
	assert.Greater(t, c.InstallX, c.X+c.Height, "按钮不覆盖标题区域")
}

func TestBannerRenderSystem_ToastExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	bs := NewBannerRenderSystem(em, config.ScreenWidth)
	state := &stubBanner{}

	bs.ShowToast(config.DefaultFallbackInstruction)
	assert.Equal(t, config.DefaultFallbackInstruction, bs.Component().Toast)

	bs.Update(state, config.ToastDurationSecs-0.5)
	assert.NotEmpty(t, bs.Component().Toast)
	bs.Update(state, 0.5)
	assert.Empty(t, bs.Component().Toast)
}

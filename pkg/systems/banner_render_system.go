package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/giftbox/pkg/components"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
	"github.com/gonewx/giftbox/pkg/utils"
)

// BannerHit 点击横幅的位置
type BannerHit int

const (
	BannerHitNone BannerHit = iota
	BannerHitBody
	BannerHitInstall
	BannerHitClose
)

// BannerState 横幅渲染需要的状态（由 install.Banner 提供）
type BannerState interface {
	Visible() bool
	AppName() string
}

// BannerRenderSystem 安装横幅的布局、点击检测与绘制
type BannerRenderSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	face          *text.GoXFace
}

// NewBannerRenderSystem 创建横幅实体并计算布局
func NewBannerRenderSystem(em *ecs.EntityManager, screenWidth float64) *BannerRenderSystem {
	x := config.BannerMarginX
	y := config.BannerMarginTop
	w := screenWidth - 2*config.BannerMarginX
	h := config.BannerHeight
	pad := (h - 32) / 2

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BannerComponent{
		X: x, Y: y, Width: w, Height: h,
		CloseX: x + w - config.BannerCloseW - pad, CloseY: y + pad,
		CloseW: config.BannerCloseW, CloseH: 32,
		InstallX: x + w - config.BannerCloseW - config.BannerInstallW - 2*pad, InstallY: y + pad,
		InstallW: config.BannerInstallW, InstallH: 32,
	})
	return &BannerRenderSystem{
		entityManager: em,
		entity:        id,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Component 横幅组件
func (bs *BannerRenderSystem) Component() *components.BannerComponent {
	c, _ := ecs.GetComponent[*components.BannerComponent](bs.entityManager, bs.entity)
	return c
}

// Update 同步横幅可见性并推进提示计时
func (bs *BannerRenderSystem) Update(state BannerState, deltaTime float64) {
	c := bs.Component()
	if c == nil {
		return
	}
	c.Visible = state.Visible()
	c.Title = state.AppName()
	if c.ToastRemaining > 0 {
		c.ToastRemaining -= deltaTime
		if c.ToastRemaining <= 0 {
			c.Toast = ""
			c.ToastRemaining = 0
		}
	}
}

// ShowToast 显示一条短暂提示（例如手动安装说明）
func (bs *BannerRenderSystem) ShowToast(msg string) {
	if c := bs.Component(); c != nil {
		c.Toast = msg
		c.ToastRemaining = config.ToastDurationSecs
	}
}

// HitTest 判断点击位置；横幅不可见时总是 BannerHitNone
func (bs *BannerRenderSystem) HitTest(x, y float64) BannerHit {
	c := bs.Component()
	if c == nil || !c.Visible {
		return BannerHitNone
	}
	switch {
	case utils.PointInRect(x, y, c.CloseX, c.CloseY, c.CloseW, c.CloseH):
		return BannerHitClose
	case utils.PointInRect(x, y, c.InstallX, c.InstallY, c.InstallW, c.InstallH):
		return BannerHitInstall
	case utils.PointInRect(x, y, c.X, c.Y, c.Width, c.Height):
		return BannerHitBody
	}
	return BannerHitNone
}

// Draw 绘制横幅和提示
func (bs *BannerRenderSystem) Draw(screen *ebiten.Image) {
	c := bs.Component()
	if c == nil {
		return
	}
	if c.Visible {
		fillRect(screen, c.X, c.Y, c.Width, c.Height, config.BannerColor)

		// 标志与标题
		vector.DrawFilledCircle(screen, float32(c.X+c.Height/2), float32(c.Y+c.Height/2),
			float32(c.Height/2-10), config.GiftBodyColor, true)
		bs.drawText(screen, c.Title, c.X+c.Height, c.Y+c.Height/2, text.AlignStart, config.BannerTextScale)

		vector.StrokeRect(screen, float32(c.InstallX), float32(c.InstallY),
			float32(c.InstallW), float32(c.InstallH), 2, config.BannerButtonColor, true)
		bs.drawText(screen, "Install App", c.InstallX+c.InstallW/2, c.InstallY+c.InstallH/2, text.AlignCenter, config.BannerTextScale)
		bs.drawText(screen, "x", c.CloseX+c.CloseW/2, c.CloseY+c.CloseH/2, text.AlignCenter, config.BannerTextScale)
	}

	if c.Toast != "" {
		ty := c.Y + c.Height + 16
		fillRect(screen, c.X, ty, c.Width, 28, config.BannerColor)
		// 说明文字较长，不放大
		bs.drawText(screen, c.Toast, c.X+c.Width/2, ty+14, text.AlignCenter, 1)
	}
}

func (bs *BannerRenderSystem) drawText(screen *ebiten.Image, s string, x, y float64, align text.Align, scale float64) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = align
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(config.BannerTextColor)
	text.Draw(screen, s, bs.face, op)
}

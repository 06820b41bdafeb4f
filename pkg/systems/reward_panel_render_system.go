package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/giftbox/pkg/components"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
)

// GiftBoxRenderSystem 绘制礼盒与金额
//
// 绘制顺序：盒内背板 → 金额（从盒内升起）→ 盒身 → 丝带 → 盒盖与蝴蝶结。
// 盒盖需要旋转缩放，预先画到离屏图像上再整体变换。
type GiftBoxRenderSystem struct {
	entityManager *ecs.EntityManager
	face          *text.GoXFace
	lidImage      *ebiten.Image
}

// NewGiftBoxRenderSystem 创建礼盒渲染系统
func NewGiftBoxRenderSystem(em *ecs.EntityManager) *GiftBoxRenderSystem {
	return &GiftBoxRenderSystem{
		entityManager: em,
		face:          text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制所有礼盒实体
func (rs *GiftBoxRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.GiftBoxComponent](rs.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.entityManager, id)
		box, _ := ecs.GetComponent[*components.GiftBoxComponent](rs.entityManager, id)
		rs.drawGiftBox(screen, pos, box)
	}
}

func (rs *GiftBoxRenderSystem) drawGiftBox(screen *ebiten.Image, pos *components.PositionComponent, box *components.GiftBoxComponent) {
	cx := pos.X + box.ShakeX
	bottom := pos.Y + config.GiftBoxHeight/2
	bodyTop := bottom - config.GiftBodyHeight
	left := cx - config.GiftBoxWidth/2

	// 盒内背板
	fillRect(screen, left+config.GiftBackInset, bodyTop-config.GiftBackInset,
		config.GiftBoxWidth-2*config.GiftBackInset, config.GiftBackInset*2, config.GiftBackColor)

	// 金额在盒身之前绘制，看起来像从盒子里升起
	if box.MoneyAlpha > 0 && box.AmountText != "" {
		rs.drawMoney(screen, cx, bodyTop+box.MoneyOffsetY, box)
	}

	// 盒身（摇晃时整体旋转的近似：只做水平偏移，旋转体现在盒盖上）
	fillRect(screen, left, bodyTop, config.GiftBoxWidth, config.GiftBodyHeight, config.GiftBodyColor)
	vector.StrokeRect(screen, float32(left), float32(bodyTop),
		float32(config.GiftBoxWidth), float32(config.GiftBodyHeight), 2, config.GiftBodyEdge, true)
	fillRect(screen, cx-config.GiftRibbonWidth/2, bodyTop, config.GiftRibbonWidth, config.GiftBodyHeight, config.GiftBodyRibbon)

	if box.LidAlpha > 0 {
		rs.drawLid(screen, cx, bodyTop, box)
	}
}

func (rs *GiftBoxRenderSystem) drawMoney(screen *ebiten.Image, cx, y float64, box *components.GiftBoxComponent) {
	alpha := float32(box.MoneyAlpha)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	scale := config.MoneyTextScale * box.MoneyScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(config.MoneyTextColor)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, box.AmountText, rs.face, op)

	if box.Label == "" {
		return
	}
	labelOp := &text.DrawOptions{}
	labelOp.LayoutOptions.PrimaryAlign = text.AlignCenter
	labelOp.LayoutOptions.SecondaryAlign = text.AlignCenter
	labelScale := config.MoneyLabelScale * box.MoneyScale
	labelOp.GeoM.Scale(labelScale, labelScale)
	labelOp.GeoM.Translate(cx, y+13*scale*0.5+12*labelScale)
	labelOp.ColorScale.ScaleWithColor(config.MoneyLabelColor)
	labelOp.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, box.Label, rs.face, labelOp)
}

func (rs *GiftBoxRenderSystem) drawLid(screen *ebiten.Image, cx, bodyTop float64, box *components.GiftBoxComponent) {
	lid := rs.lid()
	w, h := config.GiftLidWidth, config.GiftLidHeight

	op := &ebiten.DrawImageOptions{}
	// 以盒盖中心为原点做缩放和旋转
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(box.LidScale, box.LidScale)
	op.GeoM.Rotate(box.LidRotation + box.ShakeRotation)
	// 盒盖板顶部位于盒身上方 GiftLidOffsetY 处，图像上方留出蝴蝶结的空间
	left := cx - config.GiftBoxWidth/2 + config.GiftLidOffsetX
	top := bodyTop + config.GiftLidOffsetY - config.GiftBowRadius
	op.GeoM.Translate(left+w/2+box.LidOffsetX, top+h/2+box.LidOffsetY)
	op.ColorScale.ScaleAlpha(float32(box.LidAlpha))
	screen.DrawImage(lid, op)
}

// lid 首次使用时绘制盒盖离屏图像（盖板、丝带、蝴蝶结）
func (rs *GiftBoxRenderSystem) lid() *ebiten.Image {
	if rs.lidImage != nil {
		return rs.lidImage
	}
	bow := config.GiftBowRadius
	w, h := config.GiftLidWidth, config.GiftLidHeight
	img := ebiten.NewImage(int(w), int(h))

	fillRect(img, 0, bow, w, h-bow, config.GiftLidColor)
	vector.StrokeRect(img, 0, float32(bow), float32(w), float32(h-bow), 2, config.GiftLidEdge, true)
	fillRect(img, w/2-config.GiftRibbonWidth/2, bow, config.GiftRibbonWidth, h-bow, config.GiftRibbonColor)

	// 蝴蝶结：两个圆环 + 中心结
	r := float32(bow * 0.6)
	vector.DrawFilledCircle(img, float32(w/2)-r, float32(bow), r, config.GiftRibbonColor, true)
	vector.DrawFilledCircle(img, float32(w/2)+r, float32(bow), r, config.GiftRibbonColor, true)
	vector.DrawFilledCircle(img, float32(w/2), float32(bow), r*0.6, config.GiftBodyEdge, true)

	rs.lidImage = img
	return img
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

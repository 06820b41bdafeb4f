package config

import "image/color"

// 礼盒场景布局常量
// 逻辑分辨率为竖屏手机尺寸，Ebitengine 负责缩放

const (
	ScreenWidth  = 480
	ScreenHeight = 800

	// 礼盒整体（盒身 + 盖子），中心点在屏幕中央略偏下
	GiftBoxWidth   = 160.0
	GiftBoxHeight  = 128.0
	GiftBoxOffsetY = 100.0 // 相对屏幕中心向下偏移

	GiftBodyHeight = 112.0
	GiftBackInset  = 4.0

	GiftLidWidth   = 176.0
	GiftLidHeight  = 44.0
	GiftLidOffsetX = -8.0
	GiftLidOffsetY = -12.0

	GiftRibbonWidth = 28.0
	GiftBowRadius   = 18.0

	// 摇晃：每 80ms 一个周期
	ShakePeriodSeconds = 0.08

	// 盖子飞出：1 秒 ease-in，最终位移与旋转
	LidFlyDurationSeconds = 1.0
	LidFlyOffsetX         = 120.0
	LidFlyOffsetY         = -500.0
	LidFlyRotationDeg     = -140.0
	LidFlyFinalScale      = 0.7

	// 金额弹出：延迟 0.3 秒，持续 0.8 秒
	MoneyPopDelaySeconds    = 0.3
	MoneyPopDurationSeconds = 0.8
	MoneyPopStartOffsetY    = 50.0
	MoneyPopEndOffsetY      = -210.0
	MoneyTextScale          = 5.0
	MoneyLabelScale         = 2.0
	MoneyLabel              = "REWARD"

	// 安装横幅
	BannerMarginX     = 12.0
	BannerMarginTop   = 8.0
	BannerHeight      = 56.0
	BannerInstallW    = 120.0
	BannerCloseW      = 32.0
	BannerTextScale   = 1.5
	ToastDurationSecs = 4.0
)

// OverlayAlpha 礼盒场景背景遮罩透明度
const OverlayAlpha uint8 = 230

var (
	GiftBodyColor   = color.RGBA{0xF5, 0x9E, 0x0B, 0xFF}
	GiftBodyEdge    = color.RGBA{0xB4, 0x53, 0x09, 0xFF}
	GiftBackColor   = color.RGBA{0x92, 0x40, 0x0E, 0xFF}
	GiftLidColor    = color.RGBA{0x7C, 0x3A, 0xED, 0xFF}
	GiftLidEdge     = color.RGBA{0x4C, 0x1D, 0x95, 0xFF}
	GiftRibbonColor = color.RGBA{0xFC, 0xD3, 0x4D, 0xFF}
	GiftBodyRibbon  = color.RGBA{0x5B, 0x21, 0xB6, 0xFF}

	MoneyTextColor  = color.RGBA{0xFF, 0xD7, 0x00, 0xFF}
	MoneyLabelColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

	BannerColor       = color.RGBA{0x7C, 0x3A, 0xED, 0xF0}
	BannerButtonColor = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	BannerTextColor   = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.giftbox -o build/android/giftbox.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/GiftBox.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/shopspring/decimal"

	"github.com/gonewx/giftbox/pkg/app"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/embedded"
	"github.com/gonewx/giftbox/pkg/install"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
)

var gameApp *app.App

func init() {
	logger.Init(logger.Options{Verbose: true, Console: true})

	cfg := initResources()

	var err error
	gameApp, err = app.NewApp(app.Config{
		Amount:         decimal.NewFromInt(50),
		Text:           reward.DisplayText{Currency: "$"},
		Assets:         embedded.FS(),
		Storage:        true,
		ConfigProvider: func() *config.RewardSequenceConfig { return cfg },
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// NativeInstall 原生外壳实现的安装对话框
// 外壳在系统允许安装时调用 OfferInstall 传入实现。
type NativeInstall interface {
	// ShowInstallDialog 展示系统安装对话框，返回用户是否接受
	ShowInstallDialog() (bool, error)
}

type nativeAction struct{ native NativeInstall }

func (a nativeAction) Prompt() (install.Choice, error) {
	ok, err := a.native.ShowInstallDialog()
	if err != nil {
		return install.ChoiceDismissed, err
	}
	if ok {
		return install.ChoiceAccepted, nil
	}
	return install.ChoiceDismissed, nil
}

// OfferInstall 原生外壳投递一次安装邀请（可在任意线程调用）
func OfferInstall(native NativeInstall) {
	if native == nil || gameApp == nil {
		return
	}
	gameApp.InstallEvents().EmitOffer(install.NewNativeOffer(nativeAction{native: native}))
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

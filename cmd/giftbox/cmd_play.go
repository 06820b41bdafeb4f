package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gonewx/giftbox"
	"github.com/gonewx/giftbox/pkg/app"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/embedded"
	"github.com/gonewx/giftbox/pkg/install"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
)

var (
	watchConfig bool
	assetsDir   string
	noSave      bool
	demoOffer   bool
)

// playCmd 打开窗口播放礼盒动画
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a window and play the reveal",
	Long: `Open a window and play the gift box reveal.

Controls:
  Space/Enter/Click - play another gift once the current one finished
  Esc               - cancel the running reveal
  S / H / P         - toggle sound, haptics, confetti
  F11               - toggle fullscreen`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&watchConfig, "watch", false, "Reload --config when it changes")
	playCmd.Flags().StringVar(&assetsDir, "assets", ".", "Directory containing assets/audio")
	playCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not load or persist user settings")
	playCmd.Flags().BoolVar(&demoOffer, "offer", false, "Emit a demo install offer so the banner can be tried out")
}

func runPlay(cmd *cobra.Command, args []string) error {
	amount, err := reward.ParseAmount(amountFlag)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", amountFlag, err)
	}

	embedded.Init(os.DirFS(assetsDir), giftbox.DataFS())

	provider, stop, err := configProvider(cmd.Context())
	if err != nil {
		return err
	}
	defer stop()

	events := install.NewEvents()
	gameApp, err := app.NewApp(app.Config{
		Amount:         amount,
		Text:           reward.DisplayText{Currency: currencyFlag, Label: labelFlag},
		Assets:         embedded.FS(),
		Storage:        !noSave,
		ConfigProvider: provider,
		Events:         events,
	})
	if err != nil {
		return err
	}
	defer gameApp.Shutdown()

	if demoOffer {
		// 桌面端没有平台安装邀请，模拟一次原生邀请
		events.EmitOffer(install.NewNativeOffer(demoInstall{}))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Gift Box")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(gameApp)
}

// configProvider 根据 --config/--watch 返回配置来源以及清理函数
func configProvider(ctx context.Context) (func() *config.RewardSequenceConfig, func(), error) {
	if configPath == "" {
		data, err := embedded.ReadFile(giftbox.DefaultConfigPath)
		if err != nil {
			return nil, nil, err
		}
		cfg, err := config.ParseRewardSequenceConfig(data)
		if err != nil {
			return nil, nil, err
		}
		return func() *config.RewardSequenceConfig { return cfg }, func() {}, nil
	}

	if !watchConfig {
		cfg, err := config.LoadRewardSequenceConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		return func() *config.RewardSequenceConfig { return cfg }, func() {}, nil
	}

	watcher, err := config.NewConfigWatcher(configPath, func(*config.RewardSequenceConfig) {
		logger.Infof("[Play] 配置已重新加载，下一次揭晓生效")
	})
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Stop()
		return nil, nil, err
	}
	return watcher.Current, watcher.Stop, nil
}

// demoInstall 桌面演示用的安装动作
type demoInstall struct{}

func (demoInstall) Prompt() (install.Choice, error) {
	logger.Infof("[Play] 演示安装对话框：接受")
	return install.ChoiceAccepted, nil
}

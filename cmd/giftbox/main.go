// Package main 礼盒奖励揭晓的命令行入口
//
// Usage:
//
//	giftbox play --amount 50 --currency '$'        # 打开窗口播放礼盒动画
//	giftbox simulate --amount 50 --teardown-at 1s  # 无窗口模拟，打印阶段变化
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gonewx/giftbox/pkg/logger"
)

var (
	verbose bool

	// 两个子命令共用的金额参数
	amountFlag   string
	currencyFlag string
	labelFlag    string
	configPath   string
)

var rootCmd = &cobra.Command{
	Use:   "giftbox",
	Short: "Gift box reward reveal",
	Long: `Plays the gift box reward reveal: the box shakes, bursts open and
shows the reward amount with sound, vibration and confetti.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Verbose: verbose, Console: true})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&amountFlag, "amount", "50", "Reward amount")
	rootCmd.PersistentFlags().StringVar(&currencyFlag, "currency", "$", "Currency symbol shown before the amount")
	rootCmd.PersistentFlags().StringVar(&labelFlag, "label", "", "Label under the amount (default REWARD)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Reward sequence YAML (default: built-in values)")

	rootCmd.AddCommand(playCmd, simulateCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

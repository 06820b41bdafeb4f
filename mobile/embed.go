//go:build mobile

// embed.go - 移动端资源初始化
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 音效缺失时使用合成提示音，移动端只需要内置的 data/ 配置。
package mobile

import (
	"github.com/gonewx/giftbox"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/embedded"
	"github.com/gonewx/giftbox/pkg/logger"
)

// initResources 初始化嵌入资源并返回内置序列配置
func initResources() *config.RewardSequenceConfig {
	embedded.Init(nil, giftbox.DataFS())

	data, err := embedded.ReadFile(giftbox.DefaultConfigPath)
	if err != nil {
		logger.Warnf("[Mobile] 读取内置配置失败: %v，使用默认值", err)
		return config.DefaultRewardSequenceConfig()
	}
	cfg, err := config.ParseRewardSequenceConfig(data)
	if err != nil {
		logger.Warnf("[Mobile] 内置配置无效: %v，使用默认值", err)
		return config.DefaultRewardSequenceConfig()
	}
	return cfg
}

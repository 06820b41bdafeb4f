//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，设置 GIFTBOX_MOBILE_EMULATE=1 可强制启用（本地调试）
func IsMobile() bool {
	return os.Getenv("GIFTBOX_MOBILE_EMULATE") == "1"
}

// IsStandalone 是否以已安装的独立应用运行
// 独立运行时不需要"添加到主屏幕"横幅。桌面端可用 GIFTBOX_STANDALONE=1 模拟。
func IsStandalone() bool {
	return os.Getenv("GIFTBOX_STANDALONE") == "1"
}

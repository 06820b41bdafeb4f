package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景：拥有自己的更新与绘制逻辑
type Scene interface {
	// Update deltaTime 为距上一帧的秒数
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}

// Disposable 可选接口：场景被切换掉或程序退出时释放资源
//
// 奖励场景在这里拆除正在运行的序列（取消计时、释放音轨）。
type Disposable interface {
	Dispose()
}

package reward

import (
	"context"
	"time"
)

// DefaultTick 默认 tick 间隔（60 TPS）
const DefaultTick = time.Second / 60

// Driver 在没有游戏循环的环境下（命令行模拟、服务端预览）
// 以固定 tick 推进一个 Sequencer
//
// Run 在调用者的 goroutine 中执行，序列的所有状态变化都发生在这个 goroutine 里。
type Driver struct {
	Tick time.Duration

	// OnTick 可选，每个 tick 推进之后调用
	OnTick func(s *Sequencer)
}

// Run 推进序列直到 Finished 或 ctx 被取消
//
// ctx 取消时对序列执行 Teardown 并返回 ctx.Err()；
// 正常完成返回 nil（音轨已在 Finished 时释放）。
func (d *Driver) Run(ctx context.Context, s *Sequencer) error {
	tick := d.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for !s.Done() {
		select {
		case <-ctx.Done():
			s.Teardown()
			return ctx.Err()
		case now := <-ticker.C:
			s.Update(now.Sub(last))
			last = now
			if d.OnTick != nil {
				d.OnTick(s)
			}
		}
	}
	return nil
}

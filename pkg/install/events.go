package install

import (
	"sort"
	"sync"
)

// OfferEvent 平台原生的安装邀请事件
// 处理方必须先调用 PreventDefault 阻止平台自带的提示，再保存 Action 以便稍后重放。
type OfferEvent interface {
	PreventDefault()
	Action() DeferredAction
}

// Events 安装邀请的通知通道
//
// 两类通知：平台原生邀请（Offer）和外壳发出的"邀请已就绪"自定义通知（Ready）。
// 监听函数在 Emit 的调用方 goroutine 中同步执行。
type Events struct {
	mu     sync.Mutex
	nextID int
	offer  map[int]func(OfferEvent)
	ready  map[int]func(DeferredAction)
}

// NewEvents 创建通知通道
func NewEvents() *Events {
	return &Events{
		offer: make(map[int]func(OfferEvent)),
		ready: make(map[int]func(DeferredAction)),
	}
}

// OnOffer 订阅原生邀请，返回取消订阅函数
func (e *Events) OnOffer(fn func(OfferEvent)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.offer[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.offer, id)
	}
}

// OnReady 订阅"邀请已就绪"通知，返回取消订阅函数
func (e *Events) OnReady(fn func(DeferredAction)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	e.ready[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.ready, id)
	}
}

// EmitOffer 派发原生邀请
func (e *Events) EmitOffer(ev OfferEvent) {
	for _, fn := range snapshot(&e.mu, e.offer) {
		fn(ev)
	}
}

// EmitReady 派发"邀请已就绪"通知
func (e *Events) EmitReady(a DeferredAction) {
	for _, fn := range snapshot(&e.mu, e.ready) {
		fn(a)
	}
}

// ListenerCount 当前监听数量
func (e *Events) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.offer) + len(e.ready)
}

// snapshot 按订阅顺序复制监听列表，派发时不持锁
func snapshot[T any](mu *sync.Mutex, m map[int]T) []T {
	mu.Lock()
	defer mu.Unlock()
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// NativeOffer 可直接使用的 OfferEvent 实现（移动端外壳与测试使用）
type NativeOffer struct {
	action    DeferredAction
	prevented bool
}

// NewNativeOffer 包装一个平台动作
func NewNativeOffer(a DeferredAction) *NativeOffer {
	return &NativeOffer{action: a}
}

func (o *NativeOffer) PreventDefault()        { o.prevented = true }
func (o *NativeOffer) Action() DeferredAction { return o.action }

// DefaultPrevented 是否已阻止平台自带提示
func (o *NativeOffer) DefaultPrevented() bool { return o.prevented }

// Package install 实现"添加到主屏幕"横幅的延迟动作捕获
//
// 平台（浏览器或移动端外壳）会提供一个可延迟执行的安装邀请。
// 邀请被捕获到一个显式注入的单槽 Store 中，由 Banner 延迟展示、
// 自动隐藏，并在用户点击时执行一次后清空。
package install

import (
	"errors"
	"sync"
)

// Choice 用户对安装邀请的选择
type Choice string

const (
	ChoiceAccepted  Choice = "accepted"
	ChoiceDismissed Choice = "dismissed"
)

// DeferredAction 平台提供的可延迟动作，只能执行一次
type DeferredAction interface {
	// Prompt 展示平台的安装对话框并返回用户选择
	Prompt() (Choice, error)
}

// ErrNoDeferredAction 没有可用的安装邀请
var ErrNoDeferredAction = errors.New("install: no deferred action captured")

// Store 进程内唯一的延迟动作槽位
//
// 应用启动时创建一次并注入到需要的组件中。
// 同时记录本次会话中横幅是否已经展示过。可在任意 goroutine 中使用。
type Store struct {
	mu     sync.Mutex
	action DeferredAction
	shown  bool
}

// NewStore 创建空的 Store
func NewStore() *Store {
	return &Store{}
}

// Capture 保存动作，覆盖之前尚未使用的动作
func (s *Store) Capture(a DeferredAction) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = a
}

// Action 返回当前动作但不消费
func (s *Store) Action() (DeferredAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action, s.action != nil
}

// Consume 取出并清空当前动作
func (s *Store) Consume() (DeferredAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.action
	s.action = nil
	return a, a != nil
}

// MarkShown 标记横幅已展示；返回是否为第一次
func (s *Store) MarkShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	first := !s.shown
	s.shown = true
	return first
}

// Shown 本次会话是否已经展示过横幅
func (s *Store) Shown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// Reset 清空动作和展示标记（新会话）
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = nil
	s.shown = false
}

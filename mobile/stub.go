//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 绑定入口（mobile.go、embed.go）仅在 -tags mobile 时编译，
// 普通构建下本包只提供空的 Dummy，使 go build ./... 能通过。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}

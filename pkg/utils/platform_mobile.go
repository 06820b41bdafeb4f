//go:build mobile

package utils

// IsMobile 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// IsStandalone 移动端外壳即已安装的应用
func IsStandalone() bool {
	return true
}

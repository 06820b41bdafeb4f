// Package embedded 提供资源文件的统一访问接口
//
// 资源分两类：assets/（音效等二进制资源）和 data/（YAML 配置）。
// 桌面端传入磁盘目录（os.DirFS），移动端传入 //go:embed 的 embed.FS。
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

const (
	assetsPrefix = "assets/"
	dataPrefix   = "data/"
)

var (
	mu       sync.RWMutex
	assetsFS fs.FS
	dataFS   fs.FS
)

// Init 设置资源文件系统，任一参数可为 nil（对应前缀下的文件都不存在）
// 两者的根目录都应包含各自的前缀目录，例如 assets 中存在 "assets/audio/reward.mp3"。
func Init(assets, data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	assetsFS = assets
	dataFS = data
}

// IsInitialized 是否已调用 Init
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return assetsFS != nil || dataFS != nil
}

// normalize 统一为正斜杠并去掉 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// route 根据路径前缀选择文件系统
func route(path string) (fs.FS, string, error) {
	path = normalize(path)

	mu.RLock()
	defer mu.RUnlock()

	var fsys fs.FS
	switch {
	case strings.HasPrefix(path, assetsPrefix):
		fsys = assetsFS
	case strings.HasPrefix(path, dataPrefix):
		fsys = dataFS
	default:
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
	}
	if fsys == nil {
		return nil, "", fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return fsys, path, nil
}

// Open 打开资源文件
func Open(path string) (fs.File, error) {
	fsys, p, err := route(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(p)
}

// ReadFile 读取资源文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, p, err := route(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p)
}

// Exists 资源文件是否存在
func Exists(path string) bool {
	f, err := Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// resources 按前缀路由的 fs.FS
type resources struct{}

func (resources) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f, nil
}

// FS 返回按前缀路由的文件系统（供 game.AudioManager 等按路径加载资源）
func FS() fs.FS {
	return resources{}
}

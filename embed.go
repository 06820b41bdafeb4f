// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package giftbox

import (
	"embed"
	"io/fs"
)

// DefaultConfigPath 内置序列配置在 DataFS 中的路径
const DefaultConfigPath = "data/reward_sequence.yaml"

//go:embed data/reward_sequence.yaml
var dataFS embed.FS

// DataFS 返回内置的 data/ 目录，可直接传给 embedded.Init
func DataFS() fs.FS {
	return dataFS
}

package giftbox

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/giftbox/pkg/config"
)

// 内置配置必须与代码默认值一致
func TestDefaultConfigMatchesBuiltins(t *testing.T) {
	data, err := fs.ReadFile(DataFS(), DefaultConfigPath)
	require.NoError(t, err)

	cfg, err := config.ParseRewardSequenceConfig(data)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRewardSequenceConfig(), cfg)
}

package embedded

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	Init(
		fstest.MapFS{"assets/audio/reward.wav": {Data: []byte("RIFF")}},
		fstest.MapFS{"data/reward_sequence.yaml": {Data: []byte("timings: {}\n")}},
	)
	t.Cleanup(func() { Init(nil, nil) })
}

func TestReadFile_RoutesByPrefix(t *testing.T) {
	setup(t)
	require.True(t, IsInitialized())

	data, err := ReadFile("assets/audio/reward.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	data, err = ReadFile("./data/reward_sequence.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "timings")
}

func TestReadFile_UnknownPrefix(t *testing.T) {
	setup(t)
	_, err := ReadFile("other/file.txt")
	assert.Error(t, err)
	assert.False(t, Exists("other/file.txt"))
}

func TestExists(t *testing.T) {
	setup(t)
	assert.True(t, Exists("assets/audio/reward.wav"))
	assert.False(t, Exists("assets/audio/missing.mp3"))
}

func TestNotInitialized(t *testing.T) {
	Init(nil, nil)
	assert.False(t, IsInitialized())
	_, err := ReadFile("assets/audio/reward.wav")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFS(t *testing.T) {
	setup(t)
	data, err := fs.ReadFile(FS(), "assets/audio/reward.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	_, err = fs.ReadFile(FS(), "../escape")
	assert.Error(t, err)
}

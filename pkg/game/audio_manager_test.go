package game

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// audio.NewContext 每个进程只能调用一次
var (
	sharedAudioOnce sync.Once
	sharedAudio     *audio.Context
)

func sharedAudioContext() *audio.Context {
	sharedAudioOnce.Do(func() {
		sharedAudio = audio.NewContext(48000)
	})
	return sharedAudio
}

// silentWAV 生成一段 16 位立体声静音 WAV
func silentWAV(sampleRate, frames int) []byte {
	var buf bytes.Buffer
	dataSize := frames * 4
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestAudioManager_OpenWAV(t *testing.T) {
	assets := fstest.MapFS{
		"sfx/reward.wav": {Data: silentWAV(48000, 4800)},
	}
	am := NewAudioManager(sharedAudioContext(), nil, assets)

	track, err := am.Open("sfx/reward.wav")
	require.NoError(t, err)
	track.SetVolume(0.6)
	assert.NoError(t, track.Rewind())
	assert.NoError(t, track.Close())
	assert.NoError(t, track.Close(), "重复关闭安全")
	assert.Error(t, track.Play(), "关闭后不能播放")

	// 第二次打开命中缓存，得到独立音轨
	again, err := am.Open("sfx/reward.wav")
	require.NoError(t, err)
	assert.NotSame(t, track, again)
	assert.Len(t, am.cache, 1)
}

func TestAudioManager_MissingAssetFallsBackToChime(t *testing.T) {
	am := NewAudioManager(sharedAudioContext(), nil, fstest.MapFS{})

	track, err := am.Open("assets/audio/reward.mp3")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.NoError(t, track.Rewind())
	assert.NoError(t, track.Close())
}

func TestAudioManager_CorruptAssetFallsBackToChime(t *testing.T) {
	assets := fstest.MapFS{
		"reward.mp3": {Data: []byte("not an mp3")},
		"reward.xyz": {Data: []byte("??")},
	}
	am := NewAudioManager(sharedAudioContext(), nil, assets)

	for _, ref := range []string{"reward.mp3", "reward.xyz"} {
		track, err := am.Open(ref)
		require.NoError(t, err, ref)
		assert.NoError(t, track.Close())
	}
}

func TestAudioManager_SoundDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(sharedAudioContext(), sm, nil)

	track, err := am.Open("reward.mp3")
	assert.ErrorIs(t, err, ErrSoundDisabled)
	assert.Nil(t, track)
}

func TestAudioManager_NoContext(t *testing.T) {
	am := NewAudioManager(nil, nil, nil)
	_, err := am.Open("reward.mp3")
	assert.Error(t, err)
}

func TestAudioManager_VolumeScale(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.5)
	am := NewAudioManager(sharedAudioContext(), sm, nil)

	track, err := am.Open("reward.mp3")
	require.NoError(t, err)
	pt := track.(*playerTrack)
	assert.Equal(t, 0.5, pt.scale)

	track.SetVolume(0.6)
	assert.InDelta(t, 0.3, pt.player.Volume(), 1e-9)
}

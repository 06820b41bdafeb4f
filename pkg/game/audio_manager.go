package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	chime "github.com/gonewx/giftbox/internal/audio"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
)

// ErrSoundDisabled 用户关闭了音效
var ErrSoundDisabled = errors.New("game: sound disabled in settings")

// AudioManager 音频管理器
// 职责：
//   - 按资源路径创建音轨（reward.AudioPlayer）
//   - 按扩展名解码 mp3 / ogg / wav，找不到或解码失败时使用合成提示音
//   - 与设置联动：音效开关与音量
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager // 可为 nil
	assets          fs.FS            // 可为 nil，此时总是使用合成提示音

	mu    sync.Mutex
	cache map[string][]byte // 资源路径 -> 原始文件内容
}

var _ reward.AudioPlayer = (*AudioManager)(nil)

// NewAudioManager 创建音频管理器
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, assets fs.FS) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		assets:          assets,
		cache:           make(map[string][]byte),
	}
}

// Open 为资源创建一条独立音轨
//
// 音效被关闭时返回 ErrSoundDisabled。资源缺失或格式错误不算失败，
// 回退到合成提示音，保证揭晓时总有声音。
func (am *AudioManager) Open(assetRef string) (reward.AudioTrack, error) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return nil, ErrSoundDisabled
	}
	if am.context == nil {
		return nil, fmt.Errorf("open %q: no audio context", assetRef)
	}

	stream, err := am.decode(assetRef)
	if err != nil {
		logger.Warnf("[AudioManager] 无法加载音效 %s: %v，使用合成提示音", assetRef, err)
		stream = chime.NewChime(am.context.SampleRate())
	}

	player, err := am.context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("create player for %q: %w", assetRef, err)
	}
	return &playerTrack{player: player, scale: am.volumeScale()}, nil
}

func (am *AudioManager) volumeScale() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// decode 读取并解码资源，文件内容会被缓存
func (am *AudioManager) decode(assetRef string) (io.ReadSeeker, error) {
	data, err := am.load(assetRef)
	if err != nil {
		return nil, err
	}
	reader := bytes.NewReader(data)
	rate := am.context.SampleRate()

	switch ext := strings.ToLower(path.Ext(assetRef)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", assetRef, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", assetRef, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", assetRef, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
}

func (am *AudioManager) load(assetRef string) ([]byte, error) {
	am.mu.Lock()
	defer am.mu.Unlock()

	if data, ok := am.cache[assetRef]; ok {
		return data, nil
	}
	if am.assets == nil {
		return nil, fmt.Errorf("no asset filesystem")
	}
	data, err := fs.ReadFile(am.assets, assetRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", assetRef, err)
	}
	am.cache[assetRef] = data
	return data, nil
}

// playerTrack 基于 ebiten audio.Player 的 reward.AudioTrack
type playerTrack struct {
	player *audio.Player
	scale  float64
	closed bool
}

func (t *playerTrack) SetVolume(v float64) {
	t.player.SetVolume(clampVolume(v * t.scale))
}

func (t *playerTrack) Rewind() error {
	if t.closed {
		return errTrackClosed
	}
	return t.player.Rewind()
}

func (t *playerTrack) Play() error {
	if t.closed {
		return errTrackClosed
	}
	t.player.Play()
	return nil
}

func (t *playerTrack) Pause() {
	t.player.Pause()
}

// Close 停止播放并放弃播放器，之后的 Play 返回错误
func (t *playerTrack) Close() error {
	if t.closed {
		return nil
	}
	t.player.Pause()
	t.closed = true
	return nil
}

var errTrackClosed = errors.New("game: audio track closed")

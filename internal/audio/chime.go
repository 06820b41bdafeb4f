// Package audio 提供内置的合成音效
package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// 琶音音符（Hz）：C6 E6 G6 C7
var chimeNotes = []float64{1046.50, 1318.51, 1567.98, 2093.00}

const (
	chimeNoteSeconds = 0.09 // 相邻音符的起始间隔
	chimeTailSeconds = 0.6  // 最后一个音符的余音
	chimeDecay       = 7.0  // 指数衰减系数
	chimeAmplitude   = 0.35
)

// ChimeStream 合成的奖励提示音
//
// 16 位有符号小端立体声 PCM，可直接交给 ebiten audio.Context 播放。
// 找不到配置的音效文件时作为替代。
type ChimeStream struct {
	r      *bytes.Reader
	length int64
}

// NewChime 按采样率生成提示音，相同采样率的输出逐字节一致
func NewChime(sampleRate int) *ChimeStream {
	data := synthesizeChime(sampleRate)
	return &ChimeStream{
		r:      bytes.NewReader(data),
		length: int64(len(data)),
	}
}

func (c *ChimeStream) Read(p []byte) (int, error) { return c.r.Read(p) }

func (c *ChimeStream) Seek(offset int64, whence int) (int64, error) {
	return c.r.Seek(offset, whence)
}

// Length 返回 PCM 字节数
func (c *ChimeStream) Length() int64 { return c.length }

var _ io.ReadSeeker = (*ChimeStream)(nil)

func synthesizeChime(sampleRate int) []byte {
	if sampleRate <= 0 {
		return nil
	}
	total := chimeNoteSeconds*float64(len(chimeNotes)-1) + chimeTailSeconds
	frames := int(total * float64(sampleRate))
	buf := make([]byte, frames*4)

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		var v float64
		for n, freq := range chimeNotes {
			start := float64(n) * chimeNoteSeconds
			if t < start {
				break
			}
			local := t - start
			env := math.Exp(-chimeDecay * local)
			// 基频加一个八度泛音，听起来更像铃声
			v += env * (math.Sin(2*math.Pi*freq*local) + 0.3*math.Sin(4*math.Pi*freq*local))
		}
		v *= chimeAmplitude / float64(len(chimeNotes))
		// 尾部 10ms 线性淡出，避免爆音
		if remain := total - t; remain < 0.01 {
			v *= remain / 0.01
		}
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}

package audio

import (
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// bufferSize trades latency for underrun safety on ebiten's mixer.
const bufferSize = 40 * time.Millisecond

var (
	ebitenOnce sync.Once
	ebitenCtx  *ebitaudio.Context
	ebitenRate int
)

func ebitenContext(sampleRate int) (*ebitaudio.Context, error) {
	ebitenOnce.Do(func() {
		ebitenRate = sampleRate
		ebitenCtx = ebitaudio.NewContext(sampleRate)
	})
	if err := checkRate(ebitenRate, sampleRate); err != nil {
		return nil, err
	}
	return ebitenCtx, nil
}

// EbitenPlayer plays through ebiten's shared audio context, so it can run
// next to an ebiten window.
type EbitenPlayer struct {
	player *ebitaudio.Player
	reader *StreamReader
}

func NewEbitenPlayer(sampleRate int, source SampleSource) (*EbitenPlayer, error) {
	ctx, err := ebitenContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	pl.SetBufferSize(bufferSize)
	return &EbitenPlayer{player: pl, reader: reader}, nil
}

func (p *EbitenPlayer) Play()           { p.player.Play() }
func (p *EbitenPlayer) Pause()          { p.player.Pause() }
func (p *EbitenPlayer) IsPlaying() bool { return p.player.IsPlaying() }

// Position is how much the listener has heard, behind the frames read by
// the mixer's buffer.
func (p *EbitenPlayer) Position() time.Duration { return p.player.Position() }

func (p *EbitenPlayer) Stop() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}

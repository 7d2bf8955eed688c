// Package audio plays synthesized sound effects for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Board maps game events to sounds on one mixer. The zero value and a nil
// *Board are silent; Init attaches the mixer to the speaker.
type Board struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewBoard creates a board at the given master volume (0..1).
func NewBoard(volume float64) *Board {
	return &Board{
		mixer:  &beep.Mixer{},
		volume: core.ClampF(volume, 0, 1),
	}
}

// Init opens the audio device.
func (b *Board) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close silences the board.
func (b *Board) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}

// Play queues one sound per event. A crash that sets a new best plays the
// fanfare instead of the crash.
func (b *Board) Play(ev core.Events) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	sounds := Sounds(ev, b.volume)
	if len(sounds) == 0 {
		return
	}
	speaker.Lock()
	for _, s := range sounds {
		b.mixer.Add(s)
	}
	speaker.Unlock()
}

// Sounds returns the streamers for ev.
func Sounds(ev core.Events, volume float64) []beep.Streamer {
	var out []beep.Streamer
	if ev.Has(core.EventFlap) {
		out = append(out, FlapSound(sampleRate, volume))
	}
	if ev.Has(core.EventScore) {
		out = append(out, ScoreSound(sampleRate, volume))
	}
	switch {
	case ev.Has(core.EventNewBest):
		out = append(out, NewBestSound(sampleRate, volume))
	case ev.Has(core.EventCrash):
		out = append(out, CrashSound(sampleRate, volume))
	}
	return out
}

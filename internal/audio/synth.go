package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator produces a tone whose frequency slides linearly from start to
// end over its duration.
type oscillator struct {
	start, end float64
	phase      float64
	position   int
	duration   int
	wave       Wave
	rate       beep.SampleRate
}

// NewTone creates a fixed-frequency oscillator.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end Hz.
func NewSweep(start, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		start:    start,
		end:      end,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1 //nolint:gosec // audio noise
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.start + (o.end-o.start)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream linearly to silence over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: max(1, rate.N(d))}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.position)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly; 0 or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	flapDuration  = 90 * time.Millisecond
	scoreNote     = 70 * time.Millisecond
	crashDuration = 350 * time.Millisecond
)

// FlapSound is a short rising chirp.
func FlapSound(rate beep.SampleRate, vol float64) beep.Streamer {
	chirp := NewSweep(400, 900, flapDuration, WaveSquare, rate)
	return newVolume(newDecay(chirp, flapDuration, rate), vol*0.4)
}

// ScoreSound is a two-note ding.
func ScoreSound(rate beep.SampleRate, vol float64) beep.Streamer {
	ding := beep.Seq(
		NewTone(988, scoreNote, WaveSine, rate),
		newDecay(NewTone(1319, 2*scoreNote, WaveSine, rate), 2*scoreNote, rate),
	)
	return newVolume(ding, vol*0.6)
}

// CrashSound is a falling noisy thud.
func CrashSound(rate beep.SampleRate, vol float64) beep.Streamer {
	thud := beep.Mix(
		newVolume(NewTone(0, crashDuration, WaveNoise, rate), 0.5),
		NewSweep(220, 55, crashDuration, WaveSquare, rate),
	)
	return newVolume(newDecay(thud, crashDuration, rate), vol*0.5)
}

// NewBestSound is a short rising arpeggio.
func NewBestSound(rate beep.SampleRate, vol float64) beep.Streamer {
	notes := []float64{523, 659, 784, 1047}
	parts := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		parts[i] = newDecay(NewTone(f, scoreNote, WaveSine, rate), scoreNote, rate)
	}
	return newVolume(beep.Seq(parts...), vol*0.6)
}

package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave, optionally sliding linearly to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a constant-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq over duration
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.endFreq != o.freq && o.duration > 0 {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or negative volume is silent
// effects.Volume works in log2 space, so Log2(0) must not reach it
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue durations
const (
	knockDuration  = 180 * time.Millisecond
	knockAttack    = 5 * time.Millisecond
	knockRelease   = 120 * time.Millisecond
	rescueNote     = 90 * time.Millisecond
	rescueAttack   = 5 * time.Millisecond
	rescueRelease  = 60 * time.Millisecond
	warpDuration   = 260 * time.Millisecond
	warpAttack     = 40 * time.Millisecond
	warpRelease    = 150 * time.Millisecond
	warpNoiseLevel = 0.25
)

// createKnock is a falling saw thud
func createKnock(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(180, 70, knockDuration, WaveSaw, rate)
	return NewEnvelope(osc, knockDuration, knockAttack, knockRelease, rate)
}

// createRescue is a rising two-note chime (E5, A5)
func createRescue(rate beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, 2)
	for _, freq := range []float64{659.25, 880.0} {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, NewEnvelope(beep.Take(rate.N(rescueNote), tone), rescueNote, rescueAttack, rescueRelease, rate))
	}
	return beep.Seq(notes...), nil
}

// createWarp is an upward sine sweep over a noise bed
func createWarp(rate beep.SampleRate) beep.Streamer {
	sweep := NewEnvelope(NewSweep(220, 1320, warpDuration, WaveSine, rate), warpDuration, warpAttack, warpRelease, rate)
	noise := NewEnvelope(NewOscillator(0, warpDuration, WaveNoise, rate), warpDuration, warpAttack, warpRelease, rate)
	return beep.Mix(sweep, newVolume(noise, warpNoiseLevel))
}

// CueStreamer builds the streamer for a cue at the configured volume
func CueStreamer(c Cue, cfg *Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch c {
	case CueKnock:
		s = createKnock(rate)
	case CueRescue:
		var err error
		if s, err = createRescue(rate); err != nil {
			return nil, err
		}
	case CueWarp:
		s = createWarp(rate)
	default:
		return nil, ErrUnknownCue
	}
	return newVolume(s, cfg.CueVolumes[c]*cfg.MasterVolume), nil
}

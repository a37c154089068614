package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// CuePlayer mixes cues into the system speaker
// Falls back to silent mode when the speaker cannot be opened
type CuePlayer struct {
	config *Config
	mixer  *beep.Mixer

	mu          sync.Mutex
	initialized bool

	silent atomic.Bool
	muted  atomic.Bool
	played atomic.Int64
}

// NewCuePlayer creates a player; nothing is opened until Start
func NewCuePlayer(cfg *Config) *CuePlayer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &CuePlayer{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
	p.muted.Store(!cfg.Enabled)
	return p
}

// Start opens the speaker; failure switches to silent mode and is returned for logging
func (p *CuePlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	p.initialized = true

	if !p.config.Enabled {
		p.silent.Store(true)
		return nil
	}

	rate := beep.SampleRate(p.config.SampleRate)
	if err := speaker.Init(rate, rate.N(p.config.BufferSize)); err != nil {
		p.silent.Store(true)
		return err
	}
	speaker.Play(p.mixer)
	return nil
}

// Stop silences the mixer; the speaker stays open for the process lifetime
func (p *CuePlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if !p.silent.Load() {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	p.initialized = false
}

// Play queues a cue; returns false when muted, silent or the cue is unknown
func (p *CuePlayer) Play(c Cue) bool {
	if p.muted.Load() || p.silent.Load() {
		return false
	}
	s, err := CueStreamer(c, p.config)
	if err != nil {
		return false
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played.Add(1)
	return true
}

// ToggleMute flips mute and returns the new state
func (p *CuePlayer) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (p *CuePlayer) IsSilent() bool { return p.silent.Load() }
func (p *CuePlayer) Played() int64  { return p.played.Load() }

package audio

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled    = "WARPZONE_AUDIO_ENABLED"
	EnvVolume     = "WARPZONE_MASTER_VOLUME" // 0-100
	EnvCueVolumes = "WARPZONE_CUE_VOLUMES"   // JSON object keyed by cue name
	EnvSampleRate = "WARPZONE_SAMPLE_RATE"
)

// Config controls cue playback
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	CueVolumes   [cueCount]float64
	SampleRate   int
	BufferSize   time.Duration // speaker buffer length
}

// DefaultConfig returns audio enabled at moderate volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		CueVolumes: [cueCount]float64{
			CueKnock:  0.8,
			CueRescue: 0.6,
			CueWarp:   0.5,
		},
		SampleRate: 44100,
		BufferSize: 100 * time.Millisecond,
	}
}

// LoadConfig overlays environment variables on the defaults
// Unparseable values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv(EnvEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv(EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if cueVols := os.Getenv(EnvCueVolumes); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

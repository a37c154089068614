package audio

import "testing"

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvEnabled, "false")
	t.Setenv(EnvVolume, "150")
	t.Setenv(EnvCueVolumes, `{"knock":0.2,"warp":0.9,"bogus":1}`)
	t.Setenv(EnvSampleRate, "22050")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", cfg.MasterVolume)
	}
	if cfg.CueVolumes[CueKnock] != 0.2 || cfg.CueVolumes[CueWarp] != 0.9 {
		t.Errorf("Expected knock 0.2 warp 0.9, got %v", cfg.CueVolumes)
	}
	if cfg.CueVolumes[CueRescue] != DefaultConfig().CueVolumes[CueRescue] {
		t.Errorf("Expected rescue volume untouched, got %v", cfg.CueVolumes[CueRescue])
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("Expected sample rate 22050, got %d", cfg.SampleRate)
	}
}

func TestLoadConfigIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvEnabled, "maybe")
	t.Setenv(EnvVolume, "loud")
	t.Setenv(EnvCueVolumes, `{`)
	t.Setenv(EnvSampleRate, "-5")

	cfg := LoadConfig()
	def := DefaultConfig()
	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume || cfg.SampleRate != def.SampleRate {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

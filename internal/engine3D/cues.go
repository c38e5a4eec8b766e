package engine3D

import (
	"os"

	"portfolio3d/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Cue int

const (
	CueActivate Cue = iota
	CueDeactivate
)

// CuePlayer plays the short vision on/off sounds. Missing files simply
// leave that cue silent.
type CuePlayer struct {
	sounds map[Cue]rl.Sound
	volume float32
}

func NewCuePlayer(paths map[Cue]string, volume float32) *CuePlayer {
	cp := &CuePlayer{sounds: make(map[Cue]rl.Sound), volume: volume}
	if utils.SilentMode {
		return cp
	}
	if !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	for cue, rel := range paths {
		path := utils.ResolveAssetPath(rel)
		if _, err := os.Stat(path); err != nil {
			utils.Debug("Cue %d: %s not found", cue, path)
			continue
		}
		s := rl.LoadSound(path)
		rl.SetSoundVolume(s, volume)
		cp.sounds[cue] = s
		utils.Info("Raylib: Loaded cue %s (Vol: %.2f)", path, volume)
	}
	return cp
}

func (cp *CuePlayer) Play(c Cue) {
	if utils.SilentMode {
		return
	}
	if s, ok := cp.sounds[c]; ok {
		rl.PlaySound(s)
	}
}

func (cp *CuePlayer) Close() {
	for c, s := range cp.sounds {
		rl.StopSound(s)
		rl.UnloadSound(s)
		delete(cp.sounds, c)
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}

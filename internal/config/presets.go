package config

import (
	"fmt"
	"strings"
)

// PhysicsPreset is a named adjustment applied on top of a scene's physics.
type PhysicsPreset string

const (
	PresetFloaty PhysicsPreset = "floaty"
	PresetNormal PhysicsPreset = "normal"
	PresetHeavy  PhysicsPreset = "heavy"
)

// Presets lists the known presets.
func Presets() []PhysicsPreset {
	return []PhysicsPreset{PresetFloaty, PresetNormal, PresetHeavy}
}

// ParsePreset resolves a preset name. An empty name means normal.
func ParsePreset(name string) (PhysicsPreset, error) {
	switch p := PhysicsPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return PresetNormal, nil
	case PresetFloaty, PresetNormal, PresetHeavy:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want floaty, normal or heavy)", name)
	}
}

// ApplyPreset scales the scene physics for a preset. Jump strength scales
// with the square root of the gravity factor, so jump height is unchanged.
func ApplyPreset(cfg *SceneConfig, preset PhysicsPreset) {
	p := &cfg.Physics
	switch preset {
	case PresetFloaty:
		p.Gravity *= 0.64
		p.JumpStrength *= 0.8
		p.MaxFallSpeed *= 0.7
		p.Friction = max(p.Friction, 0.9)
	case PresetHeavy:
		p.Gravity *= 1.44
		p.JumpStrength *= 1.2
		p.MaxFallSpeed *= 1.25
		p.Friction = 0
	}
}

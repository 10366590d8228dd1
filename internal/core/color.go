package core

// Color is a semantic foreground color for a screen cell. Games pick the
// role; the platform layer decides the actual terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall
	ColorWallEdge
	ColorPlayer
	ColorPlayerGrounded
	ColorCoin
	ColorGoal
	ColorRay
	ColorRayHit
	ColorContact
	ColorHUD
	ColorDim
	ColorWarning
	ColorSuccess
)

// String returns the role name of the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorWall:
		return "wall"
	case ColorWallEdge:
		return "wall-edge"
	case ColorPlayer:
		return "player"
	case ColorPlayerGrounded:
		return "player-grounded"
	case ColorCoin:
		return "coin"
	case ColorGoal:
		return "goal"
	case ColorRay:
		return "ray"
	case ColorRayHit:
		return "ray-hit"
	case ColorContact:
		return "contact"
	case ColorHUD:
		return "hud"
	case ColorDim:
		return "dim"
	case ColorWarning:
		return "warning"
	case ColorSuccess:
		return "success"
	default:
		return "unknown"
	}
}

package platformer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/aabb-lab/internal/core"
)

// Visual characters
const (
	WallChar    = '█'
	PlayerChar  = '▓'
	CoinChar    = 'o'
	RayChar     = '·'
	RayHitChar  = '×'
	ContactChar = '+'
	hudRows     = 1
)

// Render draws the scene, the player and the HUD. With debug on it also
// draws sensing rays, their hits and the player's contacts.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.scene == nil {
		dst.DrawTextCentered(dst.Height()/2, "no scene loaded", core.ColorWarning)
		return
	}

	cam := core.NewCamera(dst.Width(), dst.Height()-hudRows)
	pos, _ := g.scene.World.Position(g.scene.Player)
	cam.Follow(pos, g.scene.Size().X(), g.scene.Size().Y())
	cam.Origin = cam.Origin.Sub(mgl64.Vec2{0, hudRows})

	for _, t := range g.scene.Tiles {
		box, ok := g.scene.World.StaticBox(t.ID)
		if !ok {
			continue
		}
		dst.FillRect(cam.CellRect(box.Min(), box.Max()), WallChar, core.ColorWall)
	}

	for _, c := range g.scene.Coins {
		if c.Collected {
			continue
		}
		x, y := cam.ToCell(c.Box.Position())
		dst.SetColored(x, y, CoinChar, core.ColorCoin)
	}

	box := g.scene.PlayerBox()
	color := core.ColorPlayer
	if g.grounded {
		color = core.ColorPlayerGrounded
	}
	dst.FillRect(cam.CellRect(box.Min(), box.Max()), PlayerChar, color)

	if g.debug {
		g.renderDebug(dst, cam)
	}
	g.renderHUD(dst)

	switch {
	case g.paused:
		drawMessage(dst, "PAUSED", "Press P to resume", core.ColorHUD)
	case g.won:
		drawMessage(dst, "ALL COINS COLLECTED", fmt.Sprintf("Score: %d  |  Press R to restart", g.score), core.ColorSuccess)
	case g.gameOver:
		drawMessage(dst, "FELL OUT OF THE WORLD", fmt.Sprintf("Score: %d  |  Press R to restart", g.score), core.ColorWarning)
	}
}

func (g *Game) renderDebug(dst *core.Screen, cam core.Camera) {
	world := g.scene.World
	for _, r := range g.scene.Rays {
		origin, ok := world.RayOrigin(r.ID)
		if !ok {
			continue
		}
		ray, _ := world.Ray(r.ID)
		x0, y0 := cam.ToCell(origin)
		x1, y1 := cam.ToCell(origin.Add(ray.Direction))
		dst.DrawLine(x0, y0, x1, y1, RayChar, core.ColorRay)

		for _, hit := range world.RayHits(r.ID) {
			hx, hy := cam.ToCell(origin.Add(ray.Direction.Mul(hit.Hit.Time)))
			dst.SetColored(hx, hy, RayHitChar, core.ColorRayHit)
		}
	}

	box := g.scene.PlayerBox()
	for _, c := range g.contacts {
		// The touched face lies opposite the contact normal.
		face := box.Position().Sub(mulVec(c.Normal, box.Extents()))
		x, y := cam.ToCell(face)
		dst.SetColored(x, y, ContactChar, core.ColorContact)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" %s  Coins: %d/%d  Score: %d  Tick: %d ", g.title, st.Coins, st.CoinsTotal, st.Score, st.Tick)
	if st.Grounded {
		hud += " [ground] "
	}
	if g.debug {
		hud += fmt.Sprintf(" contacts:%d rays:%d ", g.stats.Contacts, g.stats.RayHits)
	}
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
}

func drawMessage(dst *core.Screen, title, subtitle string, color core.Color) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, color)
	dst.DrawTextColored(r.X+(boxW-len([]rune(title)))/2, r.Y+1, title, color)
	dst.DrawTextColored(r.X+(boxW-len([]rune(subtitle)))/2, r.Y+3, subtitle, core.ColorDefault)
}

func mulVec(a, b mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{a[0] * b[0], a[1] * b[1]}
}

// internal/render/renderer.go
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/LupusDei/space-towers-sub001/internal/engine"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
)

var towerColors = map[string]color.RGBA{
	"TOWER_GUN":    colornames.Steelblue,
	"TOWER_CANNON": colornames.Darkorange,
	"TOWER_FROST":  colornames.Lightskyblue,
	"TOWER_STORM":  colornames.Mediumpurple,
}

var (
	spawnColor = colornames.Seagreen
	exitColor  = colornames.Firebrick
	pathColor  = color.RGBA{R: 70, G: 70, B: 40, A: 255}
	gridLine   = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	enemyColor = colornames.Crimson
	slowTint   = colornames.Deepskyblue
	shotColor  = colornames.Gold
	stormColor = color.RGBA{R: 120, G: 80, B: 220, A: 70}
)

// Renderer draws engine snapshots. It keeps no simulation state of its own:
// each frame it refetches the snapshot, which is free while the version is
// unchanged.
type Renderer struct {
	cellSize float64
	fontFace font.Face
}

func NewRenderer(cellSize float64) *Renderer {
	return &Renderer{
		cellSize: cellSize,
		fontFace: basicfont.Face7x13,
	}
}

// Draw renders one frame from the snapshot.
func (r *Renderer) Draw(screen *ebiten.Image, snap *engine.Snapshot, world [][]grid.CellState, selected grid.Coord) {
	r.drawGrid(screen, world)
	r.drawPath(screen, snap.Path)
	r.drawStorms(screen, snap.Storms)
	r.drawTowers(screen, snap)
	r.drawEnemies(screen, snap.Enemies)
	r.drawProjectiles(screen, snap.Projectiles)
	r.drawCursor(screen, selected)
	r.drawHUD(screen, snap)
}

func (r *Renderer) cellRect(c grid.Coord) (float32, float32, float32) {
	size := float32(r.cellSize)
	return float32(c.X) * size, float32(c.Y) * size, size
}

func (r *Renderer) drawGrid(screen *ebiten.Image, world [][]grid.CellState) {
	for y, row := range world {
		for x, state := range row {
			cx, cy, size := r.cellRect(grid.Coord{X: x, Y: y})
			switch state {
			case grid.Spawn:
				vector.DrawFilledRect(screen, cx, cy, size, size, spawnColor, false)
			case grid.Exit:
				vector.DrawFilledRect(screen, cx, cy, size, size, exitColor, false)
			}
			vector.StrokeRect(screen, cx, cy, size, size, 1, gridLine, false)
		}
	}
}

func (r *Renderer) drawPath(screen *ebiten.Image, path []grid.Coord) {
	for _, c := range path {
		cx, cy, size := r.cellRect(c)
		vector.DrawFilledRect(screen, cx+size/4, cy+size/4, size/2, size/2, pathColor, false)
	}
}

func (r *Renderer) drawTowers(screen *ebiten.Image, snap *engine.Snapshot) {
	for _, tw := range snap.Towers {
		cx, cy, size := r.cellRect(tw.Cell)
		col, ok := towerColors[tw.DefID]
		if !ok {
			col = colornames.Gray
		}
		vector.DrawFilledRect(screen, cx+2, cy+2, size-4, size-4, col, false)

		if tw.ID == snap.State.SelectedTower {
			vector.StrokeRect(screen, cx, cy, size, size, 2, colornames.White, false)
			centerX := float64(cx) + r.cellSize/2
			centerY := float64(cy) + r.cellSize/2
			vector.StrokeCircle(screen, float32(centerX), float32(centerY), float32(tw.Range), 1, colornames.White, true)
		}
		// Level pips along the top edge.
		for i := 0; i < tw.Level; i++ {
			vector.DrawFilledRect(screen, cx+4+float32(i)*6, cy+4, 4, 4, colornames.White, false)
		}
	}
}

func (r *Renderer) drawEnemies(screen *ebiten.Image, enemies []engine.EnemyView) {
	radius := float32(r.cellSize) / 3
	for _, en := range enemies {
		col := enemyColor
		if en.Slowed {
			col = slowTint
		}
		vector.DrawFilledCircle(screen, float32(en.X), float32(en.Y), radius, col, true)

		// Health bar above the body.
		frac := float32(en.Health) / float32(en.MaxHealth)
		barW := radius * 2
		barX := float32(en.X) - radius
		barY := float32(en.Y) - radius - 6
		vector.DrawFilledRect(screen, barX, barY, barW, 3, colornames.Darkred, false)
		vector.DrawFilledRect(screen, barX, barY, barW*frac, 3, colornames.Lawngreen, false)
	}
}

func (r *Renderer) drawProjectiles(screen *ebiten.Image, shots []engine.ProjectileView) {
	for _, p := range shots {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 3, shotColor, true)
	}
}

func (r *Renderer) drawStorms(screen *ebiten.Image, storms []engine.StormView) {
	for _, s := range storms {
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), stormColor, true)
	}
}

func (r *Renderer) drawCursor(screen *ebiten.Image, c grid.Coord) {
	if c.X < 0 || c.Y < 0 {
		return
	}
	cx, cy, size := r.cellRect(c)
	vector.StrokeRect(screen, cx, cy, size, size, 2, colornames.Yellow, false)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap *engine.Snapshot) {
	st := snap.State
	line := fmt.Sprintf("%s  wave %d  lives %d  credits %d  score %d  rp %d  x%.0f",
		st.Phase, st.Wave, st.Lives, st.Credits, st.Score, st.ResearchPoints, st.SpeedMultiplier)
	text.Draw(screen, line, r.fontFace, 8, screen.Bounds().Dy()-10, colornames.White)
}

// cmd/game/main.go
package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/LupusDei/space-towers-sub001/internal/config"
	"github.com/LupusDei/space-towers-sub001/internal/defs"
	"github.com/LupusDei/space-towers-sub001/internal/engine"
	"github.com/LupusDei/space-towers-sub001/internal/render"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/logger"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

const hudHeight = 24

// hotkey order for the build palette, keys 1..4
var buildPalette = []string{"TOWER_GUN", "TOWER_CANNON", "TOWER_FROST", "TOWER_STORM"}

type AppGame struct {
	eng      *engine.Engine
	renderer *render.Renderer
	watcher  *defs.Watcher
	cellSize float64

	gridW   int
	gridH   int
	screenW int
	screenH int

	buildDef string
}

func (a *AppGame) Update() error {
	a.handleInput()
	a.pollReload()
	a.eng.Frame()
	return nil
}

func (a *AppGame) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if !a.eng.StartGame() {
			a.eng.StartWave()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.eng.StartWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if a.eng.Phase() == engine.PhasePaused {
			a.eng.Resume()
		} else {
			a.eng.Pause()
		}
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if inpututil.IsKeyJustPressed(key) {
			a.buildDef = buildPalette[i]
		}
	}
	for _, sp := range []struct {
		key  ebiten.Key
		mult float64
	}{{ebiten.KeyF1, 1}, {ebiten.KeyF2, 2}, {ebiten.KeyF3, 4}} {
		if inpututil.IsKeyJustPressed(sp.key) {
			a.eng.SetSpeedMultiplier(sp.mult)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		a.eng.UpgradeTower(a.eng.SelectedTower())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.eng.SellTower(a.eng.SelectedTower())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.eng.ClearSelection()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cell := a.cursorCell()
		if h, ok := a.eng.TowerAt(cell); ok {
			a.eng.SelectTower(h)
		} else if a.eng.PlaceTower(a.buildDef, cell) == slotmap.Nil {
			a.eng.ClearSelection()
		}
	}
}

// pollReload drains the hot-reload channel; the engine defers mid-combat
// swaps to the end of the wave on its own.
func (a *AppGame) pollReload() {
	if a.watcher == nil {
		return
	}
	select {
	case lib, ok := <-a.watcher.Libraries:
		if ok {
			a.eng.SwapLibrary(lib)
		}
	default:
	}
}

func (a *AppGame) cursorCell() grid.Coord {
	x, y := ebiten.CursorPosition()
	return grid.Coord{X: int(float64(x) / a.cellSize), Y: int(float64(y) / a.cellSize)}
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	snap := a.eng.Snapshot()
	world := make([][]grid.CellState, a.gridH)
	for y := range world {
		world[y] = make([]grid.CellState, a.gridW)
		for x := range world[y] {
			world[y][x] = a.eng.CellAt(grid.Coord{X: x, Y: y})
		}
	}
	a.renderer.Draw(screen, snap, world, a.cursorCell())
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenW, a.screenH + hudHeight
}

func main() {
	configPath := flag.String("config", "", "path to a settings YAML file")
	defsDir := flag.String("defs", "", "directory with definition JSON files")
	seed := flag.Int64("seed", 0, "PRNG seed, 0 for time-seeded")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load settings")
	}
	lib, err := defs.LoadDir(*defsDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load definitions")
	}

	eng := engine.NewEngine(cfg, lib, nil, nil, *seed)
	eng.StartGame()

	app := &AppGame{
		eng:      eng,
		renderer: render.NewRenderer(cfg.Grid.CellSize),
		cellSize: cfg.Grid.CellSize,
		gridW:    cfg.Grid.Width,
		gridH:    cfg.Grid.Height,
		screenW:  cfg.Grid.Width * int(cfg.Grid.CellSize),
		screenH:  cfg.Grid.Height * int(cfg.Grid.CellSize),
		buildDef: buildPalette[0],
	}

	if *defsDir != "" {
		w, err := defs.Watch(*defsDir)
		if err != nil {
			logger.Log.WithError(err).Warn("definition hot reload unavailable")
		} else {
			app.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(app.screenW, app.screenH+hudHeight)
	ebiten.SetWindowTitle("Space Towers")
	if err := ebiten.RunGame(app); err != nil {
		logger.Log.WithError(err).Fatal("game loop exited")
	}
}

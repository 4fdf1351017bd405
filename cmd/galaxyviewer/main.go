package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/omc-galaxy/galaxy_viewer/internal/config"
	"github.com/omc-galaxy/galaxy_viewer/internal/galaxy"
	"github.com/omc-galaxy/galaxy_viewer/internal/galaxysim"
	"github.com/omc-galaxy/galaxy_viewer/internal/game"
	"github.com/omc-galaxy/galaxy_viewer/internal/logging"
	"github.com/omc-galaxy/galaxy_viewer/internal/orchestrator"
	"github.com/omc-galaxy/galaxy_viewer/internal/render"
	"github.com/omc-galaxy/galaxy_viewer/internal/sprites"
	"github.com/omc-galaxy/galaxy_viewer/internal/ui"
)

const title = "Galaxy Viewer"

// Game is the Ebitengine game struct. It samples input and draws; all state
// lives in the session.
type Game struct {
	session  *game.Session
	renderer *render.Renderer
	closed   bool
}

func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.session.Shutdown()
		g.closed = true
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.session.Panel.Queue().Push(ui.ActionReset)
	}

	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	g.session.Frame(game.Input{
		X:           float64(mx),
		Y:           float64(my),
		Down:        ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Wheel:       wy,
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.ScreenWidth, game.ScreenHeight
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup failed", "err", err)
		return 1
	}

	messages := game.NewMessageLog(game.DefaultLogCapacity)
	logger := logging.Setup(cfg.Logging.Level, os.Stderr, messages)

	facade := orchestrator.NewFacade(func() orchestrator.Orchestrator {
		return galaxysim.New(galaxysim.Options{Step: cfg.Sim.Step, Seed: cfg.Sim.Seed, Logger: logger})
	}, orchestrator.Options{Async: cfg.Orchestrator.Async, Budget: cfg.Orchestrator.Budget, Logger: logger})
	defer facade.Close()

	if err := facade.Initialize(cfg.Galaxy.InputFile); err != nil {
		logger.Error("galaxy initialization failed", "err", err)
		return 1
	}

	session := game.NewSession(facade, game.SessionOptions{
		Period: cfg.Game.TickPeriod,
		Log:    messages,
		Logger: logger,
	})
	session.Start()

	g := &Game{
		session:  session,
		renderer: render.NewRenderer(sprites.Load(cfg.Galaxy.AssetDir, galaxy.AssetNames(), logger), logger),
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowDecorated(false)
	if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
		ebiten.SetMonitor(monitors[0])
	}
	ebiten.SetFullscreen(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "err", err)
		return 1
	}
	return 0
}

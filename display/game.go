// Package display presents a pixelcafe render loop in an Ebitengine window.
// It owns the window, integer upscaling, the overlay cursor and debug
// overlays, and feeds raw mouse and keyboard input to the core router.
package display

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/pixelcafe"
)

// Game implements ebiten.Game and pixelcafe.Presenter.
type Game struct {
	cfg    pixelcafe.Config
	loop   *pixelcafe.RenderLoop
	mapper pixelcafe.CoordinateMapper
	log    *slog.Logger

	canvas  *ebiten.Image
	leaf    *ebiten.Image
	leafSc  float64
	fps     *fpsWidget
	missing []pixelcafe.MissingAsset

	lastCursor image.Point
	last       time.Time
}

// New builds the render loop for scenes with the game as its presenter.
// Extra loop options are passed through.
func New(cfg pixelcafe.Config, scenes pixelcafe.Scenes, logger *slog.Logger, opts ...pixelcafe.LoopOption) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		cfg:        cfg,
		log:        logger.With("component", "display"),
		fps:        newFPSWidget(),
		lastCursor: image.Pt(-1, -1),
	}
	opts = append([]pixelcafe.LoopOption{pixelcafe.WithLogger(logger), pixelcafe.WithPresenter(g)}, opts...)
	g.loop = pixelcafe.NewRenderLoop(cfg, scenes, opts...)
	g.mapper = g.loop.Mapper()
	w, h := g.mapper.LogicalSize()
	g.canvas = ebiten.NewImage(w, h)
	g.missing = g.loop.Compositor().MissingAssets()

	if cfg.Cursor.Mode == pixelcafe.CursorLeaf {
		g.loadLeaf(cfg.Assets.Leaf)
	}
	return g
}

func (g *Game) loadLeaf(path string) {
	seq := pixelcafe.NewSequenceLoader(false, g.log).Load(path)
	frame := seq.FrameAt(0)
	if frame == nil {
		g.log.Info("leaf cursor missing, using crosshair", "path", path)
		return
	}
	g.leaf = ebiten.NewImageFromImage(frame)
	b := frame.Bounds()
	g.leafSc = cursorScale(b.Dx(), b.Dy(), g.cfg.Cursor.AutoMax)
}

// Loop returns the underlying render loop.
func (g *Game) Loop() *pixelcafe.RenderLoop { return g.loop }

// Present uploads the logical frame to the canvas texture.
func (g *Game) Present(frame *image.RGBA) error {
	if frame.Rect.Dx() != g.canvas.Bounds().Dx() || frame.Rect.Dy() != g.canvas.Bounds().Dy() {
		return fmt.Errorf("frame %v does not match canvas %v", frame.Rect, g.canvas.Bounds())
	}
	g.canvas.WritePixels(frame.Pix)
	return nil
}

// Update polls input and runs one core tick.
func (g *Game) Update() error {
	now := time.Now()
	if !g.last.IsZero() {
		g.fps.update(now.Sub(g.last))
	}
	g.last = now

	router := g.loop.Router()
	// Real input is ignored while scripted input drains.
	if router.Pending() == 0 {
		g.pollInput(router)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.loop.Screenshot("manual")
	}

	if _, err := g.loop.Tick(); err != nil {
		if errors.Is(err, pixelcafe.ErrScriptDone) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *Game) pollInput(router *pixelcafe.InputRouter) {
	x, y := ebiten.CursorPosition()
	if x != g.lastCursor.X || y != g.lastCursor.Y {
		g.lastCursor = image.Pt(x, y)
		router.Pointer(pixelcafe.PointerEvent{Kind: pixelcafe.PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		router.Pointer(pixelcafe.PointerEvent{Kind: pixelcafe.PointerPress, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		router.Pointer(pixelcafe.PointerEvent{Kind: pixelcafe.PointerRelease, X: x, Y: y})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		router.Key(pixelcafe.KeyEscape)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		router.Key(pixelcafe.KeyEnter)
	}
}

// Draw scales the canvas to the window and draws the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	scale := float64(g.mapper.Scale())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.canvas, op)

	router := g.loop.Router()
	state := g.loop.State()
	if g.cfg.Overlay.ShowHitboxes {
		for _, b := range router.LiveHotspots() {
			r := boxToDevice(g.mapper, b)
			vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 1, hitboxColor, false)
		}
	}
	if b, ok := router.HoveredBox(); ok {
		r := boxToDevice(g.mapper, b)
		vector.StrokeRect(screen, r.X, r.Y, r.W, r.H, 2, hoverColor, false)
	}
	g.drawHints(screen, state)
	if g.cfg.Overlay.ShowCoords {
		ebitenutil.DebugPrintAt(screen, coordText(router.Logical(), state), 4, 4)
	}
	if g.cfg.Overlay.ShowFPS {
		dw, _ := g.mapper.DisplaySize()
		g.fps.draw(screen, dw-104, 4)
	}
	g.drawCursor(screen)
}

func (g *Game) drawHints(screen *ebiten.Image, state pixelcafe.SceneState) {
	lines := hintLines(hintsFor(state, g.missing))
	if len(lines) == 0 {
		return
	}
	dw, dh := g.mapper.DisplaySize()
	top := dh - len(lines)*debugLineHeight - 8
	vector.DrawFilledRect(screen, 0, float32(top-4), float32(dw), float32(dh-top+4), hintShade, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 6, top+i*debugLineHeight)
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	if g.cfg.Cursor.Mode == pixelcafe.CursorSystem {
		return
	}
	d := g.loop.Router().Device()
	x, y := g.mapper.CursorAnchor(d.X, d.Y, g.cfg.Cursor)
	if g.leaf != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.leafSc, g.leafSc)
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(g.leaf, op)
		return
	}
	fx, fy := float32(x), float32(y)
	vector.StrokeLine(screen, fx-6, fy, fx+6, fy, 1, crosshairColor, false)
	vector.StrokeLine(screen, fx, fy-6, fx, fy+6, 1, crosshairColor, false)
}

// Layout returns the fixed display size; the window is not resizable.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.mapper.DisplaySize()
}

// Run opens the window and blocks until it is closed or an attached script
// finishes.
func (g *Game) Run() error {
	dw, dh := g.mapper.DisplaySize()
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(dw, dh)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(g.cfg.FPSLimit)
	if g.cfg.Cursor.Mode != pixelcafe.CursorSystem {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

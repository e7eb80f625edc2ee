// Package window is the ebiten diagnostic view of a generated room.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"roomforge/components"
	"roomforge/config"
	"roomforge/data"
	"roomforge/generation"
	"roomforge/geom"
	"roomforge/logging"
	"roomforge/overlay"
	"roomforge/spawners"
)

var (
	backgroundColor  = color.RGBA{16, 16, 24, 255}
	boundsColor      = color.RGBA{200, 200, 200, 255}
	reservationColor = color.RGBA{80, 160, 80, 160}
	safeZoneColor    = color.RGBA{60, 120, 200, 160}
)

// Viewer implements ebiten.Game for browsing generated rooms
type Viewer struct {
	ctrl     overlay.Controller
	prefabs  *data.PrefabLibrary
	settings config.Settings
	log      *logging.MessageLog
	err      error
}

// NewViewer creates a viewer. settings supplies the safe radii drawn
// around spawn and exit.
func NewViewer(ctrl overlay.Controller, prefabs *data.PrefabLibrary, settings config.Settings, log *logging.MessageLog) *Viewer {
	v := &Viewer{
		ctrl:     ctrl,
		prefabs:  prefabs,
		settings: settings,
		log:      log,
	}
	v.message("R: regenerate  N: next room  F: fullscreen  Esc: quit")
	return v
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	width, height := config.GetWindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Room Layout Viewer")
	return ebiten.RunGame(v)
}

// Update handles input
func (v *Viewer) Update() error {
	if v.err != nil {
		return v.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.err = v.ctrl.Regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		v.err = v.ctrl.Next()
	}
	return v.err
}

// Draw renders the current snapshot
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := v.ctrl.Snapshot()
	if snap == nil {
		ebitenutil.DebugPrint(screen, "no room generated yet")
		return
	}

	legendWidth := 240
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	proj := overlay.Fit(snap.Bounds, w-legendWidth, h, config.OverlayMargin, 1)

	minX, maxY := proj.Project(snap.Bounds.Min())
	maxX, minY := proj.Project(snap.Bounds.Max())
	vector.StrokeRect(screen, float32(minX), float32(minY), float32(maxX-minX), float32(maxY-minY), 1, boundsColor, false)

	v.drawCircle(screen, proj, snap.Spawn, v.settings.SpawnSafeRadius, safeZoneColor)
	v.drawCircle(screen, proj, snap.Exit, v.settings.ExitSafeRadius, safeZoneColor)
	for _, r := range snap.Reservations {
		v.drawCircle(screen, proj, r.Position, r.Radius, reservationColor)
	}

	for _, obj := range overlay.DrawOrder(snap) {
		v.drawObject(screen, proj, obj)
	}

	v.drawLegend(screen, snap, w-legendWidth+8)
}

func (v *Viewer) drawCircle(screen *ebiten.Image, proj overlay.Projection, center geom.Vec2, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	x, y := proj.Project(center)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(radius*proj.ScaleX), 1, clr, true)
}

func (v *Viewer) drawObject(screen *ebiten.Image, proj overlay.Projection, obj generation.SpawnedObject) {
	clr := overlay.ObjectColor(obj, v.prefabs)
	x, y := proj.Project(obj.Position)

	half := geom.V(0.25, 0.25)
	if v.prefabs != nil {
		if p, ok := v.prefabs.Get(obj.PrefabID); ok {
			if e, ok := p.SampleExtents(); ok {
				half = spawners.RotateExtents(e, obj.Rotation)
			}
		}
	}

	switch obj.Kind {
	case components.KindEnemy, components.KindCurrency, components.KindSpawnMarker:
		r := half.MaxComponent() * proj.ScaleX
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), clr, true)
	default:
		hw, hh := half.X*proj.ScaleX, half.Y*proj.ScaleY
		vector.DrawFilledRect(screen, float32(x-hw), float32(y-hh), float32(2*hw), float32(2*hh), clr, false)
	}
}

func (v *Viewer) drawLegend(screen *ebiten.Image, snap *generation.Snapshot, x int) {
	s := snap.Stats
	lines := []string{
		fmt.Sprintf("Tier %d / %d", snap.Tier, snap.MaxTier),
		fmt.Sprintf("Seed %d", snap.Seed),
		fmt.Sprintf("Size %dx%d (%d cells)", snap.Size.Width, snap.Size.Height, snap.Size.Width*snap.Size.Height),
		fmt.Sprintf("Walls %d", s.Walls),
		fmt.Sprintf("Obstacles %d/%d", s.ObstaclesPlaced, s.ObstaclesRolled),
		fmt.Sprintf("Enemies %d/%d (stars %d)", s.EnemiesPlaced, s.EnemiesRolled, s.StarsPlaced),
		fmt.Sprintf("Currency %d/%d", s.CurrencyPlaced, s.CurrencyRolled),
		fmt.Sprintf("Spawn %s -> Exit %s", snap.SpawnEdge, snap.ExitEdge),
	}
	y := 10
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += 16
	}

	if v.log == nil {
		return
	}
	y += 16
	for _, msg := range v.log.RecentMessages(12) {
		ebitenutil.DebugPrintAt(screen, msg, x, y)
		y += 16
	}
}

// Layout implements ebiten.Game's Layout
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (v *Viewer) message(msg string) {
	if v.log != nil {
		v.log.Add(msg)
	}
}

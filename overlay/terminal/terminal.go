// Package terminal renders room snapshots to a tcell screen.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"roomforge/config"
	"roomforge/data"
	"roomforge/generation"
	"roomforge/overlay"
)

// Layout returns the projection Draw uses for a screen of the given size.
// The last row is kept for the status line.
func Layout(snap *generation.Snapshot, width, height int) overlay.Projection {
	return overlay.Fit(snap.Bounds, width, height-1, 1, config.TerminalCellAspect)
}

// Draw clears screen and renders snap with a status line at the bottom
func Draw(screen tcell.Screen, snap *generation.Snapshot, prefabs *data.PrefabLibrary) {
	screen.Clear()
	width, height := screen.Size()
	if snap == nil || width <= 0 || height <= 1 {
		screen.Show()
		return
	}

	proj := Layout(snap, width, height)

	for _, obj := range overlay.DrawOrder(snap) {
		x, y := proj.Cell(obj.Position)
		if x < 0 || y < 0 || x >= width || y >= height-1 {
			continue
		}
		c := overlay.ObjectColor(obj, prefabs)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		screen.SetContent(x, y, overlay.Glyph(obj), nil, style)
	}

	drawText(screen, 0, height-1, statusLine(snap), tcell.StyleDefault.Reverse(true))
	screen.Show()
}

func statusLine(snap *generation.Snapshot) string {
	s := snap.Stats
	return fmt.Sprintf(" tier %d/%d seed %d | %dx%d | enemies %d/%d currency %d/%d obstacles %d/%d | r:regen n:next q:quit",
		snap.Tier, snap.MaxTier, snap.Seed,
		snap.Size.Width, snap.Size.Height,
		s.EnemiesPlaced, s.EnemiesRolled, s.CurrencyPlaced, s.CurrencyRolled, s.ObstaclesPlaced, s.ObstaclesRolled)
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	width, _ := screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run shows the controller's rooms until q or Escape is pressed. r
// regenerates the current room, n advances to the next one.
func Run(screen tcell.Screen, ctrl overlay.Controller, prefabs *data.PrefabLibrary) error {
	Draw(screen, ctrl.Snapshot(), prefabs)

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			var err error
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'r':
				err = ctrl.Regenerate()
			case ev.Rune() == 'n':
				err = ctrl.Next()
			}
			if err != nil {
				return err
			}
		}
		Draw(screen, ctrl.Snapshot(), prefabs)
	}
}

package config

// Overlay layout configuration
const (
	// Pixels drawn per world unit in the diagnostic window
	PixelsPerUnit = 20

	// Margin around the room in pixels
	OverlayMargin = 40

	// Window dimensions in pixels, sized for the largest default room
	WindowWidth  = 34*PixelsPerUnit + 2*OverlayMargin + 240 // extra space for the legend
	WindowHeight = 26*PixelsPerUnit + 2*OverlayMargin

	// Height of a terminal cell divided by its width
	TerminalCellAspect = 2
)

// GetWindowSize returns the recommended diagnostic window size
func GetWindowSize() (width, height int) {
	return WindowWidth, WindowHeight
}

package render

import "github.com/gdamore/tcell/v2"

// Occupancy ramp from sparse to dense buckets
var (
	RgbBackground    = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbChunkEven     = tcell.NewRGBColor(34, 36, 52)    // active chunk, even parity
	RgbChunkOdd      = tcell.NewRGBColor(42, 44, 64)    // active chunk, odd parity
	RgbOccupancyLow  = tcell.NewRGBColor(0, 130, 0)     // Dark Green
	RgbOccupancyMid  = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbOccupancyHigh = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow, near inline capacity
	RgbOverflow      = tcell.NewRGBColor(255, 80, 80)   // Normal Red, chained buckets
	RgbStatusBar     = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusBarBg   = tcell.NewRGBColor(60, 60, 80)
	RgbStatusLabel   = tcell.NewRGBColor(255, 165, 0) // Orange
)

// Occupancy glyphs, indexed by shade level
var shadeGlyphs = [...]rune{' ', '·', '░', '▒', '▓', '█'}

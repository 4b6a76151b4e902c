// Package render draws the occupancy of a spatial.Region onto a tcell screen
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/chunkgrid/parameter"
	"github.com/lixenwraith/chunkgrid/spatial"
	"github.com/lixenwraith/chunkgrid/status"
	"github.com/lixenwraith/chunkgrid/vmath"
)

// Viewer maps one terminal cell to one grid cell; the bottom row is the status bar
// Screen row y shows grid row origin.Y+y, which is world Z.
type Viewer struct {
	screen  tcell.Screen
	region  *spatial.Region
	metrics *status.Registry
	origin  vmath.Int2
	label   string
}

func NewViewer(screen tcell.Screen, region *spatial.Region, metrics *status.Registry) *Viewer {
	return &Viewer{
		screen:  screen,
		region:  region,
		metrics: metrics,
	}
}

// Center places grid at the middle of the map area
func (v *Viewer) Center(grid vmath.Int2) {
	w, h := v.mapSize()
	v.origin = vmath.Int2{X: grid.X - int32(w/2), Y: grid.Y - int32(h/2)}
}

// Pan shifts the view by whole grid cells
func (v *Viewer) Pan(dx, dy int32) {
	v.origin = vmath.I2Add(v.origin, vmath.Int2{X: dx, Y: dy})
}

// SetLabel sets the text shown at the left of the status bar
func (v *Viewer) SetLabel(label string) {
	v.label = label
}

// GridAt returns the grid cell under screen cell (sx, sy)
func (v *Viewer) GridAt(sx, sy int) vmath.Int2 {
	return vmath.Int2{X: v.origin.X + int32(sx), Y: v.origin.Y + int32(sy)}
}

func (v *Viewer) Origin() vmath.Int2 { return v.origin }

func (v *Viewer) mapSize() (int, int) {
	w, h := v.screen.Size()
	return w, max(h-1, 0)
}

// Draw renders the map and the status bar and shows the frame
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.mapSize()

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			grid := v.GridAt(sx, sy)
			ch, style := v.cellFor(grid)
			v.screen.SetContent(sx, sy, ch, nil, style)
		}
	}
	v.drawStatus(w, h)
	v.screen.Show()
}

func (v *Viewer) cellFor(grid vmath.Int2) (rune, tcell.Style) {
	bg := RgbBackground
	chunk := spatial.GridCoordToChunkCoord(grid)
	if v.region.ChunkAt(chunk) != nil {
		if (chunk.X+chunk.Y)&1 == 0 {
			bg = RgbChunkEven
		} else {
			bg = RgbChunkOdd
		}
	}
	style := tcell.StyleDefault.Background(bg)

	count := v.region.BucketCount(grid)
	if count == 0 {
		return ' ', style
	}
	if chain := v.region.ChainLength(grid); chain > 0 {
		return Glyph(count), style.Foreground(RgbOverflow).Bold(true)
	}
	return Glyph(count), style.Foreground(occupancyColor(count))
}

// Glyph picks a shade rune for a bucket count, saturating at inline capacity
func Glyph(count int) rune {
	if count <= 0 {
		return shadeGlyphs[0]
	}
	steps := len(shadeGlyphs) - 1
	level := 1 + (count-1)*(steps-1)/parameter.BucketCapacity
	return shadeGlyphs[min(level, steps)]
}

func occupancyColor(count int) tcell.Color {
	switch {
	case count >= parameter.BucketCapacity*3/4:
		return RgbOccupancyHigh
	case count >= parameter.BucketCapacity/4:
		return RgbOccupancyMid
	default:
		return RgbOccupancyLow
	}
}

func (v *Viewer) drawStatus(w, row int) {
	barStyle := tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbStatusBarBg)
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, row, ' ', nil, barStyle)
	}

	x := 0
	if v.label != "" {
		x = v.drawText(x, row, v.label+" ", barStyle.Foreground(RgbStatusLabel).Bold(true))
	}
	v.drawText(x, row, v.StatusLine(), barStyle)
}

// StatusLine formats the index and tick metrics shown in the status bar
func (v *Viewer) StatusLine() string {
	if v.metrics == nil {
		return ""
	}
	ints := v.metrics.Ints
	var sb strings.Builder
	fmt.Fprintf(&sb, "ent:%d chunks:%d/%d ovf:%d/%d mig:%d hits:%d/%d %.0fus @%d,%d",
		ints.Get(status.Entities).Load(),
		ints.Get(status.UsedChunks).Load(),
		ints.Get(status.TotalChunks).Load(),
		ints.Get(status.OverflowUsed).Load(),
		ints.Get(status.OverflowCapacity).Load(),
		ints.Get(status.TickMigrations).Load(),
		ints.Get(status.TickHits).Load(),
		ints.Get(status.TickCandidates).Load(),
		v.metrics.Floats.Get(status.TickMicros).Get(),
		v.origin.X, v.origin.Y,
	)
	return sb.String()
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) int {
	w, _ := v.screen.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

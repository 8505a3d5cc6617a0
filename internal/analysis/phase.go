package analysis

import (
	"math"
	"strings"
)

type Point struct {
	X, Y float64
}

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait pairs two components of a recorded run. It returns nil if
// either index is out of range.
func NewPhasePortrait(states [][]float64, xIdx, yIdx int) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(states)),
	}
	for _, s := range states {
		if xIdx >= len(s) || yIdx >= len(s) {
			return nil
		}
		portrait.Points = append(portrait.Points, Point{X: s[xIdx], Y: s[yIdx]})
	}
	return portrait
}

// PhasePortraitToASCII draws the portrait on a width x height character
// grid. The view is symmetric about the origin so the rest pose always sits
// under the axis cross. Samples are drawn as '•' and the final sample as '◆'.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	var spanX, spanY float64
	for _, p := range portrait.Points {
		spanX = math.Max(spanX, math.Abs(p.X))
		spanY = math.Max(spanY, math.Abs(p.Y))
	}
	spanX = pad(spanX)
	spanY = pad(spanY)

	cellOf := func(p Point) (row, col int) {
		col = int(math.Round((p.X + spanX) / (2 * spanX) * float64(width-1)))
		row = int(math.Round((spanY - p.Y) / (2 * spanY) * float64(height-1)))
		return row, col
	}

	grid := make([][]rune, height)
	midRow, midCol := cellOf(Point{})
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
		grid[r][midCol] = '│'
	}
	for c := range grid[midRow] {
		grid[midRow][c] = '─'
	}
	grid[midRow][midCol] = '┼'

	last := len(portrait.Points) - 1
	for i, p := range portrait.Points {
		r, c := cellOf(p)
		if i == last {
			grid[r][c] = '◆'
		} else {
			grid[r][c] = '•'
		}
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n") + "\n"
}

// pad widens a half-extent by 10% and keeps it non-zero.
func pad(span float64) float64 {
	if span == 0 {
		return 1
	}
	return span * 1.1
}

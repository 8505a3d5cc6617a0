package viz

import "strings"

const blank = rune(0x2800)

// dotBit maps a dot inside a 2x4 braille cell to its bit in the code point
// offset from blank. Rows run top to bottom, columns left to right.
var dotBit = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid measured in terminal cells. Each cell packs
// 2x4 dots, so a cols x rows canvas addresses (cols*2) x (rows*4) dots.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// Size returns the canvas size in terminal cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Dots returns the addressable resolution.
func (c *Canvas) Dots() (int, int) { return c.cols * 2, c.rows * 4 }

// Cell returns the braille rune at a terminal cell.
func (c *Canvas) Cell(row, col int) rune {
	return blank + rune(c.cells[row*c.cols+col])
}

func (c *Canvas) locate(x, y int) (idx int, bit uint8, ok bool) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return 0, 0, false
	}
	return (y/4)*c.cols + x/2, dotBit[y%4][x%2], true
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if i, bit, ok := c.locate(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if i, bit, ok := c.locate(x, y); ok {
		c.cells[i] &^= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, bit, ok := c.locate(x, y)
	return ok && c.cells[i]&bit != 0
}

func (c *Canvas) Clear() { clear(c.cells) }

// DrawLine steps along the longer axis and rounds the other, lighting one dot
// per step including both endpoints.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		c.Set(x0, y0)
		return
	}
	for i := 0; i <= steps; i++ {
		c.Set(x0+divRound(i*dx, steps), y0+divRound(i*dy, steps))
	}
}

// DrawBloom marks a flower head as a small diamond around (x, y).
func (c *Canvas) DrawBloom(x, y int) {
	for _, d := range [][2]int{{0, 0}, {-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c.Set(x+d[0], y+d[1])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			b.WriteRune(c.Cell(r, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// divRound divides rounding half away from zero.
func divRound(a, b int) int {
	if a < 0 {
		return -((-a*2 + b) / (2 * b))
	}
	return (a*2 + b) / (2 * b)
}

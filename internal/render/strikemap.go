package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/strike-planner/internal/optimizer"
	"github.com/ironsheep/strike-planner/internal/targets"
)

// Palette colors, as hex strings accepted by colorful.Hex.
const (
	ColdHex   = "#0b1d3a"
	HotHex    = "#ff3b1f"
	TargetHex = "#ffffff"
	StrikeHex = "#ffe600"
	GridHex   = "#5a6b86"
)

// MaxCanvasSide is the largest width or height of a rendered strike map.
const MaxCanvasSide = 8192

// Options controls how a strike map is drawn.
type Options struct {
	// GridSize is the side of the target grid in cells.
	GridSize int

	// Scale is the number of pixels per cell (1 to 32).
	Scale int

	// GridSpacing is the distance in cells between grid lines; 0 disables
	// the grid overlay.
	GridSpacing int

	// ShowCoordinates labels grid line intersections with cell coordinates.
	ShowCoordinates bool

	// GridColor is the hex color of grid lines. Invalid or empty values fall
	// back to GridHex.
	GridColor string

	// Caption, when set, is written in a band along the bottom edge.
	Caption string
}

// DefaultOptions returns the options used when only the grid size is known.
func DefaultOptions(gridSize int) Options {
	return Options{
		GridSize:    gridSize,
		Scale:       8,
		GridSpacing: 10,
		GridColor:   GridHex,
	}
}

func (o Options) validate() error {
	if o.GridSize <= 0 {
		return fmt.Errorf("invalid grid size %d", o.GridSize)
	}
	if o.Scale < 1 || o.Scale > 32 {
		return fmt.Errorf("scale %d outside 1-32", o.Scale)
	}
	if o.GridSize > MaxCanvasSide/o.Scale {
		return fmt.Errorf("grid size %d at scale %d exceeds %d pixel canvas", o.GridSize, o.Scale, MaxCanvasSide)
	}
	if o.GridSpacing < 0 {
		return fmt.Errorf("invalid grid spacing %d", o.GridSpacing)
	}
	return nil
}

// StrikeMap draws the map of points struck at res.Center with radius.
func StrikeMap(points []targets.Point, res optimizer.Result, radius float64, opts Options) (*image.NRGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("invalid radius %v", radius)
	}

	cold, _ := colorful.Hex(ColdHex)
	hot, _ := colorful.Hex(HotHex)

	heat := CoverageHeat(points, radius, opts.GridSize)
	peak := res.Count
	for _, row := range heat {
		for _, n := range row {
			if n > peak {
				peak = n
			}
		}
	}

	cells := imaging.New(opts.GridSize, opts.GridSize, cold)
	for y, row := range heat {
		for x, n := range row {
			if n == 0 {
				continue
			}
			t := float64(n) / float64(peak)
			cells.Set(x, y, cold.BlendHcl(hot, t).Clamped())
		}
	}

	size := opts.GridSize * opts.Scale
	img := imaging.Resize(cells, size, size, imaging.NearestNeighbor)

	if opts.GridSpacing > 0 {
		gridColor := parseColor(opts.GridColor, GridHex)
		drawGrid(img, opts, gridColor)
	}

	strike := parseColor(StrikeHex, StrikeHex)
	drawCircle(img, res.Center, radius, opts.Scale, strike)

	marker := parseColor(TargetHex, TargetHex)
	for _, p := range points {
		fillCell(img, p, opts.Scale, marker)
	}

	drawCrosshair(img, res.Center, opts.Scale, strike)

	if opts.Caption != "" {
		drawCaption(img, opts.Caption)
	}

	return img, nil
}

// CoverageHeat returns, for every cell of a gridSize x gridSize grid, the
// number of points a strike centered on that cell would cover. It is indexed
// heat[y][x].
func CoverageHeat(points []targets.Point, radius float64, gridSize int) [][]int {
	heat := make([][]int, gridSize)
	for y := range heat {
		heat[y] = make([]int, gridSize)
		for x := range heat[y] {
			heat[y][x] = optimizer.Coverage(points, targets.Point{X: x, Y: y}, radius)
		}
	}
	return heat
}

// parseColor parses a "#RRGGBB" color, falling back to fallback.
func parseColor(hex, fallback string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	return c.Clamped()
}

// cellCenter returns the pixel at the middle of cell p.
func cellCenter(p targets.Point, scale int) (float64, float64) {
	return (float64(p.X) + 0.5) * float64(scale), (float64(p.Y) + 0.5) * float64(scale)
}

// fillCell paints the inner part of cell p, leaving a one pixel margin when
// the cell is large enough to show one.
func fillCell(img draw.Image, p targets.Point, scale int, c color.Color) {
	margin := 0
	if scale >= 4 {
		margin = 1
	}
	x0, y0 := p.X*scale+margin, p.Y*scale+margin
	x1, y1 := (p.X+1)*scale-margin, (p.Y+1)*scale-margin
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

// drawCircle outlines the blast circle of radius cells around center.
func drawCircle(img draw.Image, center targets.Point, radius float64, scale int, c color.Color) {
	cx, cy := cellCenter(center, scale)
	r := radius * float64(scale)

	// One step per pixel of circumference.
	steps := int(math.Ceil(2 * math.Pi * r))
	if steps < 8 {
		steps = 8
	}
	bounds := img.Bounds()
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Floor(cx + r*math.Cos(a)))
		y := int(math.Floor(cy + r*math.Sin(a)))
		if image.Pt(x, y).In(bounds) {
			img.Set(x, y, c)
		}
	}
}

// drawCrosshair marks the strike center across its own cell and one cell
// either side.
func drawCrosshair(img draw.Image, center targets.Point, scale int, c color.Color) {
	cx, cy := cellCenter(center, scale)
	px, py := int(cx), int(cy)
	arm := scale + scale/2
	for d := -arm; d <= arm; d++ {
		img.Set(px+d, py, c)
		img.Set(px, py+d, c)
	}
}

// drawGrid draws grid lines every opts.GridSpacing cells and, if requested,
// coordinate labels at their intersections.
func drawGrid(img draw.Image, opts Options, gridColor color.Color) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	step := opts.GridSpacing * opts.Scale

	for x := step; x < width; x += step {
		for y := 0; y < height; y++ {
			img.Set(x, y, gridColor)
		}
	}
	for y := step; y < height; y += step {
		for x := 0; x < width; x++ {
			img.Set(x, y, gridColor)
		}
	}

	if !opts.ShowCoordinates {
		return
	}

	labelColor := color.NRGBA{255, 255, 255, 255}
	bgColor := color.NRGBA{0, 0, 0, 180}
	for y := step; y < height; y += step {
		for x := step; x < width; x += step {
			label := fmt.Sprintf("%d,%d", x/opts.Scale, y/opts.Scale)
			drawLabel(img, x+2, y+2, label, labelColor, bgColor)
		}
	}
}

// drawLabel draws a text label at the given position using a 3x5 pixel font
// for digits and comma. Other characters leave a blank.
func drawLabel(img draw.Image, x, y int, text string, fg, bg color.Color) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}

// captionHeight is the height of the caption band in pixels.
const captionHeight = 17

// drawCaption writes text in white on a translucent band across the bottom of
// img. Text wider than the image is clipped.
func drawCaption(img draw.Image, text string) {
	bounds := img.Bounds()
	band := image.Rect(bounds.Min.X, bounds.Max.Y-captionHeight, bounds.Max.X, bounds.Max.Y).Intersect(bounds)
	draw.Draw(img, band, image.NewUniform(color.NRGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(band.Min.X+4, band.Max.Y-4),
	}
	d.DrawString(text)
}

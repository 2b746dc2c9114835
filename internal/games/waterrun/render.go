package waterrun

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/waterrun/internal/core"
)

// Visual characters for rendering
const (
	RunnerChar  = '█'
	RunnerHead  = '●'
	DogChar     = '▄'
	DoorChar    = '▒'
	DoorDone    = '░'
	HydrantChar = '▟'
	GroundChar  = '═'
	HeartFull   = '♥'
	HeartEmpty  = '♡'
)

// Overlay carries presentation state owned by the session's timers.
type Overlay struct {
	Notice    string            // transient delivery message
	Banner    string            // milestone banner
	Celebrate map[EntityID]bool // targets lit briefly after delivery
	Hint      string            // footer hint, e.g. restart keys after game over
}

// doorColors tints doors by category.
var doorColors = [...]core.Color{
	CategorySmall:   core.ColorOrange,
	CategoryMediumA: core.ColorBrown,
	CategoryMediumB: core.ColorRed,
	CategoryLarge:   core.ColorYellow,
}

// projection maps playfield pixels onto screen cells.
type projection struct {
	sx, sy    float64
	groundRow int
}

func newProjection(dst *core.Screen, f Frame) projection {
	w, h := float64(dst.Width()), float64(dst.Height())
	p := projection{sx: 1, sy: 1}
	if f.World.Width > 0 {
		p.sx = w / f.World.Width
	}
	if f.World.Height > 0 {
		p.sy = h / f.World.Height
	}
	p.groundRow = dst.Height() - 1 - int(f.World.Ground*p.sy)
	return p
}

func (p projection) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

func (p projection) cols(w float64) int {
	return core.Max(1, int(math.Round(w*p.sx)))
}

func (p projection) rows(h float64) int {
	return core.Max(1, int(math.Round(h*p.sy)))
}

// box returns the cell rectangle of something standing at height y above
// the playfield floor.
func (p projection) box(x, w, y, h, ground float64) core.Rect {
	bottom := p.groundRow - int(math.Round((y-ground)*p.sy))
	rows := p.rows(h)
	return core.NewRect(p.col(x), bottom-rows, p.cols(w), rows)
}

// Render draws a frame and its overlay into dst.
func Render(dst *core.Screen, f Frame, ov Overlay) {
	dst.Clear()
	p := newProjection(dst, f)
	ground := f.World.Ground

	dst.DrawHLine(0, p.groundRow, dst.Width(), GroundChar)
	// Dashes below the ground line scroll with the world
	offset := int(f.Scroll*p.sx) % 4
	for x := 0; x < dst.Width(); x++ {
		if (x+offset)%4 == 0 {
			dst.SetColored(x, p.groundRow+1, '·', core.ColorGray)
		}
	}

	for _, e := range f.Entities {
		if e.Kind == KindTarget {
			drawDoor(dst, p, e, ground, ov.Celebrate[e.ID])
		} else {
			drawHydrant(dst, p, e, ground)
		}
	}

	drawDog(dst, p, f, ground)
	drawRunner(dst, p, f, ground)
	drawHUD(dst, f)

	if ov.Banner != "" {
		dst.DrawTextCentered(2, ov.Banner)
	}
	if ov.Notice != "" {
		drawCentered(dst, 3, ov.Notice, core.ColorBrightGreen)
	}

	if f.Phase == PhaseGameOver {
		drawCenteredMessage(dst, "CAUGHT!",
			fmt.Sprintf("Distance: %d  |  Deliveries: %d", f.Stats.Distance, f.Stats.Deliveries),
			ov.Hint)
	} else if ov.Hint != "" {
		drawCentered(dst, dst.Height()-1, ov.Hint, core.ColorGray)
	}
}

func drawDoor(dst *core.Screen, p projection, e EntityView, ground float64, celebrate bool) {
	r := p.box(e.X, e.Width, ground, e.Height, ground)
	fill, color := DoorChar, core.ColorBrown
	if int(e.Category) < len(doorColors) {
		color = doorColors[e.Category]
	}
	switch {
	case celebrate:
		fill, color = DoorChar, core.ColorBrightGreen
	case e.Delivered:
		fill, color = DoorDone, core.ColorBlue
	case e.Highlighted:
		color = core.ColorBrightYellow
	}
	dst.DrawRectColored(r, fill, color)

	// Glow around the door in range
	if e.Highlighted {
		for y := r.Y; y < r.Bottom(); y++ {
			dst.SetColored(r.X-1, y, '▌', core.ColorBrightYellow)
			dst.SetColored(r.Right(), y, '▐', core.ColorBrightYellow)
		}
	}
}

func drawHydrant(dst *core.Screen, p projection, e EntityView, ground float64) {
	color := core.ColorRed
	if e.Struck {
		color = core.ColorGray
	}
	dst.DrawRectColored(p.box(e.X, e.Width, ground, e.Height, ground), HydrantChar, color)
}

func drawDog(dst *core.Screen, p projection, f Frame, ground float64) {
	r := p.box(f.Dog.X, f.Dog.Width, ground, 44, ground)
	color := core.ColorBrown
	if f.Dog.Pursuing {
		color = core.ColorOrange
	}
	dst.DrawRectColored(r, DogChar, color)
}

func drawRunner(dst *core.Screen, p projection, f Frame, ground float64) {
	pl := f.Player
	// Blink while invulnerable
	if pl.Flashing && (f.Tick/3)%2 == 1 {
		return
	}
	r := p.box(pl.X, pl.Width, pl.Y, pl.Height, ground)
	color := core.ColorCyan
	if pl.Flashing {
		color = core.ColorWhite
	}
	dst.DrawRectColored(r, RunnerChar, color)
	dst.SetColored(r.X+r.W/2, r.Y, RunnerHead, core.ColorBrightCyan)
}

func drawHUD(dst *core.Screen, f Frame) {
	hearts := strings.Repeat(string(HeartFull), core.Max(0, f.Player.Lives)) +
		strings.Repeat(string(HeartEmpty), core.Max(0, f.Player.MaxLives-f.Player.Lives))
	dst.DrawText(2, 0, fmt.Sprintf(" Distance: %d  Deliveries: %d ", f.Stats.Distance, f.Stats.Deliveries))
	right := fmt.Sprintf(" %s  %s ", f.Difficulty.Label(), hearts)
	dst.DrawTextColored(dst.Width()-len([]rune(right))-2, 0, right, core.ColorRed)
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColored(x, y, text, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	var body []string
	for _, l := range lines {
		if l != "" {
			body = append(body, l)
		}
	}
	boxW := len([]rune(title))
	for _, l := range body {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(body)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)

	drawCentered(dst, boxY+1, title, core.ColorBrightYellow)
	for i, l := range body {
		drawCentered(dst, boxY+3+i, l, core.ColorDefault)
	}
}

package components

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartsavehub/smartsave/internal/tui/theme"
)

// ConfettiFrames is the number of animation steps a burst lasts.
const ConfettiFrames = 40

var confettiGlyphs = []rune{'*', '+', '•', '✦', '✧', '◆', '▪'}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
	color  int
}

// Confetti is a short particle animation drawn in a fixed-height band.
type Confetti struct {
	particles []particle
	frame     int
	width     int
	height    int
	rng       *rand.Rand
}

// NewConfetti seeds a burst of particles across width columns.
func NewConfetti(width, height int, rng *rand.Rand) *Confetti {
	c := &Confetti{width: max(10, width), height: max(3, height), rng: rng}
	n := c.width / 2
	for range n {
		c.particles = append(c.particles, particle{
			x:     rng.Float64() * float64(c.width),
			y:     -rng.Float64() * float64(c.height),
			vx:    (rng.Float64() - 0.5) * 1.2,
			vy:    0.3 + rng.Float64()*0.5,
			glyph: confettiGlyphs[rng.IntN(len(confettiGlyphs))],
			color: rng.IntN(5),
		})
	}
	return c
}

// Step advances the animation by one frame.
func (c *Confetti) Step() {
	c.frame++
	for i := range c.particles {
		p := &c.particles[i]
		p.x += p.vx
		p.y += p.vy
		p.vy += 0.04
	}
}

// Done reports whether the animation has finished.
func (c *Confetti) Done() bool {
	return c == nil || c.frame >= ConfettiFrames
}

// View draws the current frame.
func (c *Confetti) View() string {
	if c.Done() {
		return ""
	}
	t := theme.Active
	palette := []lipgloss.Color{t.Gold, t.Accent, t.Magenta, t.GreenBright, t.Orange}

	grid := make([][]string, c.height)
	for y := range grid {
		grid[y] = make([]string, c.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, p := range c.particles {
		x, y := int(p.x), int(p.y)
		if x < 0 || x >= c.width || y < 0 || y >= c.height {
			continue
		}
		grid[y][x] = lipgloss.NewStyle().Foreground(palette[p.color]).Render(string(p.glyph))
	}

	lines := make([]string, c.height)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// Package debugview draws a running scene top-down in the terminal.
package debugview

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/combat"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Rows reserved below the map for the status lines.
const statusRows = 2

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleShrine   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAchieved = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleHitbox   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDowned   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// enemyStyles colours enemies by behavior state.
var enemyStyles = map[string]tcell.Style{
	"Wait":      tcell.StyleDefault.Foreground(tcell.ColorBlue),
	"Round":     tcell.StyleDefault.Foreground(tcell.ColorAqua),
	"Patrol":    tcell.StyleDefault.Foreground(tcell.ColorPurple),
	"Approach":  tcell.StyleDefault.Foreground(tcell.ColorOrange),
	"Attack":    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	"Alert":     tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	"Vigilance": tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	"Overlook":  tcell.StyleDefault.Foreground(tcell.ColorOlive),
}

// View renders worlds onto a tcell screen.
type View struct {
	screen tcell.Screen
	once   sync.Once

	// map area of the last draw
	width, height int
	bounds        [4]float64 // left, back, right, forward
}

// New wraps an initialised screen.
func New(screen tcell.Screen) *View {
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	return &View{screen: screen}
}

// Open initialises the terminal and returns a view on it.
func Open() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen), nil
}

// Close restores the terminal.
func (v *View) Close() {
	v.once.Do(v.screen.Fini)
}

// Listen polls terminal events until the screen is closed and calls quit
// when the user presses Esc, q or Ctrl-C.
func (v *View) Listen(quit func()) {
	go func() {
		for {
			ev := v.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					quit()
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		}
	}()
}

// Draw renders w. label names the current scene state.
func (v *View) Draw(w *world.World, label string) {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	v.width, v.height = sw, sh-statusRows
	b := w.Bounds()
	v.bounds = [4]float64{b.L, b.B, b.R, b.T}
	if v.width < 3 || v.height < 3 {
		v.screen.Show()
		return
	}

	v.border()
	for _, a := range w.Arena().All() {
		r, style := glyph(a)
		x, y := v.cell(a.Position)
		v.screen.SetContent(x, y, r, nil, style)
	}
	v.status(w, label)
	v.screen.Show()
}

func (v *View) border() {
	for x := 0; x < v.width; x++ {
		v.screen.SetContent(x, 0, '-', nil, styleBorder)
		v.screen.SetContent(x, v.height-1, '-', nil, styleBorder)
	}
	for y := 0; y < v.height; y++ {
		v.screen.SetContent(0, y, '|', nil, styleBorder)
		v.screen.SetContent(v.width-1, y, '|', nil, styleBorder)
	}
}

// cell maps a world position to a screen cell inside the border. Forward
// (+Z) is up.
func (v *View) cell(p math.Vec3) (int, int) {
	left, back, right, forward := v.bounds[0], v.bounds[1], v.bounds[2], v.bounds[3]
	fx := (float64(p.X) - left) / (right - left)
	fz := (forward - float64(p.Z)) / (forward - back)
	x := 1 + int(fx*float64(v.width-3)+0.5)
	y := 1 + int(fz*float64(v.height-3)+0.5)
	return clamp(x, 1, v.width-2), clamp(y, 1, v.height-2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func glyph(a *actor.Actor) (rune, tcell.Style) {
	switch k := a.Kind.(type) {
	case actor.Player:
		if combat.IsDowned(a) {
			return 'x', styleDowned
		}
		return '@', stylePlayer
	case actor.Enemy:
		if combat.IsDowned(a) {
			return 'x', styleDowned
		}
		style := styleStatus
		if d, ok := a.Behavior.(interface{ Describe() string }); ok {
			if s, ok := enemyStyles[d.Describe()]; ok {
				style = s
			}
		}
		return 'O', style
	case actor.Obstacle:
		return '#', styleObstacle
	case *actor.Shrine:
		if k.Achieved {
			return '+', styleAchieved
		}
		return '&', styleShrine
	case actor.Hitbox:
		return '*', styleHitbox
	default:
		return '?', styleStatus
	}
}

func (v *View) status(w *world.World, label string) {
	head := fmt.Sprintf("tick %d  %s", w.Tick(), label)
	if enc := w.Encounter(); enc >= 0 {
		head += fmt.Sprintf("  encounter %d", enc)
	}
	var enemies []string
	for _, st := range w.Status() {
		if st.Kind == "player" {
			head += fmt.Sprintf("  hp %d", st.Health)
			continue
		}
		enemies = append(enemies, fmt.Sprintf("%s#%d:%s", st.Name, st.ID, st.State))
	}
	v.text(0, v.height, head)
	v.text(0, v.height+1, strings.Join(enemies, " "))
}

func (v *View) text(x, y int, s string) {
	for _, r := range s {
		if x >= v.width {
			return
		}
		v.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
}

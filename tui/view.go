// Package tui draws the local half of the rink in a terminal and turns the
// mouse and arrow keys into a paddle target.
package tui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mo-shahab/go-hockey/field"
	"github.com/mo-shahab/go-hockey/game"
	"github.com/mo-shahab/go-hockey/input"
	"github.com/mo-shahab/go-hockey/protocol"
)

const (
	// field units an arrow key moves the target
	keyStep = 60.0
	// frames a banner stays up
	bannerFrames = 90
)

var (
	styleBase     = tcell.StyleDefault
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGoal     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCentre   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePuck     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSmash    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleOwn      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOpponent = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// View renders frames and collects pointer input. Observe and OnEvent are
// called from the frame loop; Run owns the terminal event loop.
type View struct {
	screen  tcell.Screen
	side    field.Side
	pointer input.Pointer

	mu      sync.Mutex
	last    game.Snapshot
	banner  string
	showFor int

	quit     chan struct{}
	quitOnce sync.Once
}

// New opens the terminal.
func New(side field.Side) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, side)
}

// NewWithScreen takes over an uninitialised screen.
func NewWithScreen(screen tcell.Screen, side field.Side) (*View, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(styleBase)
	screen.EnableMouse()
	screen.Clear()

	return &View{
		screen: screen,
		side:   side,
		last:   game.NewSnapshot(),
		quit:   make(chan struct{}),
	}, nil
}

// Quit is closed when the player asks to leave.
func (v *View) Quit() <-chan struct{} {
	return v.quit
}

// Close restores the terminal.
func (v *View) Close() {
	v.screen.Fini()
}

// Run handles terminal events until ctx ends or the player quits.
func (v *View) Run(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
		case <-v.quit:
		}
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			return
		}
		v.handle(ev)
	}
}

func (v *View) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := v.fieldPoint(col, row)
		v.pointer.Set(x, y)
	case *tcell.EventKey:
		v.mu.Lock()
		view := v.last
		v.mu.Unlock()

		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			v.stop()
		case tcell.KeyUp:
			v.pointer.Nudge(view, v.side, 0, -keyStep)
		case tcell.KeyDown:
			v.pointer.Nudge(view, v.side, 0, keyStep)
		case tcell.KeyLeft:
			v.pointer.Nudge(view, v.side, -keyStep, 0)
		case tcell.KeyRight:
			v.pointer.Nudge(view, v.side, keyStep, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				v.stop()
			case ' ':
				v.pointer.Release()
			}
		}
	}
}

func (v *View) stop() {
	v.quitOnce.Do(func() { close(v.quit) })
}

// Target reports the pointer position as the paddle target.
func (v *View) Target(view game.Snapshot, side field.Side) (float64, float64, bool) {
	return v.pointer.Target(view, side)
}

// OnEvent shows a banner for starts and goals.
func (v *View) OnEvent(ev protocol.GameEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch ev.Kind {
	case protocol.EventStart:
		v.banner = "FACE OFF"
	case protocol.EventGoal:
		if ev.Side == v.side {
			v.banner = "GOAL AGAINST"
		} else {
			v.banner = "GOAL!"
		}
	}
	v.showFor = bannerFrames
}

// Observe draws one frame.
func (v *View) Observe(_ game.CollisionResult, view game.Snapshot) {
	v.mu.Lock()
	v.last = view
	banner := ""
	if v.showFor > 0 {
		v.showFor--
		banner = v.banner
	}
	v.mu.Unlock()

	v.screen.Clear()
	v.drawRink()
	own, _ := view.Paddle(v.side)
	opp, _ := view.Paddle(v.side.Opponent())
	v.drawDisc(opp.X, opp.Y, opp.Radius, '#', styleOpponent)
	v.drawDisc(own.X, own.Y, own.Radius, '#', styleOwn)

	puckStyle := stylePuck
	if view.Puck.Smashing() {
		puckStyle = styleSmash
	}
	v.drawDisc(view.Puck.X, view.Puck.Y, view.Puck.Radius, 'o', puckStyle)

	v.drawStatus(view, banner)
	v.screen.Show()
}

// rink returns the terminal area used for the field: everything below the
// status line.
func (v *View) rink() (cols, rows int) {
	w, h := v.screen.Size()
	return w, h - 1
}

func (v *View) cell(x, y float64) (int, int, bool) {
	cols, rows := v.rink()
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	lx := x - field.ViewOffset(v.side)
	if lx < 0 || lx >= field.ScreenWidth || y < 0 || y >= field.Height {
		return 0, 0, false
	}
	return int(lx / field.ScreenWidth * float64(cols)), 1 + int(y/field.Height*float64(rows)), true
}

// fieldPoint maps a terminal cell to the field point at its centre.
func (v *View) fieldPoint(col, row int) (float64, float64) {
	cols, rows := v.rink()
	cols, rows = max(cols, 1), max(rows, 1)
	x := field.ViewOffset(v.side) + (float64(col)+0.5)*field.ScreenWidth/float64(cols)
	y := (float64(row-1) + 0.5) * field.Height / float64(rows)
	return x, y
}

func (v *View) drawRink() {
	cols, rows := v.rink()
	back, centre := 0, cols-1
	if v.side == field.SideRight {
		back, centre = cols-1, 0
	}
	for row := 1; row <= rows; row++ {
		_, y := v.fieldPoint(0, row)
		if field.InGoalBand(y) {
			v.screen.SetContent(back, row, '|', nil, styleGoal)
		} else {
			v.screen.SetContent(back, row, '|', nil, styleWall)
		}
		v.screen.SetContent(centre, row, ':', nil, styleCentre)
	}
	for col := 0; col < cols; col++ {
		v.screen.SetContent(col, 1, '-', nil, styleWall)
		v.screen.SetContent(col, rows, '-', nil, styleWall)
	}
}

// drawDisc fills the cells whose centres lie within r of (x, y), or the
// single cell under (x, y) when the disc is smaller than a cell.
func (v *View) drawDisc(x, y, r float64, ch rune, style tcell.Style) {
	col, row, ok := v.cell(x, y)
	if ok {
		v.screen.SetContent(col, row, ch, nil, style)
	}
	cols, rows := v.rink()
	for c := 0; c < cols; c++ {
		for rr := 1; rr <= rows; rr++ {
			fx, fy := v.fieldPoint(c, rr)
			if dx, dy := fx-x, fy-y; dx*dx+dy*dy <= r*r {
				v.screen.SetContent(c, rr, ch, nil, style)
			}
		}
	}
}

func (v *View) drawStatus(view game.Snapshot, banner string) {
	w, _ := v.screen.Size()
	line := fmt.Sprintf(" LEFT %d : %d RIGHT  | you: %s | mouse/arrows move, space stops, q quits ",
		view.Scores.Left, view.Scores.Right, v.side)
	if banner != "" {
		line = fmt.Sprintf(" %s  %s", banner, line)
	}
	for col := 0; col < w; col++ {
		ch := ' '
		if col < len(line) {
			ch = rune(line[col])
		}
		v.screen.SetContent(col, 0, ch, nil, styleStatus)
	}
}

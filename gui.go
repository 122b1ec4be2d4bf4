package flipbook

import (
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	defaultBkgColor    = color.Black
	defaultFillColor   = color.White
	defaultPaddleColor = color.NRGBA{R: 0x2e, G: 0xc4, B: 0xb6, A: 0xff}
)

// Gui is the basic struct containing all of the information needed for the UI
// operation. It drives both the ball game and the frame studio surface from
// the single Gio event loop.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
		color struct {
			background color.Color
			fill       color.Color
		}
	}
	sim    *Simulation
	studio *Studio

	// playing holds the decoded frame republished by the playback loop.
	playing struct {
		img image.Image
		tr  Transform
		on  bool
	}

	ctx layout.Context
}

// NewGUI initializes the Gio interface.
func NewGUI(w, h int) *Gui {
	gui := &Gui{
		ctx: layout.Context{
			Ops: new(op.Ops),
			Constraints: layout.Constraints{
				Max: image.Pt(w, h),
			},
		},
	}
	gui.initWindow(w, h)

	return gui
}

// initWindow creates and initializes the GUI window.
func (g *Gui) initWindow(w, h int) {
	g.cfg.window.w, g.cfg.window.h = float64(w), float64(h)
	g.cfg.color.background = defaultBkgColor
	g.cfg.color.fill = defaultFillColor
	g.cfg.window.title = "Flipbook"
}

// RunGame is the core method of the ball game GUI. The simulation is advanced
// once per frame event and the window is invalidated unconditionally, so the
// redraw tick never stops for the lifetime of the window.
func (g *Gui) RunGame(sim *Simulation) error {
	g.sim = sim
	g.cfg.window.title = "Flipbook - ball game"

	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Px(float32(g.cfg.window.w)),
		unit.Px(float32(g.cfg.window.h)),
	))

	for {
		switch e := (<-w.Events()).(type) {
		case system.FrameEvent:
			g.ctx = layout.NewContext(g.ctx.Ops, e)
			w.Invalidate()

			for _, ev := range g.ctx.Events(g) {
				if p, ok := ev.(pointer.Event); ok && p.Type == pointer.Move {
					g.sim.TrackPaddle(float64(p.Position.Y) - g.sim.Config().PaddleHeight/2)
				}
			}
			g.sim.Step()
			g.drawGame(e)

			e.Frame(g.ctx.Ops)
		case key.Event:
			if e.State != key.Press {
				break
			}
			switch e.Name {
			case key.NameUpArrow:
				g.sim.MovePaddle(-1)
			case key.NameDownArrow:
				g.sim.MovePaddle(1)
			case key.NameEscape:
				w.Close()
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
}

// RunStudio runs the frame studio window: capture gestures reshape the
// pending transform, keyboard shortcuts drive capture and playback, and the
// frames republished by the playback timer are rendered as they arrive.
//
// Shortcuts: S save frame, P toggle preview, C close preview, M switch the
// transform mode, R reset, 0-9 select a frame, Escape quit.
func (g *Gui) RunStudio(st *Studio) error {
	g.studio = st
	g.cfg.window.title = "Flipbook - animation studio"

	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Px(float32(g.cfg.window.w)),
		unit.Px(float32(g.cfg.window.h)),
	))

	for {
		select {
		case ev := <-w.Events():
			switch e := ev.(type) {
			case system.FrameEvent:
				g.ctx = layout.NewContext(g.ctx.Ops, e)
				w.Invalidate()

				g.studioPointerEvents()
				g.drawStudio(e)

				e.Frame(g.ctx.Ops)
			case key.Event:
				if e.State != key.Press {
					break
				}
				g.studioKey(w, e.Name)
			case system.DestroyEvent:
				g.studio.ClosePreview()
				return e.Err
			}
		case f := <-g.studio.Player().Frames():
			img, err := f.Image()
			if err != nil {
				continue
			}
			g.playing.img = img
			g.playing.tr = f.Transform
			g.playing.on = true
			w.Invalidate()
		}
	}
}

// studioPointerEvents forwards the pointer gesture to the studio surface.
func (g *Gui) studioPointerEvents() {
	for _, ev := range g.ctx.Events(g) {
		p, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x, y := float64(p.Position.X), float64(p.Position.Y)
		switch p.Type {
		case pointer.Press:
			g.studio.PointerDown(x, y)
		case pointer.Drag:
			g.studio.PointerMove(x, y)
		case pointer.Release:
			if _, err := g.studio.PointerUp(x, y); err == nil {
				g.playing.on = false
			}
		}
	}
}

// studioKey dispatches the studio keyboard shortcuts.
func (g *Gui) studioKey(w *app.Window, name string) {
	switch name {
	case "S":
		if _, err := g.studio.SaveFrame(); err == nil {
			g.playing.on = false
		}
	case "P":
		g.studio.TogglePreview()
		if !g.studio.Player().Running() {
			g.playing.on = false
		}
	case "C":
		g.studio.ClosePreview()
		g.playing.on = false
	case "M":
		g.studio.ToggleMode()
	case "R":
		g.studio.Reset()
		g.playing.on = false
	case key.NameEscape:
		w.Close()
	default:
		if name >= "0" && name <= "9" {
			g.studio.SelectFrame(int(name[0] - '0'))
			g.playing.on = false
		}
	}
}

// drawGame paints the playfield, the two paddles and the ball. The ball is
// drawn at the raw, unclamped simulation position.
func (g *Gui) drawGame(e system.FrameEvent) {
	paint.Fill(g.ctx.Ops, g.setColor(g.cfg.color.background))

	cfg := g.sim.Config()
	g.setFillColor(defaultPaddleColor)
	g.drawRect(0, float32(g.sim.LeftY), float32(cfg.PaddleWidth), float32(cfg.PaddleHeight))
	g.drawRect(float32(cfg.Width-cfg.PaddleWidth), float32(g.sim.RightY), float32(cfg.PaddleWidth), float32(cfg.PaddleHeight))

	g.setFillColor(defaultFillColor)
	g.drawCircle(float32(g.sim.BallX), float32(g.sim.BallY), 6)

	if g.sim.State() == GameOver {
		displayMessage(e, g.ctx,
			color.NRGBA{R: 0x8b, G: 0x1e, B: 0x3d, A: 0xff},
			color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			"Game over!")
	}
	g.registerInput(e.Size)
}

// drawStudio paints the studio surface: during playback the frame under the
// cursor with its recorded transform, otherwise the loaded image under the
// pending gesture transform.
func (g *Gui) drawStudio(e system.FrameEvent) {
	paint.Fill(g.ctx.Ops, g.setColor(g.cfg.color.background))

	img, tr := g.studio.Surface(), g.studio.Pending()
	if g.playing.on && g.studio.Player().Running() {
		img, tr = g.playing.img, g.playing.tr
	}

	if img != nil {
		center := f32.Pt(float32(g.cfg.window.w)/2, float32(g.cfg.window.h)/2)

		stack := op.Affine(tr.Affine(center)).Push(g.ctx.Ops)

		src := paint.NewImageOp(img)
		src.Add(g.ctx.Ops)
		widget.Image{
			Src:   src,
			Scale: 1 / float32(g.ctx.Px(unit.Dp(1))),
			Fit:   widget.Contain,
		}.Layout(g.ctx)

		stack.Pop()
	} else {
		displayMessage(e, g.ctx,
			color.NRGBA{R: 0xf5, G: 0xe4, B: 0xd7, A: 0xff},
			color.NRGBA{R: 0x03, G: 0x12, B: 0x0e, A: 0xff},
			"Load an image to start capturing frames!")
	}
	g.registerInput(e.Size)
}

// registerInput declares the whole window as the pointer input area.
func (g *Gui) registerInput(size image.Point) {
	defer clip.Rect(image.Rectangle{Max: size}).Push(g.ctx.Ops).Pop()
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move,
	}.Add(g.ctx.Ops)
}

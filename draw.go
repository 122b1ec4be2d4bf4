package flipbook

import (
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// drawCircle draws a filled circle at the (x,y) coordinate with the provided radius.
func (g *Gui) drawCircle(x, y, radius float32) {
	bounds := image.Rect(
		int(x-radius), int(y-radius),
		int(x+radius), int(y+radius),
	)

	defer clip.Ellipse(layout.FRect(bounds)).Push(g.ctx.Ops).Pop()
	paint.ColorOp{Color: g.setColor(g.getFillColor())}.Add(g.ctx.Ops)
	paint.PaintOp{}.Add(g.ctx.Ops)
}

// drawRect draws a filled rectangle at the (x,y) coordinate with the provided size.
func (g *Gui) drawRect(x, y, w, h float32) {
	bounds := image.Rect(int(x), int(y), int(x+w), int(y+h))

	defer clip.Rect(bounds).Push(g.ctx.Ops).Pop()
	paint.ColorOp{Color: g.setColor(g.getFillColor())}.Add(g.ctx.Ops)
	paint.PaintOp{}.Add(g.ctx.Ops)
}

// setColor converts a generic color to the Gio NRGBA color.
func (g *Gui) setColor(c color.Color) color.NRGBA {
	rc, gc, bc, ac := c.RGBA()
	return color.NRGBA{
		R: uint8(rc >> 8),
		G: uint8(gc >> 8),
		B: uint8(bc >> 8),
		A: uint8(ac >> 8),
	}
}

// setFillColor sets the paint fill color.
func (g *Gui) setFillColor(c color.Color) {
	g.cfg.color.fill = c
}

// getFillColor retrieve the paint fill color.
func (g *Gui) getFillColor() color.Color {
	return g.cfg.color.fill
}

// displayMessage shows a static message banner across the window.
func displayMessage(e system.FrameEvent, ctx layout.Context, bgcol, fgcol color.NRGBA, msg string) {
	var th = material.NewTheme(gofont.Collection())
	th.Palette.Fg = fgcol
	paint.ColorOp{Color: bgcol}.Add(ctx.Ops)

	rect := image.Rectangle{
		Max: image.Point{X: e.Size.X, Y: e.Size.Y},
	}
	defer clip.Rect(rect).Push(ctx.Ops).Pop()
	paint.PaintOp{}.Add(ctx.Ops)

	layout.Flex{
		Axis:      layout.Horizontal,
		Alignment: layout.Middle,
	}.Layout(ctx,
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(unit.Dp(4)).Layout(ctx, func(gtx C) D {
				return layout.Center.Layout(ctx, func(gtx C) D {
					return material.Label(th, unit.Sp(32), msg).Layout(gtx)
				})
			})
		},
		))
}

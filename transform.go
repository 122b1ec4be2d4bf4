package flipbook

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"gioui.org/f32"
	"github.com/disintegration/imaging"
)

// Transform is the affine transform recorded with a captured frame: a
// translation followed by a rotation and a uniform scaling around the image
// center, the composition a drawing context produces when the operations are
// issued in that order. The angle is expressed in radians.
type Transform struct {
	Tx, Ty float64
	Angle  float64
	Scale  float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// IsIdentity reports whether the transform leaves the image untouched.
func (t Transform) IsIdentity() bool {
	return t.Tx == 0 && t.Ty == 0 && t.Angle == 0 && t.Scale == 1
}

// Apply renders src transformed onto a transparent w×h canvas.
// The rotation and scaling are performed around the image center, then the
// result is drawn centered on the canvas displaced by the translation.
func (t Transform) Apply(src image.Image, w, h int) *image.NRGBA {
	img := imgToNRGBA(src)

	if t.Angle != 0 {
		// imaging rotates counter clockwise in image coordinates; negate so
		// that a positive angle matches the draw-time affine direction.
		img = imaging.Rotate(img, -t.Angle*180/math.Pi, color.Transparent)
	}
	if t.Scale > 0 && t.Scale != 1 {
		sw := int(math.Round(float64(img.Bounds().Dx()) * t.Scale))
		if sw < 1 {
			sw = 1
		}
		img = imaging.Resize(img, sw, 0, imaging.Lanczos)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	origin := image.Pt(
		int(math.Round(float64(w)/2+t.Tx-float64(dx)/2)),
		int(math.Round(float64(h)/2+t.Ty-float64(dy)/2)),
	)
	draw.Draw(dst, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(dx, dy))}, img, image.Point{}, draw.Over)

	return dst
}

// Affine converts the transform to a Gio draw-time operation around the given
// center point.
func (t Transform) Affine(center f32.Point) f32.Affine2D {
	tr := f32.Affine2D{}
	if t.Scale > 0 && t.Scale != 1 {
		tr = tr.Scale(center, f32.Pt(float32(t.Scale), float32(t.Scale)))
	}
	if t.Angle != 0 {
		tr = tr.Rotate(center, float32(t.Angle))
	}
	return tr.Offset(f32.Pt(float32(t.Tx), float32(t.Ty)))
}

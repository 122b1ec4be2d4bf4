package flipbook

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_Identity(t *testing.T) {
	assert := assert.New(t)

	assert.True(Identity().IsIdentity())
	assert.False(Transform{Tx: 1, Scale: 1}.IsIdentity())
	assert.False(Transform{Angle: 0.5, Scale: 1}.IsIdentity())
}

func TestTransform_IdentityApplyKeepsPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 3, color.NRGBA{R: 0xff, A: 0xff})

	out := Identity().Apply(img, 10, 10)

	if _, _, _, a := out.At(2, 3).RGBA(); a == 0 {
		t.Errorf("The identity transform should keep the pixel in place")
	}
}

func TestTransform_TranslateMovesPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.SetNRGBA(2, 3, color.NRGBA{R: 0xff, A: 0xff})

	out := Transform{Tx: 3, Ty: 2, Scale: 1}.Apply(img, 10, 10)

	if _, _, _, a := out.At(5, 5).RGBA(); a == 0 {
		t.Errorf("The translated pixel expected at (5,5)")
	}
	if _, _, _, a := out.At(2, 3).RGBA(); a != 0 {
		t.Errorf("The origin pixel should have moved away")
	}
}

func TestTransform_RotateQuarterTurn(t *testing.T) {
	// The left half is opaque red.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 4; x++ {
		for y := 0; y < 8; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}

	// A positive quarter turn maps the left half onto the top half.
	out := Transform{Angle: math.Pi / 2, Scale: 1}.Apply(img, 8, 8)

	top, bottom := coverage(out, 0, 3), coverage(out, 5, 8)
	if top < 16 {
		t.Errorf("The rotated image expected to cover the top half. Got %v opaque pixels", top)
	}
	if bottom > 0 {
		t.Errorf("The bottom half expected to stay transparent. Got %v opaque pixels", bottom)
	}
}

// coverage counts the opaque pixels of the given row range.
func coverage(img image.Image, y0, y1 int) int {
	var n int
	for y := y0; y < y1; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0x8000 {
				n++
			}
		}
	}
	return n
}

func TestTransform_ScaleFillsCanvas(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}

	out := Transform{Scale: 2}.Apply(img, 8, 8)

	if _, _, _, a := out.At(4, 4).RGBA(); a == 0 {
		t.Errorf("The upscaled image expected to cover the canvas center")
	}
	if _, _, _, a := out.At(0, 0).RGBA(); a == 0 {
		t.Errorf("The upscaled image expected to cover the canvas corner")
	}
}

func TestTransform_AffineTranslation(t *testing.T) {
	assert := assert.New(t)

	tr := Transform{Tx: 10, Ty: -4, Scale: 1}.Affine(f32.Pt(50, 50))
	p := tr.Transform(f32.Pt(1, 2))

	assert.InDelta(11, p.X, 0.001)
	assert.InDelta(-2, p.Y, 0.001)
}

func TestTransform_AffineScaleAroundCenter(t *testing.T) {
	assert := assert.New(t)

	tr := Transform{Scale: 2}.Affine(f32.Pt(50, 50))

	// The center itself is a fixed point of the scaling.
	c := tr.Transform(f32.Pt(50, 50))
	assert.InDelta(50, c.X, 0.001)
	assert.InDelta(50, c.Y, 0.001)

	p := tr.Transform(f32.Pt(60, 50))
	assert.InDelta(70, p.X, 0.001)
}

package flipbook

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExporter_ScaleStepAccumulates(t *testing.T) {
	assert := assert.New(t)

	// An opaque red source covering the whole canvas.
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	var in bytes.Buffer
	assert.NoError(png.Encode(&in, src))

	e := &Exporter{
		Width:    16,
		Height:   16,
		Frames:   2,
		Step:     Transform{Scale: 0.5},
		Interval: 10 * time.Millisecond,
	}

	var out bytes.Buffer
	assert.NoError(e.export(&in, &out))

	anim, err := gif.DecodeAll(&out)
	assert.NoError(err)
	assert.Len(anim.Image, 2)

	// The first frame fills the corner, the shrunk second frame does not.
	first := anim.Image[0].At(0, 0)
	second := anim.Image[1].At(0, 0)
	if first == second {
		t.Errorf("The scale step expected to shrink the second frame away from the corner")
	}

	r, _, _, _ := first.RGBA()
	assert.Equal(uint32(0xffff), r)
}

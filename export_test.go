package flipbook

import (
	"bytes"
	"image"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExport_EncodeGIF(t *testing.T) {
	assert := assert.New(t)

	seq := NewSequence()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < 3; i++ {
		_, err := seq.Append(img, Transform{Tx: float64(i), Scale: 1})
		assert.NoError(err)
	}

	var buf bytes.Buffer
	err := EncodeGIF(&buf, seq, 16, 16, DefaultInterval)
	assert.NoError(err)

	out, err := gif.DecodeAll(&buf)
	assert.NoError(err)
	assert.Len(out.Image, 3)

	for _, d := range out.Delay {
		assert.Equal(50, d)
	}
	for _, frame := range out.Image {
		assert.Equal(16, frame.Bounds().Dx())
		assert.Equal(16, frame.Bounds().Dy())
	}
}

func TestExport_EmptySequence(t *testing.T) {
	var buf bytes.Buffer

	if err := EncodeGIF(&buf, NewSequence(), 16, 16, DefaultInterval); err == nil {
		t.Errorf("Exporting an empty sequence should fail")
	}
}

func TestExport_DelayFallback(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := EncodeGIF(&buf, newTestSequence(t, 2), 4, 4, time.Duration(0))
	assert.NoError(err)

	out, err := gif.DecodeAll(&buf)
	assert.NoError(err)
	assert.Equal([]int{50, 50}, out.Delay)
}

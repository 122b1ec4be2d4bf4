package flipbook

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/pkg/errors"
)

// EncodeGIF renders the captured sequence into an animated GIF, drawing every
// frame with its recorded transform and using the playback period as the
// inter-frame delay.
func EncodeGIF(w io.Writer, seq *Sequence, width, height int, delay time.Duration) error {
	if seq.Len() == 0 {
		return errors.New("cannot export an empty sequence")
	}
	if delay <= 0 {
		delay = DefaultInterval
	}
	// The GIF delay unit is a hundredth of a second.
	d := int(delay / (10 * time.Millisecond))

	out := &gif.GIF{}
	for _, f := range seq.Frames() {
		src, err := f.Image()
		if err != nil {
			return err
		}
		rendered := f.Transform.Apply(src, width, height)

		pal := image.NewPaletted(rendered.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, rendered.Bounds(), rendered, image.Point{})

		out.Image = append(out.Image, pal)
		out.Delay = append(out.Delay, d)
	}

	return gif.EncodeAll(w, out)
}

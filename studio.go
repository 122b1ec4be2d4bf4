package flipbook

import (
	"image"
	"io"
	"math"
	"time"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"

	"github.com/esimov/flipbook/utils"
)

// TransformMode selects how a drag gesture over the studio surface is
// interpreted.
type TransformMode int

const (
	// ModeMove interprets drags as planar translation.
	ModeMove TransformMode = iota
	// ModeRotate interprets drags as rotation around the surface center.
	ModeRotate
)

// Studio is the frame capture surface: it owns the loaded source image, the
// pending transform being shaped by the current gesture, the captured frame
// sequence and the playback loop. All state is driven from the GUI event
// loop.
type Studio struct {
	Width, Height int

	seq    *Sequence
	player *Player
	relay  *Relay

	source  image.Image
	mode    TransformMode
	pending Transform

	selected int

	drag struct {
		active     bool
		x, y       float64
		startAngle float64
		base       Transform
	}

	faceDetector *pigo.Pigo
}

// NewStudio instantiates the studio with an empty sequence.
func NewStudio(w, h int, interval time.Duration) *Studio {
	seq := NewSequence()
	st := &Studio{
		Width:    w,
		Height:   h,
		seq:      seq,
		player:   NewPlayer(seq, interval),
		relay:    NewRelay(1),
		pending:  Identity(),
		selected: -1,
	}
	st.relay.Start()

	return st
}

// Sequence exposes the captured frames.
func (st *Studio) Sequence() *Sequence {
	return st.seq
}

// Player exposes the playback loop.
func (st *Studio) Player() *Player {
	return st.player
}

// Relay exposes the pass-through post-processing stage.
func (st *Studio) Relay() *Relay {
	return st.relay
}

// Surface returns the loaded source image, which may be nil.
func (st *Studio) Surface() image.Image {
	return st.source
}

// Pending returns the transform shaped by the gesture in progress.
func (st *Studio) Pending() Transform {
	return st.pending
}

// Mode returns the active gesture interpretation.
func (st *Studio) Mode() TransformMode {
	return st.mode
}

// SetMode switches between the planar move and rotate gesture modes.
func (st *Studio) SetMode(m TransformMode) {
	st.mode = m
}

// ToggleMode flips between the two gesture modes.
func (st *Studio) ToggleMode() {
	if st.mode == ModeMove {
		st.mode = ModeRotate
	} else {
		st.mode = ModeMove
	}
}

// SetCascade unpacks the pigo cascade classifier used for the face aware
// image fitting.
func (st *Studio) SetCascade(data []byte) error {
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return errors.Wrap(err, "error unpacking the cascade file")
	}
	st.faceDetector = classifier

	return nil
}

// LoadImage decodes an image and makes it the first frame of a fresh
// sequence, recorded with the identity transform. A running playback is
// cancelled since the frame data changes.
func (st *Studio) LoadImage(r io.Reader) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}
	st.player.Stop()
	st.seq.Reset()

	st.source = st.fit(imgToNRGBA(src))
	st.pending = Identity()

	f, err := st.seq.Append(st.source, Identity())
	if err != nil {
		return err
	}
	st.selected = 0
	st.relay.Publish(f)

	return nil
}

// fit scales the source image onto the studio canvas. When a face detector
// is configured and finds a face, the crop window is centered on it instead
// of the image center.
func (st *Studio) fit(img *image.NRGBA) image.Image {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if dx == st.Width && dy == st.Height {
		return img
	}

	scale := math.Max(float64(st.Width)/float64(dx), float64(st.Height)/float64(dy))
	img = imaging.Resize(img, int(math.Round(float64(dx)*scale)), 0, imaging.Lanczos)

	cx, cy := img.Bounds().Dx()/2, img.Bounds().Dy()/2
	if face, ok := st.detectFace(img); ok {
		cx, cy = face.X, face.Y
	}

	x0 := utils.Min(utils.Max(cx-st.Width/2, 0), img.Bounds().Dx()-st.Width)
	y0 := utils.Min(utils.Max(cy-st.Height/2, 0), img.Bounds().Dy()-st.Height)

	return imaging.Crop(img, image.Rect(x0, y0, x0+st.Width, y0+st.Height))
}

// detectFace runs the cascade classifier over the image and returns the
// center of the dominant detection.
func (st *Studio) detectFace(img *image.NRGBA) (image.Point, bool) {
	if st.faceDetector == nil {
		return image.Point{}, false
	}
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	faces := st.faceDetector.RunCascade(cParams, 0.0)
	faces = st.faceDetector.ClusterDetections(faces, 0.2)
	if len(faces) == 0 {
		return image.Point{}, false
	}

	best := faces[0]
	for _, f := range faces[1:] {
		if f.Q > best.Q {
			best = f
		}
	}
	return image.Pt(best.Col, best.Row), true
}

// PointerDown begins a transform gesture at the given surface coordinate.
func (st *Studio) PointerDown(x, y float64) {
	st.drag.active = true
	st.drag.x, st.drag.y = x, y
	st.drag.base = st.pending
	st.drag.startAngle = st.angleAt(x, y)
}

// PointerMove extends the gesture in progress, reshaping the pending
// transform according to the active mode. Moves without a preceding press
// are ignored.
func (st *Studio) PointerMove(x, y float64) {
	if !st.drag.active {
		return
	}
	switch st.mode {
	case ModeMove:
		st.pending.Tx = st.drag.base.Tx + x - st.drag.x
		st.pending.Ty = st.drag.base.Ty + y - st.drag.y
	case ModeRotate:
		st.pending.Angle = st.drag.base.Angle + st.angleAt(x, y) - st.drag.startAngle
	}
}

// PointerUp ends the gesture and captures the surface with the pending
// transform recorded alongside.
func (st *Studio) PointerUp(x, y float64) (Frame, error) {
	if !st.drag.active {
		return Frame{}, errors.New("no capture gesture in progress")
	}
	st.PointerMove(x, y)
	st.drag.active = false

	return st.SaveFrame()
}

// angleAt returns the angle of the given point relative to the surface
// center.
func (st *Studio) angleAt(x, y float64) float64 {
	return math.Atan2(y-float64(st.Height)/2, x-float64(st.Width)/2)
}

// SaveFrame serializes the current surface into a new frame, recording the
// pending transform alongside. A running playback is cancelled since the
// frame data changes.
func (st *Studio) SaveFrame() (Frame, error) {
	if st.source == nil {
		return Frame{}, errors.New("no image loaded onto the studio surface")
	}
	st.player.Stop()

	f, err := st.seq.Append(st.source, st.pending)
	if err != nil {
		return Frame{}, err
	}
	st.selected = st.seq.Len() - 1
	st.relay.Publish(f)

	return f, nil
}

// SelectFrame moves the selection to the frame at the given index and adopts
// its recorded transform as the pending one.
func (st *Studio) SelectFrame(idx int) (Frame, bool) {
	f, ok := st.seq.Frame(idx)
	if !ok {
		return Frame{}, false
	}
	st.selected = idx
	st.pending = f.Transform

	return f, true
}

// Selected returns the index of the selected frame, or -1.
func (st *Studio) Selected() int {
	return st.selected
}

// TogglePreview starts the playback loop, or stops it when already running.
// With no captured frames no timer is started.
func (st *Studio) TogglePreview() {
	if st.player.Running() {
		st.player.Stop()
		return
	}
	st.player.Start()
}

// ClosePreview halts the playback and resets the cursor.
func (st *Studio) ClosePreview() {
	st.player.Stop()
}

// Reset cancels the playback and drops the surface together with every
// captured frame.
func (st *Studio) Reset() {
	st.player.Stop()
	st.seq.Reset()
	st.source = nil
	st.pending = Identity()
	st.selected = -1
	st.drag.active = false
}

package flipbook

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"

	"github.com/pkg/errors"
)

// dataURLPrefix is the payload header a browser canvas produces.
const dataURLPrefix = "data:image/png;base64,"

// Frame is one captured snapshot of the drawing surface: an identifier, the
// serialized bitmap payload and the affine transform recorded at capture
// time. Frames are immutable once captured.
type Frame struct {
	ID        int
	Payload   string
	Transform Transform
}

// Image decodes the frame payload back into a bitmap.
func (f Frame) Image() (image.Image, error) {
	if !strings.HasPrefix(f.Payload, dataURLPrefix) {
		return nil, errors.New("frame payload is not a PNG data URL")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(f.Payload, dataURLPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the frame payload")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the frame bitmap")
	}
	return img, nil
}

// encodeDataURL serializes a bitmap the way canvas.toDataURL does.
func encodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(err, "could not encode the frame bitmap")
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Sequence is the ordered, append-only list of captured frames.
// Frames are never mutated after capture and are removed only by Reset.
type Sequence struct {
	frames []Frame
	nextID int
}

// NewSequence returns an empty frame sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Append captures the image into a new frame at the end of the sequence and
// returns it. The sequence length strictly increases by one per call.
func (s *Sequence) Append(img image.Image, tr Transform) (Frame, error) {
	payload, err := encodeDataURL(img)
	if err != nil {
		return Frame{}, err
	}
	f := Frame{
		ID:        s.nextID,
		Payload:   payload,
		Transform: tr,
	}
	s.frames = append(s.frames, f)
	s.nextID++

	return f, nil
}

// Len returns the number of captured frames.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// Frame returns the frame at the given index.
func (s *Sequence) Frame(idx int) (Frame, bool) {
	if idx < 0 || idx >= len(s.frames) {
		return Frame{}, false
	}
	return s.frames[idx], true
}

// Frames returns a copy of the captured frames in capture order.
func (s *Sequence) Frames() []Frame {
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Reset drops all captured frames. This is the only way frames are removed.
func (s *Sequence) Reset() {
	s.frames = nil
	s.nextID = 0
}

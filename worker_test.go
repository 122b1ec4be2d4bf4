package flipbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelay_IdentityPassThrough(t *testing.T) {
	assert := assert.New(t)

	r := NewRelay(1)
	r.Start()
	defer r.Stop()

	seq := newTestSequence(t, 1)
	f, _ := seq.Frame(0)
	assert.True(r.Publish(f))

	select {
	case got := <-r.Frames():
		assert.Equal(f.ID, got.ID)
		assert.Equal(f.Payload, got.Payload)
		assert.Equal(f.Transform, got.Transform)
	case <-time.After(2 * time.Second):
		t.Fatal("the relay did not forward the frame")
	}
}

func TestRelay_FullInboxDropsFrames(t *testing.T) {
	// Without a running relay goroutine only the channel capacity is
	// available.
	r := NewRelay(1)

	if !r.Publish(Frame{ID: 0}) {
		t.Errorf("The first publish should be accepted")
	}
	if r.Publish(Frame{ID: 1}) {
		t.Errorf("A full inbox should drop the frame instead of blocking")
	}
}

package flipbook

import (
	"sync"
	"time"
)

// DefaultInterval is the fixed playback period of the flipbook preview.
const DefaultInterval = 500 * time.Millisecond

// Player cycles through a frame sequence on a fixed interval and republishes
// the frame under the cursor. Stopping the playback halts the timer and
// resets the cursor to zero. An empty sequence never starts a timer.
type Player struct {
	mu       *sync.RWMutex
	seq      *Sequence
	interval time.Duration
	cursor   int
	running  bool
	stopChan chan struct{}
	frames   chan Frame
}

// NewPlayer instantiates a playback loop over the given sequence.
// A non-positive interval falls back to DefaultInterval.
func NewPlayer(seq *Sequence, interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{
		mu:       &sync.RWMutex{},
		seq:      seq,
		interval: interval,
		frames:   make(chan Frame, 1),
	}
}

// Frames is the channel on which the player republishes the frame under the
// cursor on every timer tick. Slow consumers simply miss ticks.
func (p *Player) Frames() <-chan Frame {
	return p.frames
}

// Cursor returns the current playback index.
func (p *Player) Cursor() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.cursor
}

// Running reports whether the playback timer is active.
func (p *Player) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.running
}

// Advance moves the cursor one position forward, modulo the sequence length,
// and returns the frame it now points at. On an empty sequence it reports
// false and leaves the cursor untouched.
func (p *Player) Advance() (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.advance()
}

// advance implements Advance. Caller must hold the locker.
func (p *Player) advance() (Frame, bool) {
	n := p.seq.Len()
	if n == 0 {
		return Frame{}, false
	}
	p.cursor = (p.cursor + 1) % n
	f, ok := p.seq.Frame(p.cursor)

	return f, ok
}

// Start begins the playback timer. It reports whether a timer was actually
// started: an empty sequence or an already running player is a silent no-op.
func (p *Player) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || p.seq.Len() == 0 {
		return false
	}
	p.running = true
	p.stopChan = make(chan struct{})

	go p.loop(p.stopChan)

	return true
}

func (p *Player) loop(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			// A tick dequeued before Stop ran must not advance a stopped
			// player, nor one belonging to a later Start.
			if !p.running || p.stopChan != stop {
				p.mu.Unlock()
				return
			}
			f, ok := p.advance()
			p.mu.Unlock()
			if !ok {
				continue
			}
			// Drop the tick if the consumer is behind.
			select {
			case p.frames <- f:
			default:
			}
		}
	}
}

// Stop halts the playback timer and resets the cursor to zero.
// Stopping an idle player is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.stopChan)
	p.running = false
	p.cursor = 0
}

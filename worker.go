package flipbook

// Relay is an off-thread frame post-processing stage. The stock relay applies
// the identity transform and forwards the payload bytes unchanged; it exists
// purely as an extension point for heavier per-frame processing.
type Relay struct {
	in       chan Frame
	out      chan Frame
	stopChan chan struct{}
}

// NewRelay instantiates a pass-through relay with the given channel capacity.
func NewRelay(size int) *Relay {
	return &Relay{
		in:       make(chan Frame, size),
		out:      make(chan Frame, size),
		stopChan: make(chan struct{}),
	}
}

// Start spawns the relay goroutine.
func (r *Relay) Start() {
	go func() {
		for {
			select {
			case <-r.stopChan:
				return
			case f := <-r.in:
				// Identity transform: the payload is forwarded unchanged.
				// Ticks are dropped if the consumer is behind.
				select {
				case r.out <- f:
				default:
				}
			}
		}
	}()
}

// Publish hands a frame to the relay. It reports whether the frame was
// accepted; a full inbox drops the frame rather than blocking the caller.
func (r *Relay) Publish(f Frame) bool {
	select {
	case r.in <- f:
		return true
	default:
		return false
	}
}

// Frames is the relay output channel.
func (r *Relay) Frames() <-chan Frame {
	return r.out
}

// Stop terminates the relay goroutine.
func (r *Relay) Stop() {
	close(r.stopChan)
}

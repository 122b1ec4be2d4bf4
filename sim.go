package flipbook

import (
	"github.com/esimov/flipbook/utils"
)

// GameState describes the simulation lifecycle.
type GameState int

const (
	// Playing is the initial and only active state.
	Playing GameState = iota
	// Paused is declared for API completeness but no transition reaches it.
	Paused
	// GameOver is terminal: once entered the simulation no longer advances.
	GameOver
)

// SimConfig holds the geometry and speed parameters of the ball game.
type SimConfig struct {
	Width        float64
	Height       float64
	PaddleWidth  float64
	PaddleHeight float64
	PaddleSpeed  float64
	BallVX       float64
	BallVY       float64
}

// DefaultSimConfig returns the canvas geometry the game starts with.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Width:        480,
		Height:       300,
		PaddleWidth:  10,
		PaddleHeight: 60,
		PaddleSpeed:  12,
		BallVX:       3,
		BallVY:       3,
	}
}

// Simulation owns the ball position and velocity together with the two paddle
// offsets. It is advanced once per animation tick by calling Step and is only
// ever touched from the GUI event loop, so no locking is involved.
type Simulation struct {
	cfg SimConfig

	BallX, BallY float64
	VelX, VelY   float64

	// LeftY is the keyboard driven paddle, RightY tracks the pointer.
	LeftY, RightY float64

	state GameState
}

// NewSimulation centers the ball and both paddles on the playfield.
func NewSimulation(cfg SimConfig) *Simulation {
	return &Simulation{
		cfg:    cfg,
		BallX:  cfg.Width / 2,
		BallY:  cfg.Height / 2,
		VelX:   cfg.BallVX,
		VelY:   cfg.BallVY,
		LeftY:  (cfg.Height - cfg.PaddleHeight) / 2,
		RightY: (cfg.Height - cfg.PaddleHeight) / 2,
		state:  Playing,
	}
}

// Config returns the simulation geometry.
func (s *Simulation) Config() SimConfig {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Simulation) State() GameState {
	return s.state
}

// Step advances the simulation by one tick: a pure Euler step followed by the
// wall and paddle checks. The ball position itself is never clamped, only the
// velocity signs change. Once the game is over the call is a no-op.
func (s *Simulation) Step() {
	if s.state != Playing {
		return
	}

	s.BallX += s.VelX
	s.BallY += s.VelY

	// The vertical velocity flips only when the ball leaves the playfield,
	// the boundary values 0 and Height themselves do not count as outside.
	if s.BallY < 0 || s.BallY > s.cfg.Height {
		s.VelY = -s.VelY
	}

	// Contact is coordinate-only: reaching a paddle plane with the ball y
	// within the paddle span deflects the ball, anything else ends the game.
	switch {
	case s.BallX <= s.cfg.PaddleWidth:
		s.deflect(s.LeftY)
	case s.BallX >= s.cfg.Width-s.cfg.PaddleWidth:
		s.deflect(s.RightY)
	}
}

func (s *Simulation) deflect(paddleY float64) {
	if s.BallY >= paddleY && s.BallY <= paddleY+s.cfg.PaddleHeight {
		s.VelX = -s.VelX
		return
	}
	s.state = GameOver
}

// MovePaddle moves the keyboard paddle by one discrete step in the given
// direction (-1 up, +1 down), clamped to the playfield.
func (s *Simulation) MovePaddle(dir float64) {
	s.LeftY = s.clampPaddle(s.LeftY + dir*s.cfg.PaddleSpeed)
}

// TrackPaddle sets the pointer driven paddle offset directly, with the same
// clamp as the keyboard paddle.
func (s *Simulation) TrackPaddle(y float64) {
	s.RightY = s.clampPaddle(y)
}

func (s *Simulation) clampPaddle(y float64) float64 {
	return utils.Min(utils.Max(y, 0), s.cfg.Height-s.cfg.PaddleHeight)
}

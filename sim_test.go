package flipbook

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSim() *Simulation {
	return NewSimulation(SimConfig{
		Width:        480,
		Height:       300,
		PaddleWidth:  10,
		PaddleHeight: 60,
		PaddleSpeed:  12,
		BallVX:       3,
		BallVY:       3,
	})
}

func TestSim_StepIsPureEulerStep(t *testing.T) {
	assert := assert.New(t)

	sim := newTestSim()
	sim.BallX, sim.BallY = 100, 100
	sim.VelX, sim.VelY = 5, -2

	sim.Step()

	assert.Equal(105.0, sim.BallX)
	assert.Equal(98.0, sim.BallY)
	assert.Equal(Playing, sim.State())
}

func TestSim_VerticalBounce(t *testing.T) {
	testCases := []struct {
		name     string
		y, vy    float64
		expectY  float64
		expectVy float64
	}{
		{name: "inside playfield", y: 100, vy: 3, expectY: 103, expectVy: 3},
		{name: "bottom boundary exact", y: 297, vy: 3, expectY: 300, expectVy: 3},
		{name: "beyond bottom", y: 299, vy: 3, expectY: 302, expectVy: -3},
		{name: "top boundary exact", y: 3, vy: -3, expectY: 0, expectVy: -3},
		{name: "beyond top", y: 2, vy: -3, expectY: -1, expectVy: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sim := newTestSim()
			sim.BallX, sim.VelX = 240, 3
			sim.BallY, sim.VelY = tc.y, tc.vy

			sim.Step()

			if sim.BallY != tc.expectY {
				t.Errorf("Ball y position expected to be %v. Got %v", tc.expectY, sim.BallY)
			}
			if sim.VelY != tc.expectVy {
				t.Errorf("Ball y velocity expected to be %v. Got %v", tc.expectVy, sim.VelY)
			}
		})
	}
}

// The ball itself is never clamped: leaving the playfield flips the velocity
// sign while the first frame still renders the out-of-range position.
func TestSim_BallPositionIsNotClamped(t *testing.T) {
	assert := assert.New(t)

	sim := newTestSim()
	sim.BallX, sim.VelX = 240, 3
	sim.BallY, sim.VelY = 295, 3

	sim.Step()
	assert.Equal(298.0, sim.BallY)
	assert.Equal(3.0, sim.VelY)

	sim.BallY = 299
	sim.Step()
	assert.Equal(302.0, sim.BallY)
	assert.Equal(-3.0, sim.VelY)

	sim.Step()
	assert.Equal(299.0, sim.BallY)
}

func TestSim_PaddleDeflection(t *testing.T) {
	assert := assert.New(t)

	sim := newTestSim()
	sim.LeftY = 80
	sim.BallX, sim.VelX = 12, -3
	sim.BallY, sim.VelY = 100, 0

	sim.Step()

	assert.Equal(9.0, sim.BallX)
	assert.Equal(3.0, sim.VelX)
	assert.Equal(Playing, sim.State())
}

func TestSim_GameOverTransition(t *testing.T) {
	assert := assert.New(t)

	sim := newTestSim()
	sim.LeftY = 200
	sim.BallX, sim.VelX = 12, -3
	sim.BallY, sim.VelY = 50, 0

	sim.Step()
	assert.Equal(GameOver, sim.State())

	// The transition is one-way and the simulation freezes in place.
	x, y := sim.BallX, sim.BallY
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	assert.Equal(GameOver, sim.State())
	assert.Equal(x, sim.BallX)
	assert.Equal(y, sim.BallY)
}

func TestSim_RightPaddleGameOver(t *testing.T) {
	sim := newTestSim()
	sim.RightY = 0
	sim.BallX, sim.VelX = 468, 3
	sim.BallY, sim.VelY = 200, 0

	sim.Step()

	if sim.State() != GameOver {
		t.Errorf("Missing the right paddle should end the game. Got %v", sim.State())
	}
}

func TestSim_PaddleClamp(t *testing.T) {
	sim := newTestSim()
	maxY := sim.Config().Height - sim.Config().PaddleHeight

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if rng.Intn(2) == 0 {
			sim.MovePaddle(-1)
		} else {
			sim.MovePaddle(1)
		}
		if sim.LeftY < 0 || sim.LeftY > maxY {
			t.Fatalf("Paddle offset expected to stay within [0, %v]. Got %v", maxY, sim.LeftY)
		}
	}

	sim.TrackPaddle(-1000)
	if sim.RightY != 0 {
		t.Errorf("Tracked paddle expected to clamp to 0. Got %v", sim.RightY)
	}
	sim.TrackPaddle(1000)
	if sim.RightY != maxY {
		t.Errorf("Tracked paddle expected to clamp to %v. Got %v", maxY, sim.RightY)
	}
}

package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pong/components"
)

func testBallParams() BallParams {
	return BallParams{
		FieldWidth:     800,
		FieldHeight:    600,
		InitialSpeed:   6,
		MaxSpeed:       12,
		SpeedIncrement: 0.35,
		BounceAngle:    float32(0.45 * math.Pi),
		ServeAngle:     float32(0.35 * math.Pi),
	}
}

// paddlesOutOfPlay returns both paddles parked where the ball cannot reach them.
func paddlesOutOfPlay() (components.Position, components.Paddle, components.Position, components.Paddle) {
	left := components.Paddle{Side: components.SideLeft, Width: 12, Height: 100, Speed: 7}
	right := components.Paddle{Side: components.SideRight, Width: 12, Height: 100, Speed: 6}
	return components.Position{X: -500, Y: 0}, left, components.Position{X: 1300, Y: 0}, right
}

func speedOf(vel components.Velocity) float64 {
	return math.Hypot(float64(vel.X), float64(vel.Y))
}

func TestStepBall_TopWallFlipsVyOnce(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	lp, l, rp, r := paddlesOutOfPlay()

	pos := components.Position{X: 400, Y: 2}
	vel := components.Velocity{X: 3, Y: -5}
	ball := components.Ball{Size: 12, Speed: 6}

	res := StepBall(&pos, &vel, &ball, lp, l, rp, r, p, rng)

	if !res.WallBounce {
		t.Error("expected wall bounce")
	}
	if pos.Y != 0 {
		t.Errorf("expected y clamped to 0, got %f", pos.Y)
	}
	if vel.Y != 5 {
		t.Errorf("expected vy flipped to +5, got %f", vel.Y)
	}
}

func TestStepBall_BottomWallFlipsVyOnce(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	lp, l, rp, r := paddlesOutOfPlay()

	pos := components.Position{X: 400, Y: 585}
	vel := components.Velocity{X: 3, Y: 5}
	ball := components.Ball{Size: 12, Speed: 6}

	res := StepBall(&pos, &vel, &ball, lp, l, rp, r, p, rng)

	if !res.WallBounce {
		t.Error("expected wall bounce")
	}
	if pos.Y != p.FieldHeight-ball.Size {
		t.Errorf("expected y clamped to %f, got %f", p.FieldHeight-ball.Size, pos.Y)
	}
	if vel.Y != -5 {
		t.Errorf("expected vy flipped to -5, got %f", vel.Y)
	}
}

func TestStepBall_PaddleBounceReflectsAndAccelerates(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	_, l, rp, r := paddlesOutOfPlay()
	leftPos := components.Position{X: 32, Y: 250}

	// Ball dead-center on the left paddle, moving left.
	pos := components.Position{X: 46, Y: 294}
	vel := components.Velocity{X: -6, Y: 0}
	ball := components.Ball{Size: 12, Speed: 6}
	preSpeed := speedOf(vel)

	res := StepBall(&pos, &vel, &ball, leftPos, l, rp, r, p, rng)

	if !res.PaddleHit || res.PaddleSide != components.SideLeft {
		t.Fatalf("expected left paddle hit, got %+v", res)
	}
	if vel.X <= 0 {
		t.Errorf("expected vx reflected positive, got %f", vel.X)
	}
	if pos.X != leftPos.X+l.Width {
		t.Errorf("expected ball pushed flush to paddle face at x=%f, got %f", leftPos.X+l.Width, pos.X)
	}
	post := speedOf(vel)
	if post < preSpeed {
		t.Errorf("speed decreased on bounce: %f -> %f", preSpeed, post)
	}
	if math.Abs(post-6.35) > 1e-4 {
		t.Errorf("expected speed 6.35 after one hit, got %f", post)
	}
}

func TestStepBall_PaddleBounceCappedAtMaxSpeed(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	_, l, rp, r := paddlesOutOfPlay()
	leftPos := components.Position{X: 32, Y: 250}

	pos := components.Position{X: 46, Y: 294}
	vel := components.Velocity{X: -11.9, Y: 0}
	ball := components.Ball{Size: 12, Speed: 11.9}

	StepBall(&pos, &vel, &ball, leftPos, l, rp, r, p, rng)

	if ball.Speed != p.MaxSpeed {
		t.Errorf("expected speed capped at %f, got %f", p.MaxSpeed, ball.Speed)
	}
	if got := speedOf(vel); math.Abs(got-float64(p.MaxSpeed)) > 1e-4 {
		t.Errorf("velocity magnitude %f does not match capped speed %f", got, p.MaxSpeed)
	}
}

func TestStepBall_EdgeHitDeflectsVertically(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	_, l, rp, r := paddlesOutOfPlay()
	leftPos := components.Position{X: 32, Y: 250}

	// Contact near the paddle's top edge: negative offset, upward deflection.
	pos := components.Position{X: 46, Y: 248}
	vel := components.Velocity{X: -6, Y: 0}
	ball := components.Ball{Size: 12, Speed: 6}

	StepBall(&pos, &vel, &ball, leftPos, l, rp, r, p, rng)

	if vel.Y >= 0 {
		t.Errorf("expected upward deflection from top-edge hit, got vy=%f", vel.Y)
	}
	if vel.X <= 0 {
		t.Errorf("expected vx reflected positive, got %f", vel.X)
	}
}

func TestStepBall_NoBounceWhenMovingAway(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	_, l, rp, r := paddlesOutOfPlay()
	leftPos := components.Position{X: 32, Y: 250}

	// Ball overlapping the left paddle but already moving right.
	pos := components.Position{X: 36, Y: 294}
	vel := components.Velocity{X: 6, Y: 0}
	ball := components.Ball{Size: 12, Speed: 6}

	res := StepBall(&pos, &vel, &ball, leftPos, l, rp, r, p, rng)

	if res.PaddleHit {
		t.Error("ball moving away from paddle must not bounce")
	}
	if vel.X != 6 {
		t.Errorf("velocity changed without a hit: vx=%f", vel.X)
	}
}

func TestStepBall_LeftExitScoresRightAndResets(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	lp, l, rp, r := paddlesOutOfPlay()

	pos := components.Position{X: -7, Y: 300}
	vel := components.Velocity{X: -6, Y: 0}
	ball := components.Ball{Size: 12, Speed: 9}

	res := StepBall(&pos, &vel, &ball, lp, l, rp, r, p, rng)

	if !res.Scored || res.Scorer != components.SideRight {
		t.Fatalf("expected right side to score, got %+v", res)
	}
	if pos.X != p.FieldWidth/2-ball.Size/2 || pos.Y != p.FieldHeight/2-ball.Size/2 {
		t.Errorf("ball not reset to center: (%f, %f)", pos.X, pos.Y)
	}
	if ball.Speed != p.InitialSpeed {
		t.Errorf("expected reset to initial speed %f, got %f", p.InitialSpeed, ball.Speed)
	}
	if vel.X >= 0 {
		t.Errorf("expected serve toward conceding (left) side, got vx=%f", vel.X)
	}
}

func TestStepBall_RightExitScoresLeft(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(1))
	lp, l, rp, r := paddlesOutOfPlay()

	pos := components.Position{X: 795, Y: 300}
	vel := components.Velocity{X: 6, Y: 0}
	ball := components.Ball{Size: 12, Speed: 9}

	res := StepBall(&pos, &vel, &ball, lp, l, rp, r, p, rng)

	if !res.Scored || res.Scorer != components.SideLeft {
		t.Fatalf("expected left side to score, got %+v", res)
	}
	if vel.X <= 0 {
		t.Errorf("expected serve toward conceding (right) side, got vx=%f", vel.X)
	}
}

func TestServeBall_AngleWithinRange(t *testing.T) {
	p := testBallParams()
	rng := rand.New(rand.NewSource(7))
	maxSin := math.Sin(float64(p.ServeAngle))

	for i := 0; i < 1000; i++ {
		pos := components.Position{}
		vel := components.Velocity{}
		ball := components.Ball{Size: 12}

		dir := float32(1)
		if i%2 == 0 {
			dir = -1
		}
		ServeBall(&pos, &vel, &ball, dir, p, rng)

		speed := speedOf(vel)
		if math.Abs(speed-float64(p.InitialSpeed)) > 1e-4 {
			t.Fatalf("serve speed %f, want %f", speed, p.InitialSpeed)
		}
		if dir > 0 && vel.X <= 0 || dir < 0 && vel.X >= 0 {
			t.Fatalf("serve direction mismatch: dir=%f vx=%f", dir, vel.X)
		}
		if math.Abs(float64(vel.Y))/speed > maxSin+1e-6 {
			t.Fatalf("serve angle out of range: vy=%f speed=%f", vel.Y, speed)
		}
	}
}

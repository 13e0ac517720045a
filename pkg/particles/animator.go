package particles

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNotRunning is returned by frame operations outside the Running state.
	ErrNotRunning = errors.New("particles: animator is not running")
	// ErrAlreadyRunning is returned when Mount is called on a running animator.
	ErrAlreadyRunning = errors.New("particles: animator is already running")
	// ErrInvalidBounds is returned for non-positive or non-finite viewport sizes.
	ErrInvalidBounds = errors.New("particles: invalid viewport bounds")
	// ErrNilScheduler is returned by Start without a scheduler or canvas.
	ErrNilScheduler = errors.New("particles: scheduler and canvas are required")
)

// State is the animator lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateTornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Particle is a point with a per-frame velocity.
type Particle struct {
	X, Y   float64
	VX, VY float64
}

// Link joins two particles closer than the link distance.
type Link struct {
	A, B     int
	Distance float64
	// Strength is 1 at distance zero and falls linearly to 0 at the link
	// distance.
	Strength float64
}

// Option configures an Animator.
type Option func(*Animator)

// WithRand sets the random source used to seed particles.
func WithRand(rng *rand.Rand) Option {
	return func(a *Animator) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Animator) {
		a.logger = logger
	}
}

// WithParticles pre-populates the particle set. Mount keeps a populated set
// instead of reseeding it.
func WithParticles(ps []Particle) Option {
	return func(a *Animator) {
		a.particles = append([]Particle(nil), ps...)
	}
}

// Animator owns the particle set and steps it once per frame. It is not safe
// for concurrent use: call it from the goroutine that runs frames.
type Animator struct {
	cfg    Config
	rng    *rand.Rand
	logger zerolog.Logger

	state         State
	width, height float64
	particles     []Particle

	scheduler  Scheduler
	canvas     Canvas
	pending    FrameID
	hasPending bool
}

// New returns an uninitialized animator.
func New(cfg Config, options ...Option) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Animator{
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a, nil
}

// Config returns the animator configuration.
func (a *Animator) Config() Config {
	return a.cfg
}

// State reports the lifecycle state.
func (a *Animator) State() State {
	return a.state
}

// Bounds returns the current viewport size.
func (a *Animator) Bounds() (width, height float64) {
	return a.width, a.height
}

// Particles returns a copy of the particle set.
func (a *Animator) Particles() []Particle {
	return append([]Particle(nil), a.particles...)
}

// Mount sizes the viewport, seeds the particle set when it is empty and
// enters Running.
func (a *Animator) Mount(width, height float64) error {
	if a.state == StateRunning {
		return ErrAlreadyRunning
	}
	if err := checkBounds(width, height); err != nil {
		return err
	}
	a.width, a.height = width, height
	if len(a.particles) == 0 {
		a.seed()
	}
	a.state = StateRunning
	a.logger.Debug().
		Int("particles", len(a.particles)).
		Float64("width", width).
		Float64("height", height).
		Msg("particles mounted")
	return nil
}

func (a *Animator) seed() {
	a.particles = make([]Particle, a.cfg.Count)
	for i := range a.particles {
		a.particles[i] = Particle{
			X:  a.rng.Float64() * a.width,
			Y:  a.rng.Float64() * a.height,
			VX: (a.rng.Float64() - 0.5) * a.cfg.MaxSpeed,
			VY: (a.rng.Float64() - 0.5) * a.cfg.MaxSpeed,
		}
	}
}

// Resize updates the viewport bounds. Particles are neither rescaled nor
// reseeded; ones left outside drift back through reflection.
func (a *Animator) Resize(width, height float64) error {
	if err := checkBounds(width, height); err != nil {
		return err
	}
	a.width, a.height = width, height
	return nil
}

// Step advances every particle by its velocity and reflects velocity
// components whose position left the viewport.
func (a *Animator) Step() error {
	if a.state != StateRunning {
		return ErrNotRunning
	}
	for i := range a.particles {
		p := &a.particles[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > a.width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > a.height {
			p.VY = -p.VY
		}
	}
	return nil
}

// Links returns every unordered pair closer than the link distance.
func (a *Animator) Links() []Link {
	limit := a.cfg.LinkDistance
	if limit <= 0 {
		return nil
	}
	var links []Link
	for i := 0; i < len(a.particles); i++ {
		for j := i + 1; j < len(a.particles); j++ {
			pa, pb := a.particles[i], a.particles[j]
			dist := math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
			if dist >= limit {
				continue
			}
			links = append(links, Link{
				A:        i,
				B:        j,
				Distance: dist,
				Strength: 1 - dist/limit,
			})
		}
	}
	return links
}

// Draw clears c, draws the links, then the particles on top.
func (a *Animator) Draw(c Canvas) error {
	if a.state != StateRunning {
		return ErrNotRunning
	}
	if c == nil {
		return errors.New("particles: canvas is nil")
	}

	c.Clear(a.cfg.Background)

	for _, link := range a.Links() {
		width := a.cfg.LineWidth - link.Distance/a.cfg.LinkDistance
		if width <= 0 {
			continue
		}
		pa, pb := a.particles[link.A], a.particles[link.B]
		c.StrokeLine(pa.X, pa.Y, pb.X, pb.Y, width, ScaleAlpha(a.cfg.LineColor, link.Strength))
	}

	for _, p := range a.particles {
		c.FillDisk(p.X, p.Y, a.cfg.DotRadius, a.cfg.GlowRadius, a.cfg.DotColor)
	}

	if presenter, ok := c.(Presenter); ok {
		presenter.Present()
	}
	return nil
}

// Frame runs one update and one draw.
func (a *Animator) Frame(c Canvas) error {
	if err := a.Step(); err != nil {
		return err
	}
	return a.Draw(c)
}

// Start schedules frames on s, drawing onto c, until Teardown.
func (a *Animator) Start(s Scheduler, c Canvas) error {
	if a.state != StateRunning {
		return ErrNotRunning
	}
	if s == nil || c == nil {
		return ErrNilScheduler
	}
	a.cancelPending()
	a.scheduler = s
	a.canvas = c
	a.request()
	return nil
}

func (a *Animator) request() {
	a.pending = a.scheduler.RequestFrame(a.tick)
	a.hasPending = true
}

func (a *Animator) tick() {
	a.hasPending = false
	if a.state != StateRunning || a.scheduler == nil {
		return
	}
	if err := a.Frame(a.canvas); err != nil {
		a.logger.Error().Err(err).Msg("particles frame failed")
		return
	}
	a.request()
}

func (a *Animator) cancelPending() {
	if a.hasPending && a.scheduler != nil {
		a.scheduler.CancelFrame(a.pending)
	}
	a.hasPending = false
}

// Teardown cancels the pending frame, discards the particle set and enters
// TornDown. It is a no-op on an animator that never mounted.
func (a *Animator) Teardown() {
	if a.state == StateUninitialized {
		return
	}
	a.cancelPending()
	a.scheduler = nil
	a.canvas = nil
	a.particles = nil
	a.state = StateTornDown
	a.logger.Debug().Msg("particles torn down")
}

func checkBounds(width, height float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, width, height)
	}
	return nil
}

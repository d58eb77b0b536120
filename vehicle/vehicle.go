// Package vehicle implements the phototactic learner: the transition
// matrix, the current/previous state snapshot, reward bookkeeping, and
// peer-influence perturbation that together drive which behavior runs
// next.
package vehicle

import (
	"time"

	"phototaxis.dev/behavior"
	"phototaxis.dev/fsm"
	"phototaxis.dev/light"
	"phototaxis.dev/motor"
	"phototaxis.dev/radio"
)

// Clock abstracts wall-clock time so dwell gating and entered_at
// bookkeeping can be driven by a fake in tests.
type Clock interface{ Now() time.Time }

// RNG is the single external PRNG primitive the learner consumes: a
// uniform draw over [0,1). Both the 1-in-3 peer-report send check and
// the cumulative-distribution state sample are derived from it.
type RNG interface{ NextUnitFloat() float64 }

// LEDs is the two-bit status indicator driven by the current state.
type LEDs interface{ Set(green, red bool) }

// Config holds the learner's tunable constants.
type Config struct {
	LearningRate float64 // per-reward step applied to M[prev][curr]
	PeerBias     float64 // magnitude of peer-influence perturbation

	// CIChangeRate is accepted for construction parity but never read;
	// see DESIGN.md.
	CIChangeRate float64

	SendProbability  float64 // chance a transition also queues a peer report
	ProbabilityFloor float64 // minimum surviving weight in any matrix row
}

// DefaultConfig returns the constants specified for the learner.
func DefaultConfig() Config {
	return Config{
		LearningRate:     0.1,
		PeerBias:         0.2,
		CIChangeRate:     0.05,
		SendProbability:  1.0 / 3.0,
		ProbabilityFloor: 0.01,
	}
}

// snapshot is the FSM's current position: which state is active, which
// one preceded it, when the current state was entered, and the light
// reading observed at that moment (the reward baseline).
type snapshot struct {
	current, previous fsm.StateKind
	enteredAt          time.Time
	lightOnEntry       light.LightReading
}

// Context is the vehicle's learner: the transition matrix plus
// everything needed to run one FSM tick. It implements behavior.Context
// so the active behavior.Behavior can drive motors and request
// transitions without seeing the matrix or peer-influence machinery.
type Context struct {
	cfg Config

	left, right light.Sensor
	autoRange   light.AutoRange
	driver      motor.Driver
	leds        LEDs
	svc         *radio.Service
	table       behavior.Table
	clock       Clock
	rng         RNG

	matrix   [fsm.NumStates][fsm.NumStates]float64
	snap     snapshot
	curLight light.LightReading
}

// New constructs a Context at boot: current and previous both Idle,
// enteredAt is clock.Now(), lightOnEntry is the first sensor read, and
// every matrix row starts uniform.
func New(left, right light.Sensor, driver motor.Driver, leds LEDs, svc *radio.Service, clock Clock, rng RNG, cfg Config) *Context {
	c := &Context{
		cfg:       cfg,
		left:      left,
		right:     right,
		autoRange: light.NewAutoRange(),
		driver:    driver,
		leds:      leds,
		svc:       svc,
		table:     behavior.NewTable(),
		clock:     clock,
		rng:       rng,
	}
	for i := range c.matrix {
		for j := range c.matrix[i] {
			c.matrix[i][j] = 1.0 / fsm.NumStates
		}
	}
	c.curLight = light.Read(left, right, &c.autoRange)
	now := clock.Now()
	c.snap = snapshot{current: fsm.Idle, previous: fsm.Idle, enteredAt: now, lightOnEntry: c.curLight}
	return c
}

// Current reports the active state.
func (c *Context) Current() fsm.StateKind { return c.snap.current }

// Matrix returns a copy of the transition matrix, for tests and
// telemetry; callers never get a handle that could mutate learner state
// behind its back.
func (c *Context) Matrix() [fsm.NumStates][fsm.NumStates]float64 {
	return c.matrix
}

// Tick runs one FSM iteration: refresh the light reading, then run the
// active behavior. If the active state somehow has no behavior entry,
// force a transition to Idle to recover into a safe state.
func (c *Context) Tick() {
	c.curLight = light.Read(c.left, c.right, &c.autoRange)

	b := c.table[c.snap.current]
	if b == nil {
		c.transitionTo(fsm.Idle)
		return
	}
	b.Execute(c)
}

// behavior.Context implementation.

func (c *Context) CurrentLight() light.LightReading { return c.curLight }
func (c *Context) Motors() motor.Driver              { return c.driver }
func (c *Context) ElapsedInState() time.Duration {
	return c.clock.Now().Sub(c.snap.enteredAt)
}
func (c *Context) MinDwell(kind fsm.StateKind) time.Duration {
	if kind == fsm.Idle {
		return 2500 * time.Millisecond
	}
	return 5000 * time.Millisecond
}
func (c *Context) RequestTransition() {
	c.transitionTo(c.sampleNextState())
}

// avg is (r.Left + r.Right) / 2.
func avg(r light.LightReading) float64 {
	return (r.Left + r.Right) / 2
}

// transitionTo applies the reward update to row `previous`, updates the
// LEDs, and enters `next`. An invalid kind is silently ignored.
func (c *Context) transitionTo(next fsm.StateKind) {
	if !next.Valid() {
		return
	}

	reward := avg(c.snap.lightOnEntry) - avg(c.curLight)
	p, cur := c.snap.previous, c.snap.current
	delta := c.cfg.LearningRate * reward
	c.matrix[p][cur] += delta
	for i := range c.matrix[p] {
		if fsm.StateKind(i) != cur {
			c.matrix[p][i] -= delta / (fsm.NumStates - 1)
		}
	}
	c.normalizeRow(&c.matrix[p])

	if old := c.table[c.snap.current]; old != nil {
		old.Exit(c)
	}

	c.snap.previous = c.snap.current
	c.snap.current = next

	if c.rng.NextUnitFloat() < c.cfg.SendProbability {
		report := radio.PeerReport{
			PrevLeft:  float32(c.snap.lightOnEntry.Left),
			PrevRight: float32(c.snap.lightOnEntry.Right),
			CurrLeft:  float32(c.curLight.Left),
			CurrRight: float32(c.curLight.Right),
			PrevState: c.snap.previous,
		}
		c.svc.TryQueueSend(report)
	}

	c.snap.enteredAt = c.clock.Now()
	c.snap.lightOnEntry = c.curLight
	c.setLEDs(next)

	if b := c.table[next]; b != nil {
		b.Enter(c)
	}
}

func (c *Context) setLEDs(kind fsm.StateKind) {
	switch kind {
	case fsm.Idle, fsm.Explorer:
		c.leds.Set(false, false)
	case fsm.Aggressive:
		c.leds.Set(false, true)
	case fsm.Coward:
		c.leds.Set(true, false)
	case fsm.Love:
		c.leds.Set(true, true)
	}
}

// sampleNextState draws the next state from row `current`, perturbed by
// any queued peer report.
func (c *Context) sampleNextState() fsm.StateKind {
	p := c.matrix[c.snap.current]
	c.applyPeerInfluence(&p)

	u := c.rng.NextUnitFloat()
	sum := 0.0
	for i, v := range p {
		sum += v
		if sum >= u {
			return fsm.StateKind(i)
		}
	}
	return fsm.Idle
}

// applyPeerInfluence perturbs a copy of the sampled row with the oldest
// queued peer report, if any. The transition matrix itself is never
// touched here.
func (c *Context) applyPeerInfluence(p *[fsm.NumStates]float64) {
	report, ok := c.svc.TryReceive()
	if !ok {
		return
	}

	delta := ((float64(report.CurrLeft) - float64(report.PrevLeft)) + (float64(report.CurrRight) - float64(report.PrevRight))) / 2
	s := report.PrevState
	bias := c.cfg.PeerBias
	spread := bias / (fsm.NumStates - 1)

	if delta > 0 {
		p[s] -= bias
		for i := range p {
			if fsm.StateKind(i) != s {
				p[i] += spread
			}
		}
	} else {
		p[s] += bias
		for i := range p {
			if fsm.StateKind(i) != s {
				p[i] -= spread
			}
		}
	}
	c.normalizeRow(p)
}

// normalizeRow floors every entry to cfg.ProbabilityFloor and rescales
// to sum to 1. A non-positive sum resets the row to uniform.
func (c *Context) normalizeRow(row *[fsm.NumStates]float64) {
	sum := 0.0
	for i, v := range row {
		if v < c.cfg.ProbabilityFloor {
			row[i] = c.cfg.ProbabilityFloor
		}
		sum += row[i]
	}
	if sum <= 0 {
		for i := range row {
			row[i] = 1.0 / fsm.NumStates
		}
		return
	}
	for i := range row {
		row[i] /= sum
	}
}

package steer_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/mverhelle/folio/internal/steer"
)

const dt = 1.0 / 60.0

var _ = Describe("Step", func() {
	var (
		p steer.Params
		s steer.State
	)

	BeforeEach(func() {
		p = steer.DefaultParams()
		s = steer.NewState(p)
	})

	Describe("turn cap", func() {
		It("is non-increasing in speed and stays within bounds", func() {
			prev := math.Inf(1)
			for i := 0; i <= 1000; i++ {
				speed := p.MaxSpeed * float64(i) / 1000
				c := steer.TurnCap(p, speed)
				Expect(c).To(BeNumerically("<=", prev))
				Expect(c).To(BeNumerically(">=", p.TurnRateAtSpeed))
				Expect(c).To(BeNumerically("<=", p.TurnRateAtRest))
				prev = c
			}
		})
	})

	Describe("discrete steering", func() {
		It("clears a pending click target in the same tick", func() {
			s = steer.Step(p, s, steer.ClickAt(1500, 1500), dt)
			Expect(s.Target.Active).To(BeTrue())

			s = steer.Step(p, s, steer.Input{Left: true}, dt)
			Expect(s.Target.Active).To(BeFalse())
		})

		It("wins over a click delivered in the same tick", func() {
			in := steer.ClickAt(1500, 1000)
			in.Right = true
			s = steer.Step(p, s, in, dt)
			Expect(s.Target.Active).To(BeFalse())
		})

		It("rotates by the cap at rest", func() {
			s = steer.Step(p, s, steer.Input{Right: true}, dt)
			Expect(s.Rotation).To(BeNumerically("~", p.TurnRateAtRest*dt, 1e-12))
		})

		It("bleeds speed while coasting", func() {
			s.Velocity = r2.Vec{X: 100}
			coast := steer.Step(p, s, steer.Input{}, dt)
			turning := steer.Step(p, s, steer.Input{Left: true}, dt)
			Expect(turning.Speed()).To(BeNumerically("<", coast.Speed()))
		})
	})

	Describe("thrust", func() {
		It("uses active drag while a thrust key is held", func() {
			s = steer.Step(p, s, steer.Input{Forward: true}, dt)
			Expect(s.Drag).To(Equal(p.ActiveDrag))

			s = steer.Step(p, s, steer.Input{}, dt)
			Expect(s.Drag).To(Equal(p.CoastDrag))
		})

		It("brakes harder than it accelerates", func() {
			fwd := steer.Step(p, s, steer.Input{Forward: true}, dt)
			rev := steer.Step(p, s, steer.Input{Reverse: true}, dt)
			Expect(r2.Norm(rev.Acceleration)).To(BeNumerically(">", r2.Norm(fwd.Acceleration)))
			Expect(rev.Acceleration.X).To(BeNumerically("<", 0))
		})

		It("lets forward win when both keys are held", func() {
			s = steer.Step(p, s, steer.Input{Forward: true, Reverse: true}, dt)
			Expect(s.Acceleration.X).To(BeNumerically("~", p.Accel, 1e-9))
		})

		It("cancels click navigation", func() {
			s = steer.Step(p, s, steer.ClickAt(1500, 1000), dt)
			s = steer.Step(p, s, steer.Input{Forward: true}, dt)
			Expect(s.Target.Active).To(BeFalse())
		})

		It("never exceeds max speed", func() {
			for i := 0; i < 600; i++ {
				s = steer.Step(p, s, steer.Input{Forward: true}, dt)
				Expect(s.Speed()).To(BeNumerically("<=", p.MaxSpeed+1e-9))
			}
		})
	})

	Describe("lateral grip", func() {
		It("strictly decays sideways velocity without input", func() {
			s.Velocity = r2.Vec{X: 100, Y: 80}
			prev := r2.Norm(s.Lateral())
			for i := 0; i < 60; i++ {
				s = steer.Step(p, s, steer.Input{}, dt)
				lat := r2.Norm(s.Lateral())
				if prev > 0 {
					Expect(lat).To(BeNumerically("<", prev))
				}
				prev = lat
			}
			Expect(prev).To(BeNumerically("<", 1))
		})

		It("keeps the longitudinal component apart from drag", func() {
			s.Velocity = r2.Vec{X: 100, Y: 50}
			next := steer.Step(p, s, steer.Input{}, dt)
			// Coast drag removes p.CoastDrag*dt of speed along the whole vector.
			Expect(next.Velocity.X).To(BeNumerically(">", 95))
			Expect(next.Velocity.Y).To(BeNumerically("<", 50*math.Exp(-p.Grip*dt)))
		})
	})

	Describe("click to navigate", func() {
		It("converges on the bearing before translating", func() {
			s.Rotation = math.Pi / 2
			start := s.Position
			s = steer.Step(p, s, steer.ClickAt(start.X+300, start.Y), dt)

			bound := int(math.Ceil((math.Pi/2)/(p.TurnRateAtRest*dt))) + 1
			ticks := 1
			for math.Abs(steer.ShortestBetween(s.Rotation, 0)) > p.AlignTolerance {
				Expect(s.Position).To(Equal(start))
				Expect(s.Speed()).To(BeZero())
				s = steer.Step(p, s, steer.Input{}, dt)
				ticks++
				Expect(ticks).To(BeNumerically("<=", bound))
			}
		})

		It("drives right from the center and stops at the click", func() {
			click := r2.Vec{X: s.Position.X + 400, Y: s.Position.Y}
			s = steer.Step(p, s, steer.Input{Click: &click}, dt)
			for i := 0; i < 600 && s.Target.Active; i++ {
				s = steer.Step(p, s, steer.Input{}, dt)
				Expect(s.Velocity.X).To(BeNumerically(">=", 0))
			}

			Expect(s.Target.Active).To(BeFalse())
			Expect(s.Rotation).To(BeNumerically("~", 0, 1e-9))
			Expect(s.Velocity).To(Equal(r2.Vec{}))
			Expect(r2.Norm(r2.Sub(s.Position, click))).To(BeNumerically("<", p.ArrivalRadius))
		})

		It("does not produce NaN when clicking on the entity", func() {
			s.Rotation = 1.1
			s = steer.Step(p, s, steer.ClickAt(s.Position.X, s.Position.Y), dt)
			Expect(s.IsValid()).To(BeTrue())
			Expect(s.Rotation).To(BeNumerically("~", 1.1, 1e-12))
			Expect(s.Target.Active).To(BeFalse())
		})

		It("arrives at a click on the world edge", func() {
			s = steer.Step(p, s, steer.ClickAt(0, 1000), dt)
			Expect(s.Target.Point).To(Equal(r2.Vec{X: p.BodySize / 2, Y: 1000}))
			for i := 0; i < 3000 && s.Target.Active; i++ {
				s = steer.Step(p, s, steer.Input{}, dt)
			}
			Expect(s.Target.Active).To(BeFalse())
			Expect(s.Position.X).To(BeNumerically("~", p.BodySize/2, p.ArrivalRadius))
		})

		It("does not overshoot with a coarse tick", func() {
			click := r2.Vec{X: s.Position.X + 100, Y: s.Position.Y}
			s = steer.Step(p, s, steer.Input{Click: &click}, 0.5)
			for i := 0; i < 20 && s.Target.Active; i++ {
				s = steer.Step(p, s, steer.Input{}, 0.5)
				Expect(s.Position.X).To(BeNumerically("<=", click.X))
			}
			Expect(s.Target.Active).To(BeFalse())
		})
	})

	Describe("world bounds", func() {
		It("keeps the position inside the world for any velocity and tick", func() {
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 2000; i++ {
				s.Velocity = r2.Vec{X: (rng.Float64()*2 - 1) * 5000, Y: (rng.Float64()*2 - 1) * 5000}
				step := rng.Float64() * 2
				in := steer.Input{Forward: rng.Intn(2) == 0, Left: rng.Intn(3) == 0}
				s = steer.Step(p, s, in, step)
				Expect(s.Position.X).To(BeNumerically(">=", 0))
				Expect(s.Position.X).To(BeNumerically("<=", p.WorldSize))
				Expect(s.Position.Y).To(BeNumerically(">=", 0))
				Expect(s.Position.Y).To(BeNumerically("<=", p.WorldSize))
			}
		})

		It("stops dead at the wall", func() {
			s.Position = r2.Vec{X: p.WorldSize - p.BodySize/2 - 1, Y: 1000}
			s.Velocity = r2.Vec{X: 200}
			s = steer.Step(p, s, steer.Input{}, dt)
			Expect(s.Position.X).To(Equal(p.WorldSize - p.BodySize/2))
			Expect(s.Velocity.X).To(BeZero())
		})
	})

	It("ignores non-positive ticks", func() {
		s.Velocity = r2.Vec{X: 50}
		Expect(steer.Step(p, s, steer.Input{Forward: true}, 0)).To(Equal(s))
		Expect(steer.Step(p, s, steer.Input{Forward: true}, -1)).To(Equal(s))
		Expect(steer.Step(p, s, steer.Input{Forward: true}, math.NaN())).To(Equal(s))
	})
})

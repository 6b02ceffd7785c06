package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/metrics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

var allLaws = []control.Algorithm{
	control.PIDControl, control.SMCControl, control.STSControl, control.MPCControl,
}

// fly builds a bench from o, runs it for the given seconds and returns
// the recorded result with the default metric pack attached.
func fly(o sim.Options, duration float64) *sim.Result {
	GinkgoHelper()
	b, err := sim.NewBench(o)
	Expect(err).NotTo(HaveOccurred())
	res, err := sim.Run(context.Background(), b, duration, metrics.Default(o.Params))
	Expect(err).NotTo(HaveOccurred())
	return res
}

func channel(res *sim.Result, name string) []float64 {
	GinkgoHelper()
	vals, err := res.Channel(name)
	Expect(err).NotTo(HaveOccurred())
	return vals
}

// finalMiss is the distance between the last recorded state and target.
func finalMiss(res *sim.Result, target dynamics.Vec3) float64 {
	x := res.States[len(res.States)-1]
	dx := x[vehicle.IX] - target.X
	dy := x[vehicle.IY] - target.Y
	dz := x[vehicle.IZ] - target.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// throttleTravel sums tick-to-tick thrust movement from t0 on.
func throttleTravel(res *sim.Result, t0 float64) float64 {
	GinkgoHelper()
	thrust := channel(res, "T")
	times := channel(res, "time")
	travel := 0.0
	for i := 1; i < len(thrust); i++ {
		if times[i] < t0 {
			continue
		}
		travel += math.Abs(thrust[i] - thrust[i-1])
	}
	return travel
}

// worstAltitudeMiss is the largest |y-3| from t0 on.
func worstAltitudeMiss(res *sim.Result, t0 float64) float64 {
	GinkgoHelper()
	y := channel(res, "y")
	times := channel(res, "time")
	worst := 0.0
	for i := range y {
		if times[i] < t0 {
			continue
		}
		if d := math.Abs(y[i] - 3); d > worst {
			worst = d
		}
	}
	return worst
}

var _ = Describe("closed-loop flight", func() {
	var opts sim.Options

	BeforeEach(func() {
		opts = sim.DefaultOptions()
	})

	Describe("takeoff to hover", func() {
		It("reaches the hover point under every law", func() {
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 10)
				Expect(finalMiss(res, dynamics.Vec3{Y: 3})).To(BeNumerically("<", 0.02),
					"law %s missed the hover point", a)

				x := res.States[len(res.States)-1]
				Expect(math.Abs(x[vehicle.IPhi])).To(BeNumerically("<", 0.01),
					"law %s arrived banked", a)
				Expect(math.Abs(x[vehicle.ITheta])).To(BeNumerically("<", 0.01),
					"law %s arrived pitched", a)
			}
		})

		It("keeps the motors out of saturation", func() {
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 5)
				if a == control.MPCControl {
					// The horizon law brakes harder than gravity allows
					// on the level-off and rides the zero-thrust clamp
					// for about half a second.
					Expect(res.Metrics["saturation"]).To(BeNumerically("<", 0.15),
						"law %s clamped beyond the level-off", a)
					continue
				}
				Expect(res.Metrics["saturation"]).To(BeZero(), "law %s saturated", a)
			}
		})

		It("holds for a minute without wandering", func() {
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 60)
				Expect(finalMiss(res, dynamics.Vec3{Y: 3})).To(BeNumerically("<", 0.01),
					"law %s drifted", a)
			}
		})

		It("stays pinned when spawned on target", func() {
			opts.Init = dynamics.Vec3{Y: 3}
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 5)
				Expect(res.Metrics["tracking_error"]).To(BeNumerically("<", 1e-9),
					"law %s moved off a perfect spawn", a)
			}
		})
	})

	Describe("hard descent", func() {
		It("shows the mixer clamp in the saturation metric", func() {
			// Dropping seven meters onto the hover point pins thrust at
			// zero while braking; those ticks must reach the metric.
			opts.Init = dynamics.Vec3{X: 2, Y: 10}
			res := fly(opts, 5)
			Expect(res.Metrics["saturation"]).To(BeNumerically(">", 0.05))
		})
	})

	Describe("step climb", func() {
		BeforeEach(func() {
			opts.Pattern = traj.Step
			opts.Init = dynamics.Vec3{Y: 1}
		})

		It("lands on the upper level", func() {
			res := fly(opts, 10)
			y := channel(res, "y")
			Expect(y[len(y)-1]).To(BeNumerically("~", 4, 0.1))
		})

		It("settles within three seconds of the step", func() {
			res := fly(opts, 10)
			y := channel(res, "y")
			times := channel(res, "time")
			for i := range y {
				if times[i] < 6 {
					continue
				}
				Expect(y[i]).To(BeNumerically("~", 4, 0.06),
					"outside the settling band at t=%.2f", times[i])
			}
		})
	})

	Describe("circle", func() {
		BeforeEach(func() {
			opts.Pattern = traj.Circle
			opts.Init = dynamics.Vec3{X: 4, Y: 3}
		})

		It("tracks the ring under every law", func() {
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 12)
				Expect(res.Metrics["tracking_error"]).To(BeNumerically("<", 0.5),
					"law %s lost the circle", a)
			}
		})

		It("rides the radius after the first revolution", func() {
			res := fly(opts, 20)
			x := channel(res, "x")
			z := channel(res, "z")
			times := channel(res, "time")

			rev := 4 * math.Pi // one lap at omega 0.5
			sum, n := 0.0, 0
			for i := range times {
				if times[i] < rev {
					continue
				}
				sum += math.Abs(math.Hypot(x[i], z[i]) - 4)
				n++
			}
			Expect(sum / float64(n)).To(BeNumerically("<", 0.5))
		})
	})

	Describe("figure eight", func() {
		It("tracks the crossing pattern under every law", func() {
			opts.Pattern = traj.Figure8
			opts.Init = dynamics.Vec3{X: 4, Y: 3}
			for _, a := range allLaws {
				opts.Algorithm = a
				res := fly(opts, 12)
				Expect(res.Metrics["tracking_error"]).To(BeNumerically("<", 0.6),
					"law %s lost the eight", a)
			}
		})
	})

	Describe("wind", func() {
		BeforeEach(func() {
			opts.Init = dynamics.Vec3{Y: 3}
			opts.Wind = 2
		})

		It("is deterministic run to run", func() {
			first := fly(opts, 5)
			second := fly(opts, 5)
			Expect(first.Metrics["tracking_error"]).To(Equal(second.Metrics["tracking_error"]))
			Expect(first.Metrics["control_effort"]).To(Equal(second.Metrics["control_effort"]))
		})

		It("keeps the vehicle near the target through gusts", func() {
			res := fly(opts, 10)
			for _, v := range channel(res, "y") {
				Expect(v).To(BeNumerically("~", 3, 1))
			}
		})
	})

	Describe("heavy gusts", func() {
		BeforeEach(func() {
			opts.Init = dynamics.Vec3{Y: 3}
			opts.Wind = 5
		})

		It("drifts off altitude under pid", func() {
			res := fly(opts, 20)
			Expect(worstAltitudeMiss(res, 15)).To(BeNumerically(">", 0.1))
		})

		It("holds altitude under the sliding laws", func() {
			for _, a := range []control.Algorithm{control.SMCControl, control.STSControl} {
				opts.Algorithm = a
				res := fly(opts, 20)
				Expect(worstAltitudeMiss(res, 15)).To(BeNumerically("<", 0.05),
					"law %s lost altitude", a)
			}
		})
	})

	Describe("super-twisting", func() {
		It("moves the throttle far less than a hard-switching surface", func() {
			// Climb from the ground in calm air; compare throttle
			// movement after both laws have arrived.
			opts.Algorithm = control.SMCControl
			hard := control.DefaultSMCGains()
			hard.PhiXY, hard.PhiZ, hard.PhiAtt = 0, 0, 0
			opts.Gains.Put(hard)
			smc := fly(opts, 5)

			opts.Algorithm = control.STSControl
			opts.Gains = control.DefaultGainSet()
			sts := fly(opts, 5)

			Expect(throttleTravel(sts, 4)*10).To(BeNumerically("<", throttleTravel(smc, 4)))
		})

		It("chatters an order of magnitude less under wind", func() {
			opts.Init = dynamics.Vec3{Y: 3}
			opts.Wind = 2

			opts.Algorithm = control.SMCControl
			hard := control.DefaultSMCGains()
			hard.PhiXY, hard.PhiZ, hard.PhiAtt = 0, 0, 0
			opts.Gains.Put(hard)
			smc := fly(opts, 5)

			opts.Algorithm = control.STSControl
			opts.Gains = control.DefaultGainSet()
			sts := fly(opts, 5)

			Expect(sts.Metrics["chattering"]*10).To(BeNumerically("<", smc.Metrics["chattering"]))
		})
	})

	Describe("receding horizon", func() {
		It("publishes the rollout anchored at the vehicle", func() {
			opts.Algorithm = control.MPCControl
			opts.Pattern = traj.Circle
			opts.Init = dynamics.Vec3{X: 4, Y: 3}

			b, err := sim.NewBench(opts)
			Expect(err).NotTo(HaveOccurred())

			b.Advance(120)
			at := b.State().Position
			b.Step()

			hz := b.MPCHorizon()
			Expect(hz).To(HaveLen(11))
			Expect(hz[0].X).To(BeNumerically("~", at.X, 1e-9))
			Expect(hz[0].Y).To(BeNumerically("~", at.Y, 1e-9))
			Expect(hz[0].Z).To(BeNumerically("~", at.Z, 1e-9))
		})
	})
})

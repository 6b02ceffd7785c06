package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

const (
	DefaultDuration  = 20.0
	DefaultWind      = 0.0
	DefaultTimeScale = 1.0
	DefaultY         = 3.0
)

// Config is the on-disk description of one bench setup. Load fills it
// over DefaultConfig, so a file only has to name the keys it changes.
type Config struct {
	Algorithm  string        `yaml:"algorithm"`
	Pattern    string        `yaml:"pattern"`
	Integrator string        `yaml:"integrator"`
	Duration   float64       `yaml:"duration"`
	Wind       float64       `yaml:"wind"`
	TimeScale  float64       `yaml:"time_scale"`
	Init       InitConfig    `yaml:"init"`
	Vehicle    VehicleConfig `yaml:"vehicle"`
	Trajectory TrajConfig    `yaml:"trajectory"`
	Gains      GainsConfig   `yaml:"gains"`

	Waypoints     []WaypointConfig `yaml:"waypoints,omitempty"`
	WaypointSpeed float64          `yaml:"waypoint_speed,omitempty"`
}

type InitConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type VehicleConfig struct {
	Mass      float64 `yaml:"mass"`
	Gravity   float64 `yaml:"gravity"`
	Ixx       float64 `yaml:"ixx"`
	Iyy       float64 `yaml:"iyy"`
	Izz       float64 `yaml:"izz"`
	ArmLength float64 `yaml:"arm_length"`
	KThrust   float64 `yaml:"k_thrust"`
	KDrag     float64 `yaml:"k_drag"`
	LinDrag   float64 `yaml:"lin_drag"`
	MotorMax  float64 `yaml:"motor_max"`
}

type TrajConfig struct {
	Radius   float64 `yaml:"radius"`
	Altitude float64 `yaml:"altitude"`
	Omega    float64 `yaml:"omega"`
	Climb    float64 `yaml:"climb"`
	Fig8X    float64 `yaml:"fig8_x"`
	Fig8Z    float64 `yaml:"fig8_z"`
	Half     float64 `yaml:"half"`
	Dwell    float64 `yaml:"dwell"`
	Travel   float64 `yaml:"travel"`
	StepY0   float64 `yaml:"step_y0"`
	StepY1   float64 `yaml:"step_y1"`
	StepAt   float64 `yaml:"step_at"`
}

type WaypointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// GainsConfig mirrors the recognised tuning keys of each algorithm.
type GainsConfig struct {
	PID PIDConfig `yaml:"pid"`
	SMC SMCConfig `yaml:"smc"`
	STS STSConfig `yaml:"sts"`
	MPC MPCConfig `yaml:"mpc"`
}

type PIDConfig struct {
	KpXY  float64 `yaml:"Kp_xy"`
	KiXY  float64 `yaml:"Ki_xy"`
	KdXY  float64 `yaml:"Kd_xy"`
	KpZ   float64 `yaml:"Kp_z"`
	KiZ   float64 `yaml:"Ki_z"`
	KdZ   float64 `yaml:"Kd_z"`
	KpAtt float64 `yaml:"Kp_att"`
	KdAtt float64 `yaml:"Kd_att"`
	KpYaw float64 `yaml:"Kp_yaw"`
	KdYaw float64 `yaml:"Kd_yaw"`
	IMax  float64 `yaml:"iMax"`
}

type SMCConfig struct {
	LambdaXY  float64 `yaml:"lambda_xy"`
	LambdaZ   float64 `yaml:"lambda_z"`
	EtaXY     float64 `yaml:"eta_xy"`
	EtaZ      float64 `yaml:"eta_z"`
	PhiXY     float64 `yaml:"phi_xy"`
	PhiZ      float64 `yaml:"phi_z"`
	LambdaAtt float64 `yaml:"lambda_att"`
	EtaAtt    float64 `yaml:"eta_att"`
	PhiAtt    float64 `yaml:"phi_att"`
}

type STSConfig struct {
	LambdaXY  float64 `yaml:"lambda_xy"`
	LambdaZ   float64 `yaml:"lambda_z"`
	Alpha1XY  float64 `yaml:"alpha1_xy"`
	Alpha2XY  float64 `yaml:"alpha2_xy"`
	Alpha1Z   float64 `yaml:"alpha1_z"`
	Alpha2Z   float64 `yaml:"alpha2_z"`
	LambdaAtt float64 `yaml:"lambda_att"`
	Alpha1Att float64 `yaml:"alpha1_att"`
	Alpha2Att float64 `yaml:"alpha2_att"`
}

type MPCConfig struct {
	N     int     `yaml:"N"`
	QPos  float64 `yaml:"Q_pos"`
	QVel  float64 `yaml:"Q_vel"`
	R     float64 `yaml:"R"`
	KpAtt float64 `yaml:"Kp_att"`
	KdAtt float64 `yaml:"Kd_att"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  control.PIDControl.String(),
		Pattern:    traj.Hover.String(),
		Integrator: "rk4",
		Duration:   DefaultDuration,
		Wind:       DefaultWind,
		TimeScale:  DefaultTimeScale,
		Init:       InitConfig{Y: DefaultY},
		Vehicle:    vehicleConfig(vehicle.DefaultParams()),
		Trajectory: trajConfig(traj.DefaultParams()),
		Gains:      gainsConfig(control.DefaultGainSet()),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options resolves string ids and assembles everything the bench needs.
// Bad ids and unusable numbers surface here, before a bench exists.
func (c *Config) Options() (sim.Options, error) {
	var opts sim.Options

	algo, err := control.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return opts, err
	}
	pattern, err := traj.ParsePattern(c.Pattern)
	if err != nil {
		return opts, err
	}
	if c.Duration <= 0 {
		return opts, fmt.Errorf("duration must be positive, got %g", c.Duration)
	}
	if c.Wind < 0 {
		return opts, fmt.Errorf("wind intensity must be non-negative, got %g", c.Wind)
	}

	opts = sim.Options{
		Params:        c.Vehicle.Params(),
		TrajParams:    c.Trajectory.Params(),
		Algorithm:     algo,
		Gains:         c.Gains.GainSet(),
		Pattern:       pattern,
		Wind:          c.Wind,
		TimeScale:     c.TimeScale,
		Init:          dynamics.Vec3{X: c.Init.X, Y: c.Init.Y, Z: c.Init.Z},
		WaypointSpeed: c.WaypointSpeed,
	}
	for _, w := range c.Waypoints {
		opts.Waypoints = append(opts.Waypoints, dynamics.Vec3{X: w.X, Y: w.Y, Z: w.Z})
	}
	return opts, nil
}

func (v VehicleConfig) Params() vehicle.Params {
	return vehicle.Params{
		Mass:      v.Mass,
		Gravity:   v.Gravity,
		Ixx:       v.Ixx,
		Iyy:       v.Iyy,
		Izz:       v.Izz,
		ArmLength: v.ArmLength,
		KThrust:   v.KThrust,
		KDrag:     v.KDrag,
		LinDrag:   v.LinDrag,
		MotorMax:  v.MotorMax,
	}
}

func (t TrajConfig) Params() traj.Params {
	return traj.Params{
		Radius:   t.Radius,
		Altitude: t.Altitude,
		Omega:    t.Omega,
		Climb:    t.Climb,
		Fig8X:    t.Fig8X,
		Fig8Z:    t.Fig8Z,
		Half:     t.Half,
		Dwell:    t.Dwell,
		Travel:   t.Travel,
		StepY0:   t.StepY0,
		StepY1:   t.StepY1,
		StepAt:   t.StepAt,
	}
}

func (g GainsConfig) GainSet() control.GainSet {
	return control.GainSet{
		PID: control.PIDGains{
			KpXY: g.PID.KpXY, KiXY: g.PID.KiXY, KdXY: g.PID.KdXY,
			KpZ: g.PID.KpZ, KiZ: g.PID.KiZ, KdZ: g.PID.KdZ,
			KpAtt: g.PID.KpAtt, KdAtt: g.PID.KdAtt,
			KpYaw: g.PID.KpYaw, KdYaw: g.PID.KdYaw,
			IMax: g.PID.IMax,
		},
		SMC: control.SMCGains{
			LambdaXY: g.SMC.LambdaXY, LambdaZ: g.SMC.LambdaZ,
			EtaXY: g.SMC.EtaXY, EtaZ: g.SMC.EtaZ,
			PhiXY: g.SMC.PhiXY, PhiZ: g.SMC.PhiZ,
			LambdaAtt: g.SMC.LambdaAtt, EtaAtt: g.SMC.EtaAtt, PhiAtt: g.SMC.PhiAtt,
		},
		STS: control.STSGains{
			LambdaXY: g.STS.LambdaXY, LambdaZ: g.STS.LambdaZ,
			Alpha1XY: g.STS.Alpha1XY, Alpha2XY: g.STS.Alpha2XY,
			Alpha1Z: g.STS.Alpha1Z, Alpha2Z: g.STS.Alpha2Z,
			LambdaAtt: g.STS.LambdaAtt, Alpha1Att: g.STS.Alpha1Att, Alpha2Att: g.STS.Alpha2Att,
		},
		MPC: control.MPCGains{
			N: g.MPC.N, QPos: g.MPC.QPos, QVel: g.MPC.QVel, R: g.MPC.R,
			KpAtt: g.MPC.KpAtt, KdAtt: g.MPC.KdAtt,
		},
	}
}

func vehicleConfig(p vehicle.Params) VehicleConfig {
	return VehicleConfig{
		Mass:      p.Mass,
		Gravity:   p.Gravity,
		Ixx:       p.Ixx,
		Iyy:       p.Iyy,
		Izz:       p.Izz,
		ArmLength: p.ArmLength,
		KThrust:   p.KThrust,
		KDrag:     p.KDrag,
		LinDrag:   p.LinDrag,
		MotorMax:  p.MotorMax,
	}
}

func trajConfig(p traj.Params) TrajConfig {
	return TrajConfig{
		Radius:   p.Radius,
		Altitude: p.Altitude,
		Omega:    p.Omega,
		Climb:    p.Climb,
		Fig8X:    p.Fig8X,
		Fig8Z:    p.Fig8Z,
		Half:     p.Half,
		Dwell:    p.Dwell,
		Travel:   p.Travel,
		StepY0:   p.StepY0,
		StepY1:   p.StepY1,
		StepAt:   p.StepAt,
	}
}

func gainsConfig(gs control.GainSet) GainsConfig {
	return GainsConfig{
		PID: PIDConfig{
			KpXY: gs.PID.KpXY, KiXY: gs.PID.KiXY, KdXY: gs.PID.KdXY,
			KpZ: gs.PID.KpZ, KiZ: gs.PID.KiZ, KdZ: gs.PID.KdZ,
			KpAtt: gs.PID.KpAtt, KdAtt: gs.PID.KdAtt,
			KpYaw: gs.PID.KpYaw, KdYaw: gs.PID.KdYaw,
			IMax: gs.PID.IMax,
		},
		SMC: SMCConfig{
			LambdaXY: gs.SMC.LambdaXY, LambdaZ: gs.SMC.LambdaZ,
			EtaXY: gs.SMC.EtaXY, EtaZ: gs.SMC.EtaZ,
			PhiXY: gs.SMC.PhiXY, PhiZ: gs.SMC.PhiZ,
			LambdaAtt: gs.SMC.LambdaAtt, EtaAtt: gs.SMC.EtaAtt, PhiAtt: gs.SMC.PhiAtt,
		},
		STS: STSConfig{
			LambdaXY: gs.STS.LambdaXY, LambdaZ: gs.STS.LambdaZ,
			Alpha1XY: gs.STS.Alpha1XY, Alpha2XY: gs.STS.Alpha2XY,
			Alpha1Z: gs.STS.Alpha1Z, Alpha2Z: gs.STS.Alpha2Z,
			LambdaAtt: gs.STS.LambdaAtt, Alpha1Att: gs.STS.Alpha1Att, Alpha2Att: gs.STS.Alpha2Att,
		},
		MPC: MPCConfig{
			N: gs.MPC.N, QPos: gs.MPC.QPos, QVel: gs.MPC.QVel, R: gs.MPC.R,
			KpAtt: gs.MPC.KpAtt, KdAtt: gs.MPC.KdAtt,
		},
	}
}

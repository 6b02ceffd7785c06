package config

import "fmt"

// Set adjusts one recognised tuning key in place. Sweeps and the live
// tuning overlay address gains this way; everything else goes through
// the typed structs.
func (g *GainsConfig) Set(algo, key string, v float64) error {
	switch algo {
	case "pid":
		switch key {
		case "Kp_xy":
			g.PID.KpXY = v
		case "Ki_xy":
			g.PID.KiXY = v
		case "Kd_xy":
			g.PID.KdXY = v
		case "Kp_z":
			g.PID.KpZ = v
		case "Ki_z":
			g.PID.KiZ = v
		case "Kd_z":
			g.PID.KdZ = v
		case "Kp_att":
			g.PID.KpAtt = v
		case "Kd_att":
			g.PID.KdAtt = v
		case "Kp_yaw":
			g.PID.KpYaw = v
		case "Kd_yaw":
			g.PID.KdYaw = v
		case "iMax":
			g.PID.IMax = v
		default:
			return fmt.Errorf("unknown pid gain: %s", key)
		}
	case "smc":
		switch key {
		case "lambda_xy":
			g.SMC.LambdaXY = v
		case "lambda_z":
			g.SMC.LambdaZ = v
		case "eta_xy":
			g.SMC.EtaXY = v
		case "eta_z":
			g.SMC.EtaZ = v
		case "phi_xy":
			g.SMC.PhiXY = v
		case "phi_z":
			g.SMC.PhiZ = v
		case "lambda_att":
			g.SMC.LambdaAtt = v
		case "eta_att":
			g.SMC.EtaAtt = v
		case "phi_att":
			g.SMC.PhiAtt = v
		default:
			return fmt.Errorf("unknown smc gain: %s", key)
		}
	case "sts":
		switch key {
		case "lambda_xy":
			g.STS.LambdaXY = v
		case "lambda_z":
			g.STS.LambdaZ = v
		case "alpha1_xy":
			g.STS.Alpha1XY = v
		case "alpha2_xy":
			g.STS.Alpha2XY = v
		case "alpha1_z":
			g.STS.Alpha1Z = v
		case "alpha2_z":
			g.STS.Alpha2Z = v
		case "lambda_att":
			g.STS.LambdaAtt = v
		case "alpha1_att":
			g.STS.Alpha1Att = v
		case "alpha2_att":
			g.STS.Alpha2Att = v
		default:
			return fmt.Errorf("unknown sts gain: %s", key)
		}
	case "mpc":
		switch key {
		case "N":
			g.MPC.N = int(v)
		case "Q_pos":
			g.MPC.QPos = v
		case "Q_vel":
			g.MPC.QVel = v
		case "R":
			g.MPC.R = v
		case "Kp_att":
			g.MPC.KpAtt = v
		case "Kd_att":
			g.MPC.KdAtt = v
		default:
			return fmt.Errorf("unknown mpc gain: %s", key)
		}
	default:
		return fmt.Errorf("unknown algorithm: %s", algo)
	}
	return nil
}

// Keys lists the recognised tuning keys of one algorithm in schema
// order.
func Keys(algo string) []string {
	switch algo {
	case "pid":
		return []string{"Kp_xy", "Ki_xy", "Kd_xy", "Kp_z", "Ki_z", "Kd_z", "Kp_att", "Kd_att", "Kp_yaw", "Kd_yaw", "iMax"}
	case "smc":
		return []string{"lambda_xy", "lambda_z", "eta_xy", "eta_z", "phi_xy", "phi_z", "lambda_att", "eta_att", "phi_att"}
	case "sts":
		return []string{"lambda_xy", "lambda_z", "alpha1_xy", "alpha2_xy", "alpha1_z", "alpha2_z", "lambda_att", "alpha1_att", "alpha2_att"}
	case "mpc":
		return []string{"N", "Q_pos", "Q_vel", "R", "Kp_att", "Kd_att"}
	default:
		return nil
	}
}

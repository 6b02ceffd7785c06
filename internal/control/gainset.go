package control

// GainSet carries one tuned gain variant per algorithm, so switching
// laws mid-flight lands on that law's own settings.
type GainSet struct {
	PID PIDGains
	SMC SMCGains
	STS STSGains
	MPC MPCGains
}

func DefaultGainSet() GainSet {
	return GainSet{
		PID: DefaultPIDGains(),
		SMC: DefaultSMCGains(),
		STS: DefaultSTSGains(),
		MPC: DefaultMPCGains(),
	}
}

func (s GainSet) For(a Algorithm) Gains {
	switch a {
	case SMCControl:
		return s.SMC
	case STSControl:
		return s.STS
	case MPCControl:
		return s.MPC
	default:
		return s.PID
	}
}

// Put stores g in the slot its variant tags. Validation is the
// caller's job; Put never rejects.
func (s *GainSet) Put(g Gains) {
	switch gg := g.(type) {
	case PIDGains:
		s.PID = gg
	case SMCGains:
		s.SMC = gg
	case STSGains:
		s.STS = gg
	case MPCGains:
		s.MPC = gg
	}
}

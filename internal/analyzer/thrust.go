package analyzer

const (
	// LunarGravity in m/s^2
	LunarGravity = 1.62
	// DefaultLanderMass in kg
	DefaultLanderMass = 1000.0
)

// RequiredThrust scales the lander's lunar weight by 1 + altitude/1000
func RequiredThrust(altitude, landerMass float64) float64 {
	return landerMass * LunarGravity * (1 + altitude/1000)
}

// ActiveThrusters splits the total thrust evenly over the four thrusters
func ActiveThrusters(requiredThrust float64) Thrusters {
	share := requiredThrust / 4
	return Thrusters{
		Front: share,
		Back:  share,
		Left:  share,
		Right: share,
	}
}

package trajectory

// LambertUniversal is the entry point for a universal-variable Lambert
// solver: the departure and arrival velocities of a transfer from r1 to r2
// in time of flight tof around a body with gravitational parameter mu.
//
// It is not implemented and always returns two empty vectors.
func LambertUniversal(r1, r2 []float64, tof, mu float64) (v1, v2 []float64) {
	return []float64{}, []float64{}
}

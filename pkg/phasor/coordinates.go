package phasor

import "math"

// Modulation returns M = √(G² + S²) of a phasor coordinate.
func Modulation(g, s float64) float64 {
	return math.Hypot(g, s)
}

// Phase returns the polar angle φ = atan2(S, G) of a phasor coordinate.
func Phase(g, s float64) float64 {
	return math.Atan2(s, g)
}

// SingleComponentCoordinatePair returns the (G, S) coordinate of a
// mono-exponential decay with lifetime tau, which lies on the universal
// semicircle:
//
//	G = 1 / (1 + (ωτ)²), S = ωτ / (1 + (ωτ)²)
func SingleComponentCoordinatePair(tau, omega float64) (float64, float64) {
	wt := omega * tau
	d := 1 + wt*wt
	return 1 / d, wt / d
}

// CalibrateCoordinatePair rotates a (G, S) coordinate by phi and scales it by
// modulation:
//
//	g = M cos(φ), s = M sin(φ)
//	G' = G g - S s, S' = G s + S g
func CalibrateCoordinatePair(g, s, modulation, phi float64) (float64, float64) {
	gt := modulation * math.Cos(phi)
	st := modulation * math.Sin(phi)
	return g*gt - s*st, g*st + s*gt
}

// CalibrationFromReference returns the modulation and phase that calibrate a
// measured reference coordinate of known lifetime onto its theoretical
// position on the universal semicircle.
func CalibrationFromReference(g, s, tau, omega float64) (modulation, phi float64) {
	tg, ts := SingleComponentCoordinatePair(tau, omega)
	m := Modulation(g, s)
	if m == 0 {
		return 0, 0
	}
	return Modulation(tg, ts) / m, Phase(tg, ts) - Phase(g, s)
}
